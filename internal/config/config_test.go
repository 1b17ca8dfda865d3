package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("STORE_BACKEND", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Backend != BackendFirestore {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendFirestore)
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v, want 15s", cfg.ReadTimeout)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "demo-project")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("READ_TIMEOUT", "5s")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.ProjectID != "demo-project" {
		t.Errorf("ProjectID = %q, want demo-project", cfg.ProjectID)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("Backend = %q, want memory", cfg.Backend)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.ReadTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:            "8080",
			ProjectID:       "demo-project",
			Backend:         BackendFirestore,
			ShutdownTimeout: 30 * time.Second,
		}
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPart string
	}{
		{name: "valid firestore config", mutate: func(c *Config) {}},
		{name: "valid memory config", mutate: func(c *Config) { c.Backend = BackendMemory }},
		{name: "bad port", mutate: func(c *Config) { c.Port = "http" }, wantPart: "invalid port"},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }, wantPart: "invalid port"},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "postgres" }, wantPart: "invalid store backend"},
		{name: "missing project", mutate: func(c *Config) { c.ProjectID = "" }, wantPart: "GOOGLE_CLOUD_PROJECT"},
		{name: "missing credentials file", mutate: func(c *Config) { c.CredentialsFile = "/no/such/file.json" }, wantPart: "credentials file"},
		{name: "tiny shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = time.Millisecond }, wantPart: "shutdown timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantPart == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("Validate() error %q does not mention %q", err, tt.wantPart)
			}
		})
	}
}
