package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/finwise/finance-api/internal/auth"
)

// fakeVerifier maps tokens to identities; unknown tokens fail with the
// configured error.
type fakeVerifier struct {
	tokens map[string]string
	err    error
	calls  int
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	uid, ok := f.tokens[token]
	if !ok {
		return "", auth.ErrInvalidToken
	}
	return uid, nil
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "missing header", header: "", wantOK: false},
		{name: "wrong scheme", header: "Basic abc123", wantOK: false},
		{name: "bare token without scheme", header: "abc123", wantOK: false},
		{name: "empty token", header: "Bearer ", wantOK: false},
		{name: "well formed", header: "Bearer abc123", want: "abc123", wantOK: true},
		{name: "case insensitive scheme", header: "bearer abc123", want: "abc123", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, ok := BearerToken(r)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("BearerToken() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAuth_MissingHeaderShortCircuits(t *testing.T) {
	verifier := &fakeVerifier{}
	handlerRan := false

	h := Auth(verifier, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if verifier.calls != 0 {
		t.Error("verifier must not be called when the header is missing")
	}
	if handlerRan {
		t.Error("handler must not run without a verified identity")
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["message"] != "Authentication required" {
		t.Errorf("message = %q, want 'Authentication required'", body["message"])
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]string{}}
	handlerRan := false

	h := Auth(verifier, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
	}))

	r := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	r.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if handlerRan {
		t.Error("handler must not run with an invalid token")
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["message"] != "Invalid token" {
		t.Errorf("message = %q, want 'Invalid token'", body["message"])
	}
	if body["error"] == "" {
		t.Error("expected diagnostic error text in body")
	}
}

func TestAuth_ProviderOutageIsNot401(t *testing.T) {
	verifier := &fakeVerifier{err: auth.ErrUnavailable}

	h := Auth(verifier, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	r.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestAuth_BindsIdentity(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]string{"good-token": "user-a"}}
	var gotUID string
	var gotOK bool

	h := Auth(verifier, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID, gotOK = IdentityFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	r.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !gotOK || gotUID != "user-a" {
		t.Errorf("IdentityFromContext() = (%q, %v), want (user-a, true)", gotUID, gotOK)
	}
}
