package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finwise/finance-api/internal/logger"
)

func TestRequestID_GeneratesUniqueIDs(t *testing.T) {
	handler := RequestID(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ids := make(map[string]bool)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions", nil))

		id := w.Header().Get("X-Request-ID")
		if id == "" {
			t.Fatal("no X-Request-ID header set")
		}
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("request id %q is not a uuid: %v", id, err)
		}
		if ids[id] {
			t.Errorf("request id %q repeated across requests", id)
		}
		ids[id] = true
	}
}

func TestRequestID_HonorsInboundHeader(t *testing.T) {
	handler := RequestID(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	r.Header.Set("X-Request-ID", "upstream-id")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if got := w.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("X-Request-ID = %q, want upstream-id", got)
	}
}

func TestLogger_RequestLineCarriesRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(buf)

	handler := RequestID(log)(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The handler sees the same request-scoped logger.
		ctxLog := logger.FromContext(r.Context())
		ctxLog.Info().Msg("handler ran")
		w.WriteHeader(http.StatusNoContent)
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/budgets", nil))

	id := w.Header().Get("X-Request-ID")
	output := buf.String()
	if !strings.Contains(output, "HTTP request") {
		t.Errorf("no request line logged: %s", output)
	}
	if !strings.Contains(output, "handler ran") {
		t.Errorf("handler did not log through the context logger: %s", output)
	}
	if id == "" || strings.Count(output, id) < 2 {
		t.Errorf("request id %q missing from log lines: %s", id, output)
	}
}
