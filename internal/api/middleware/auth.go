package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finwise/finance-api/internal/auth"
)

const identityKey contextKey = "identity"

// BearerToken extracts the credential from an Authorization header.
// It returns false when the header is absent or does not use the Bearer
// scheme.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// Auth is the authorization gate: it runs once per request, before any
// handler, and no handler behind it ever executes without a verified
// identity in the context.
//
// A missing or malformed header short-circuits with 401 without calling
// the verifier at all. An invalid credential is 401; a provider outage
// is 503 so the caller knows a retry may succeed.
func Auth(verifier auth.Verifier, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			uid, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrUnavailable) {
					log.Error().Err(err).Str("path", r.URL.Path).Msg("Identity provider unreachable")
					WriteErrorDetail(w, http.StatusServiceUnavailable, "Authentication service unavailable", err)
					return
				}
				WriteErrorDetail(w, http.StatusUnauthorized, "Invalid token", err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity returns a context carrying a verified identity, the same
// way Auth binds it after a successful token check.
func WithIdentity(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, identityKey, uid)
}

// IdentityFromContext returns the verified identity bound by Auth.
func IdentityFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(identityKey).(string)
	return uid, ok && uid != ""
}
