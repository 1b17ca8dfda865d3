// Package handlers implements the HTTP API surface: thin handlers that
// compose the authorization gate's identity, the ownership check, the
// record store, and the aggregation engine.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/finwise/finance-api/internal/api/middleware"
	"github.com/finwise/finance-api/internal/domain"
)

// owned is any record carrying its owner identity.
type owned interface {
	Owner() string
}

// ownedBy reports whether the record belongs to the given identity.
// Callers must translate a missing record to 404 before calling this;
// existence is always decided before ownership so a 403 never reveals
// whether somebody else's record exists under a guessed id.
func ownedBy(rec owned, uid string) bool {
	return rec.Owner() == uid
}

// identity pulls the verified identity out of the request context. The
// gate guarantees it is present on protected routes; the guard here
// covers misrouted registrations.
func identity(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return uid, true
}

// decodeBody decodes a JSON request body into dst. Fields the payload
// struct does not declare are ignored, so a body carrying ownerId or
// userId never reaches persistence; the owner always comes from the
// verified identity.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

// writeValidationError renders a 400 with the structured field errors
// produced by payload validation.
func writeValidationError(w http.ResponseWriter, err error) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		middleware.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"errors":  verrs,
		})
		return
	}
	middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
}
