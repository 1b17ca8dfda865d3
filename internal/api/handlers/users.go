package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finwise/finance-api/internal/api/middleware"
	"github.com/finwise/finance-api/internal/auth"
	"github.com/finwise/finance-api/internal/domain"
	"github.com/finwise/finance-api/internal/store"
)

// UsersHandler handles profile endpoints and out-of-band token
// verification.
type UsersHandler struct {
	repo     store.UserRepository
	verifier auth.Verifier
	log      zerolog.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(repo store.UserRepository, verifier auth.Verifier, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		repo:     repo,
		verifier: verifier,
		log:      log,
	}
}

// Create handles POST /users. The profile is keyed by the authenticated
// identity; the username must be unique.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	var input domain.UserInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := input.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	user := &domain.User{
		UID:      uid,
		Username: input.Username,
		Email:    input.Email,
	}

	created, err := h.repo.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			middleware.WriteError(w, http.StatusConflict, "Username already taken")
			return
		}
		h.log.Error().Err(err).Msg("Failed to create user profile")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to create user profile", err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, created)
}

// Profile handles GET /users/profile
func (h *UsersHandler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	user, err := h.repo.GetUserByUID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Profile not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to load user profile")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to load user profile", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}

// VerifyToken handles POST /auth/verify-token. The route is public: it
// reads the Authorization header itself instead of sitting behind the
// gate, so callers can probe a credential without tripping a 401 from
// the middleware.
func (h *UsersHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Bearer token is required")
		return
	}

	uid, err := h.verifier.Verify(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrUnavailable) {
			h.log.Error().Err(err).Msg("Identity provider unreachable")
			middleware.WriteErrorDetail(w, http.StatusServiceUnavailable, "Authentication service unavailable", err)
			return
		}
		middleware.WriteErrorDetail(w, http.StatusUnauthorized, "Invalid token", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"uid": uid})
}
