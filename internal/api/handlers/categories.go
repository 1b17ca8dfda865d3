package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finwise/finance-api/internal/api/middleware"
	"github.com/finwise/finance-api/internal/domain"
	"github.com/finwise/finance-api/internal/store"
)

// CategoriesHandler handles category endpoints.
type CategoriesHandler struct {
	repo store.CategoryRepository
	log  zerolog.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(repo store.CategoryRepository, log zerolog.Logger) *CategoriesHandler {
	return &CategoriesHandler{
		repo: repo,
		log:  log,
	}
}

// List handles GET /categories
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	categories, err := h.repo.ListCategoriesByOwner(r.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list categories")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to list categories", err)
		return
	}

	if categories == nil {
		categories = []*domain.Category{}
	}
	middleware.WriteJSON(w, http.StatusOK, categories)
}

// ListByType handles GET /categories/type/{type}
func (h *CategoriesHandler) ListByType(w http.ResponseWriter, r *http.Request, typ string) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	kind := domain.TransactionType(typ)
	if !kind.Valid() {
		middleware.WriteError(w, http.StatusBadRequest, "Type must be either income or expense")
		return
	}

	categories, err := h.repo.ListCategoriesByOwnerAndType(r.Context(), uid, kind)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list categories by type")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to list categories", err)
		return
	}

	if categories == nil {
		categories = []*domain.Category{}
	}
	middleware.WriteJSON(w, http.StatusOK, categories)
}

// Create handles POST /categories
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	var input domain.CategoryInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := input.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	category := &domain.Category{
		OwnerID: uid,
		Name:    input.Name,
		Type:    domain.TransactionType(input.Type),
	}

	created, err := h.repo.CreateCategory(r.Context(), category)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create category")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, created)
}

// Update handles PUT /categories/{id}
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	existing, err := h.repo.GetCategory(r.Context(), id)
	if err != nil {
		h.writeLoadError(w, err, id)
		return
	}
	if !ownedBy(existing, uid) {
		middleware.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var input domain.CategoryInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := input.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	updated := &domain.Category{
		ID:        existing.ID,
		OwnerID:   existing.OwnerID,
		Name:      input.Name,
		Type:      domain.TransactionType(input.Type),
		CreatedAt: existing.CreatedAt,
	}

	if err := h.repo.UpdateCategory(r.Context(), updated); err != nil {
		h.log.Error().Err(err).Str("category_id", id).Msg("Failed to update category")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to update category", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /categories/{id}. Transactions that reference
// the deleted category's name keep it; there is no referential
// integrity between the two kinds.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	category, err := h.repo.GetCategory(r.Context(), id)
	if err != nil {
		h.writeLoadError(w, err, id)
		return
	}
	if !ownedBy(category, uid) {
		middleware.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := h.repo.DeleteCategory(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("category_id", id).Msg("Failed to delete category")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to delete category", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

func (h *CategoriesHandler) writeLoadError(w http.ResponseWriter, err error, id string) {
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Category not found")
		return
	}
	h.log.Error().Err(err).Str("category_id", id).Msg("Failed to load category")
	middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to load category", err)
}
