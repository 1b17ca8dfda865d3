package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finwise/finance-api/internal/api/middleware"
	"github.com/finwise/finance-api/internal/domain"
	"github.com/finwise/finance-api/internal/store"
)

// BudgetsHandler handles budget CRUD endpoints.
type BudgetsHandler struct {
	repo store.BudgetRepository
	log  zerolog.Logger
}

// NewBudgetsHandler creates a new budgets handler.
func NewBudgetsHandler(repo store.BudgetRepository, log zerolog.Logger) *BudgetsHandler {
	return &BudgetsHandler{
		repo: repo,
		log:  log,
	}
}

// List handles GET /budgets
func (h *BudgetsHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	budgets, err := h.repo.ListBudgetsByOwner(r.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list budgets")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to list budgets", err)
		return
	}

	if budgets == nil {
		budgets = []*domain.Budget{}
	}
	middleware.WriteJSON(w, http.StatusOK, budgets)
}

// Create handles POST /budgets
func (h *BudgetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	var input domain.BudgetInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := input.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	budget := &domain.Budget{
		OwnerID:  uid,
		Category: input.Category,
		Amount:   input.Amount,
		Period:   domain.BudgetPeriod(input.Period),
	}

	created, err := h.repo.CreateBudget(r.Context(), budget)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create budget")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to create budget", err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, created)
}

// Get handles GET /budgets/{id}
func (h *BudgetsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	budget, err := h.repo.GetBudget(r.Context(), id)
	if err != nil {
		h.writeLoadError(w, err, id)
		return
	}
	if !ownedBy(budget, uid) {
		middleware.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, budget)
}

// Update handles PUT /budgets/{id}
func (h *BudgetsHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	existing, err := h.repo.GetBudget(r.Context(), id)
	if err != nil {
		h.writeLoadError(w, err, id)
		return
	}
	if !ownedBy(existing, uid) {
		middleware.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var input domain.BudgetInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := input.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	updated := &domain.Budget{
		ID:        existing.ID,
		OwnerID:   existing.OwnerID,
		Category:  input.Category,
		Amount:    input.Amount,
		Period:    domain.BudgetPeriod(input.Period),
		CreatedAt: existing.CreatedAt,
	}

	if err := h.repo.UpdateBudget(r.Context(), updated); err != nil {
		h.log.Error().Err(err).Str("budget_id", id).Msg("Failed to update budget")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to update budget", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /budgets/{id}
func (h *BudgetsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	budget, err := h.repo.GetBudget(r.Context(), id)
	if err != nil {
		h.writeLoadError(w, err, id)
		return
	}
	if !ownedBy(budget, uid) {
		middleware.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := h.repo.DeleteBudget(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("budget_id", id).Msg("Failed to delete budget")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to delete budget", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Budget deleted"})
}

func (h *BudgetsHandler) writeLoadError(w http.ResponseWriter, err error, id string) {
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Budget not found")
		return
	}
	h.log.Error().Err(err).Str("budget_id", id).Msg("Failed to load budget")
	middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to load budget", err)
}
