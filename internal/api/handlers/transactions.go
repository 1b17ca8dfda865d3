package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finwise/finance-api/internal/api/middleware"
	"github.com/finwise/finance-api/internal/domain"
	"github.com/finwise/finance-api/internal/store"
)

// TransactionsHandler handles transaction CRUD endpoints.
type TransactionsHandler struct {
	repo store.TransactionRepository
	log  zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo store.TransactionRepository, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		repo: repo,
		log:  log,
	}
}

// List handles GET /transactions
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	transactions, err := h.repo.ListTransactionsByOwner(r.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to list transactions", err)
		return
	}

	if transactions == nil {
		transactions = []*domain.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, transactions)
}

// Create handles POST /transactions. The owner is always the
// authenticated identity; any userId in the body is ignored.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	var input domain.TransactionInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := input.Validate()
	if err != nil {
		writeValidationError(w, err)
		return
	}

	txn := &domain.Transaction{
		OwnerID:     uid,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        date,
		Type:        domain.TransactionType(input.Type),
	}

	created, err := h.repo.CreateTransaction(r.Context(), txn)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create transaction")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to create transaction", err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, created)
}

// Get handles GET /transactions/{id}
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	txn, err := h.repo.GetTransaction(r.Context(), id)
	if err != nil {
		h.writeLoadError(w, err, id)
		return
	}
	if !ownedBy(txn, uid) {
		middleware.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, txn)
}

// Update handles PUT /transactions/{id}. The payload is revalidated in
// full and the date is coerced from its wire form before persistence.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	existing, err := h.repo.GetTransaction(r.Context(), id)
	if err != nil {
		h.writeLoadError(w, err, id)
		return
	}
	if !ownedBy(existing, uid) {
		middleware.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var input domain.TransactionInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := input.Validate()
	if err != nil {
		writeValidationError(w, err)
		return
	}

	updated := &domain.Transaction{
		ID:          existing.ID,
		OwnerID:     existing.OwnerID,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        date,
		Type:        domain.TransactionType(input.Type),
		CreatedAt:   existing.CreatedAt,
	}

	if err := h.repo.UpdateTransaction(r.Context(), updated); err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to update transaction")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to update transaction", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /transactions/{id}
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	txn, err := h.repo.GetTransaction(r.Context(), id)
	if err != nil {
		h.writeLoadError(w, err, id)
		return
	}
	if !ownedBy(txn, uid) {
		middleware.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := h.repo.DeleteTransaction(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to delete transaction", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted"})
}

func (h *TransactionsHandler) writeLoadError(w http.ResponseWriter, err error, id string) {
	if errors.Is(err, store.ErrNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to load transaction")
	middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to load transaction", err)
}
