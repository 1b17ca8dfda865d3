package handlers

import (
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/finwise/finance-api/internal/analytics"
	"github.com/finwise/finance-api/internal/api/middleware"
	"github.com/finwise/finance-api/internal/domain"
	"github.com/finwise/finance-api/internal/store"
)

// AnalyticsHandler serves aggregated views over the caller's
// transactions. Records are fetched owner-filtered from the store and
// aggregated in memory by the analytics package.
type AnalyticsHandler struct {
	repo store.TransactionRepository
	log  zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(repo store.TransactionRepository, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		repo: repo,
		log:  log,
	}
}

// PeriodTotals handles GET /analytics/transactions?startDate=&endDate=
func (h *AnalyticsHandler) PeriodTotals(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	transactions, err := h.repo.ListTransactionsByOwner(r.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to query transactions for period totals")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to compute totals", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, analytics.PeriodTotals(transactions, start, end))
}

// MonthlyTotals handles GET /analytics/monthly-totals?year=
func (h *AnalyticsHandler) MonthlyTotals(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		middleware.WriteError(w, http.StatusBadRequest, "year is required")
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		middleware.WriteError(w, http.StatusBadRequest, "year must be a positive number")
		return
	}

	transactions, err := h.repo.ListTransactionsByOwner(r.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to query transactions for monthly totals")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to compute totals", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, analytics.MonthlyTotals(transactions, year))
}

// CategoryTotals handles GET /analytics/category-totals?type=&startDate=&endDate=
func (h *AnalyticsHandler) CategoryTotals(w http.ResponseWriter, r *http.Request) {
	uid, ok := identity(w, r)
	if !ok {
		return
	}

	typ := domain.TransactionType(r.URL.Query().Get("type"))
	if !typ.Valid() {
		middleware.WriteError(w, http.StatusBadRequest, "type must be either income or expense")
		return
	}

	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	transactions, err := h.repo.ListTransactionsByOwner(r.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to query transactions for category totals")
		middleware.WriteErrorDetail(w, http.StatusInternalServerError, "Failed to compute totals", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, analytics.CategoryTotals(transactions, typ, start, end))
}

// dateRange parses the startDate and endDate query parameters. Both are
// required; either missing or unparseable yields a 400.
func dateRange(w http.ResponseWriter, r *http.Request) (civil.Date, civil.Date, bool) {
	query := r.URL.Query()

	startStr := query.Get("startDate")
	endStr := query.Get("endDate")
	if startStr == "" || endStr == "" {
		middleware.WriteError(w, http.StatusBadRequest, "startDate and endDate are required")
		return civil.Date{}, civil.Date{}, false
	}

	start, err := domain.ParseDate(startStr)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid startDate format")
		return civil.Date{}, civil.Date{}, false
	}
	end, err := domain.ParseDate(endStr)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid endDate format")
		return civil.Date{}, civil.Date{}, false
	}

	return start, end, true
}
