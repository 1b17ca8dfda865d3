package domain

import "time"

// BudgetPeriod is the recurrence window a budget applies to.
type BudgetPeriod string

const (
	PeriodDaily   BudgetPeriod = "daily"
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is one of the known budget periods.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget is a per-category spending allowance. It shares the ownership
// lifecycle of Transaction but is not consumed by aggregation.
type Budget struct {
	ID        string       `json:"id" firestore:"id"`
	OwnerID   string       `json:"userId" firestore:"ownerId"`
	Category  string       `json:"category" firestore:"category"`
	Amount    float64      `json:"amount" firestore:"amount"`
	Period    BudgetPeriod `json:"period" firestore:"period"`
	CreatedAt time.Time    `json:"createdAt" firestore:"createdAt"`
}

// Owner returns the identity the record belongs to.
func (b *Budget) Owner() string { return b.OwnerID }

// BudgetInput is the wire shape accepted by budget create and update
// endpoints.
type BudgetInput struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Period   string  `json:"period"`
}

// Validate checks the payload field by field.
func (in BudgetInput) Validate() error {
	var errs ValidationErrors
	if in.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "is required"})
	}
	if in.Amount <= 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a positive number"})
	}
	if !BudgetPeriod(in.Period).Valid() {
		errs = append(errs, FieldError{Field: "period", Message: "must be one of daily, weekly, monthly, yearly"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
