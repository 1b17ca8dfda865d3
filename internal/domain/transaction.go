package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// TransactionType partitions transactions into money coming in and money
// going out. Only the two values below are accepted anywhere in the API.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense record. ID and CreatedAt are
// assigned by the store layer; OwnerID is always forced to the
// authenticated identity and never taken from a request body.
type Transaction struct {
	ID          string          `json:"id" firestore:"id"`
	OwnerID     string          `json:"userId" firestore:"ownerId"`
	Amount      float64         `json:"amount" firestore:"amount"`
	Category    string          `json:"category" firestore:"category"`
	Description string          `json:"description" firestore:"description"`
	Date        civil.Date      `json:"date" firestore:"date"`
	Type        TransactionType `json:"type" firestore:"type"`
	CreatedAt   time.Time       `json:"createdAt" firestore:"createdAt"`
}

// Owner returns the identity the record belongs to.
func (t *Transaction) Owner() string { return t.OwnerID }

// TransactionInput is the wire shape accepted by create and update
// endpoints. Date arrives as an ISO-8601 string and is coerced into a
// calendar date before persistence.
type TransactionInput struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
}

// Validate checks the payload field by field and returns the coerced
// calendar date. All problems are reported at once.
func (in TransactionInput) Validate() (civil.Date, error) {
	var errs ValidationErrors
	if in.Amount <= 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a positive number"})
	}
	if in.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "is required"})
	}
	if len(in.Description) < 3 {
		errs = append(errs, FieldError{Field: "description", Message: "must be at least 3 characters"})
	}
	if !TransactionType(in.Type).Valid() {
		errs = append(errs, FieldError{Field: "type", Message: "must be either income or expense"})
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "must be an ISO-8601 date"})
	}
	if len(errs) > 0 {
		return civil.Date{}, errs
	}
	return date, nil
}

// ParseDate coerces an ISO-8601 wire value into a calendar date. Both the
// plain date form (2024-03-15) and a full timestamp are accepted; a
// timestamp keeps only its calendar-date part.
func ParseDate(s string) (civil.Date, error) {
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(t), nil
}
