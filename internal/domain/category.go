package domain

import "time"

// Category labels transactions for filtering. Transactions reference
// categories by name only; deleting a category leaves existing
// transactions untouched, so a transaction may name a category that no
// longer exists.
type Category struct {
	ID        string          `json:"id" firestore:"id"`
	OwnerID   string          `json:"userId" firestore:"ownerId"`
	Name      string          `json:"name" firestore:"name"`
	Type      TransactionType `json:"type" firestore:"type"`
	CreatedAt time.Time       `json:"createdAt" firestore:"createdAt"`
}

// Owner returns the identity the record belongs to.
func (c *Category) Owner() string { return c.OwnerID }

// CategoryInput is the wire shape accepted by category create and update
// endpoints.
type CategoryInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Validate checks the payload field by field.
func (in CategoryInput) Validate() error {
	var errs ValidationErrors
	if in.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "is required"})
	}
	if !TransactionType(in.Type).Valid() {
		errs = append(errs, FieldError{Field: "type", Message: "must be either income or expense"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
