package domain

import (
	"strings"
	"time"
)

// User is the local profile record mapped to an externally issued
// identity. The identity itself is only ever looked up, never minted
// here; UID doubles as the document id.
type User struct {
	UID       string    `json:"uid" firestore:"uid"`
	Username  string    `json:"username" firestore:"username"`
	Email     string    `json:"email" firestore:"email"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// UserInput is the wire shape accepted by the profile creation endpoint.
type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Validate checks the payload field by field.
func (in UserInput) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(in.Username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: "is required"})
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
