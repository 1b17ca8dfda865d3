// Package auth wraps the external identity provider. It verifies bearer
// credentials and returns the provider's stable subject identifier.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrInvalidToken is returned for malformed, expired, or
	// badly-signed credentials. Not retryable.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrUnavailable is returned when the identity provider cannot be
	// reached. Transient; callers must treat it distinctly from an
	// invalid credential.
	ErrUnavailable = errors.New("auth: identity provider unavailable")
)

// Verifier checks a bearer credential and returns the identity it was
// issued to.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// FirebaseVerifier verifies ID tokens against Firebase Authentication.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier builds a verifier for the given project.
func NewFirebaseVerifier(ctx context.Context, projectID string, opts ...option.ClientOption) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("auth: initializing firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: creating auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

// Verify implements Verifier. The returned string is the token subject's
// UID, stable across calls for the same account.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", classify(err))
	}
	return decoded.UID, nil
}

// classify separates transient provider outages from credential
// failures. Verification talks to the provider over HTTP (key fetches),
// so both url errors and context deadlines mean "unavailable"; anything
// else is a bad credential.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrUnavailable
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrUnavailable
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	}
	return ErrInvalidToken
}

var _ Verifier = (*FirebaseVerifier)(nil)
