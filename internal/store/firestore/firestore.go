// Package firestore implements the store repositories on Cloud
// Firestore. One shared client backs every repository to avoid creating
// a new connection per operation.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/finwise/finance-api/internal/store"
)

const (
	transactionsCollection = "transactions"
	budgetsCollection      = "budgets"
	categoriesCollection   = "categories"
	usersCollection        = "users"
)

// Store holds the shared Firestore client and implements every
// repository interface in the store package.
type Store struct {
	client *firestore.Client
}

// New creates a Store connected to the given project.
func New(ctx context.Context, projectID string, opts ...option.ClientOption) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: creating client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// classify maps Firestore RPC failures onto the store sentinel errors so
// callers can branch with errors.Is. Anything unrecognized passes
// through untouched.
func classify(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return store.ErrNotFound
	case codes.AlreadyExists:
		return store.ErrConflict
	case codes.Unavailable, codes.DeadlineExceeded:
		return store.ErrUnavailable
	}
	return err
}

var (
	_ store.TransactionRepository = (*Store)(nil)
	_ store.BudgetRepository      = (*Store)(nil)
	_ store.CategoryRepository    = (*Store)(nil)
	_ store.UserRepository        = (*Store)(nil)
)
