// Package store defines the repository contracts for the external
// document store. Concrete implementations live in subpackages; callers
// depend only on these interfaces and the sentinel errors below.
package store

import (
	"context"
	"errors"

	"github.com/finwise/finance-api/internal/domain"
)

var (
	// ErrNotFound is returned when no document exists for the given id.
	ErrNotFound = errors.New("store: record not found")

	// ErrConflict is returned when a write would violate a unique key,
	// such as a username that is already taken.
	ErrConflict = errors.New("store: record already exists")

	// ErrUnavailable is returned when the store cannot be reached. It is
	// transient and distinct from the other failures.
	ErrUnavailable = errors.New("store: unavailable")
)

// TransactionRepository persists Transaction documents. Create assigns
// the record id and creation timestamp; Update overwrites the whole
// document (last write wins, per the store's consistency model).
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactionsByOwner(ctx context.Context, ownerID string) ([]*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *domain.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// BudgetRepository persists Budget documents.
type BudgetRepository interface {
	CreateBudget(ctx context.Context, b *domain.Budget) (*domain.Budget, error)
	GetBudget(ctx context.Context, id string) (*domain.Budget, error)
	ListBudgetsByOwner(ctx context.Context, ownerID string) ([]*domain.Budget, error)
	UpdateBudget(ctx context.Context, b *domain.Budget) error
	DeleteBudget(ctx context.Context, id string) error
}

// CategoryRepository persists Category documents.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategoriesByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error)
	ListCategoriesByOwnerAndType(ctx context.Context, ownerID string, typ domain.TransactionType) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// UserRepository persists local user profiles keyed by identity.
type UserRepository interface {
	// CreateUser inserts a profile; ErrConflict if the username is taken
	// or a profile already exists for the identity.
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	GetUserByUID(ctx context.Context, uid string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
