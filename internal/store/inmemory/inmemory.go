// Package inmemory is a map-backed implementation of the store
// repositories. It is safe for concurrent use and is meant for tests and
// local runs; data is lost on restart.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finwise/finance-api/internal/domain"
	"github.com/finwise/finance-api/internal/store"
)

// Store keeps every record kind in its own map, guarded by one RWMutex.
// Values are copied on the way in and out to avoid external mutation.
type Store struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	budgets      map[string]*domain.Budget
	categories   map[string]*domain.Category
	users        map[string]*domain.User
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		transactions: make(map[string]*domain.Transaction),
		budgets:      make(map[string]*domain.Budget),
		categories:   make(map[string]*domain.Category),
		users:        make(map[string]*domain.User),
	}
}

// Close exists for symmetry with the Firestore store; it has nothing to
// release.
func (s *Store) Close() error { return nil }

// CreateTransaction implements store.TransactionRepository.
func (s *Store) CreateTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn.ID = uuid.New().String()
	txn.CreatedAt = time.Now().UTC()

	record := *txn
	s.transactions[record.ID] = &record
	return txn, nil
}

// GetTransaction implements store.TransactionRepository.
func (s *Store) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, exists := s.transactions[id]
	if !exists {
		return nil, fmt.Errorf("GetTransaction %q: %w", id, store.ErrNotFound)
	}

	record := *txn
	return &record, nil
}

// ListTransactionsByOwner implements store.TransactionRepository.
func (s *Store) ListTransactionsByOwner(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Transaction
	for _, txn := range s.transactions {
		if txn.OwnerID != ownerID {
			continue
		}
		record := *txn
		result = append(result, &record)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// UpdateTransaction implements store.TransactionRepository.
func (s *Store) UpdateTransaction(ctx context.Context, txn *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[txn.ID]; !exists {
		return fmt.Errorf("UpdateTransaction %q: %w", txn.ID, store.ErrNotFound)
	}

	record := *txn
	s.transactions[record.ID] = &record
	return nil
}

// DeleteTransaction implements store.TransactionRepository.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.transactions, id)
	return nil
}

// CreateBudget implements store.BudgetRepository.
func (s *Store) CreateBudget(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = uuid.New().String()
	b.CreatedAt = time.Now().UTC()

	record := *b
	s.budgets[record.ID] = &record
	return b, nil
}

// GetBudget implements store.BudgetRepository.
func (s *Store) GetBudget(ctx context.Context, id string) (*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.budgets[id]
	if !exists {
		return nil, fmt.Errorf("GetBudget %q: %w", id, store.ErrNotFound)
	}

	record := *b
	return &record, nil
}

// ListBudgetsByOwner implements store.BudgetRepository.
func (s *Store) ListBudgetsByOwner(ctx context.Context, ownerID string) ([]*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Budget
	for _, b := range s.budgets {
		if b.OwnerID != ownerID {
			continue
		}
		record := *b
		result = append(result, &record)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// UpdateBudget implements store.BudgetRepository.
func (s *Store) UpdateBudget(ctx context.Context, b *domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.budgets[b.ID]; !exists {
		return fmt.Errorf("UpdateBudget %q: %w", b.ID, store.ErrNotFound)
	}

	record := *b
	s.budgets[record.ID] = &record
	return nil
}

// DeleteBudget implements store.BudgetRepository.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.budgets, id)
	return nil
}

// CreateCategory implements store.CategoryRepository.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()

	record := *c
	s.categories[record.ID] = &record
	return c, nil
}

// GetCategory implements store.CategoryRepository.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.categories[id]
	if !exists {
		return nil, fmt.Errorf("GetCategory %q: %w", id, store.ErrNotFound)
	}

	record := *c
	return &record, nil
}

// ListCategoriesByOwner implements store.CategoryRepository.
func (s *Store) ListCategoriesByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	return s.listCategories(ownerID, "")
}

// ListCategoriesByOwnerAndType implements store.CategoryRepository.
func (s *Store) ListCategoriesByOwnerAndType(ctx context.Context, ownerID string, typ domain.TransactionType) ([]*domain.Category, error) {
	return s.listCategories(ownerID, typ)
}

func (s *Store) listCategories(ownerID string, typ domain.TransactionType) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Category
	for _, c := range s.categories {
		if c.OwnerID != ownerID {
			continue
		}
		if typ != "" && c.Type != typ {
			continue
		}
		record := *c
		result = append(result, &record)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// UpdateCategory implements store.CategoryRepository.
func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.categories[c.ID]; !exists {
		return fmt.Errorf("UpdateCategory %q: %w", c.ID, store.ErrNotFound)
	}

	record := *c
	s.categories[record.ID] = &record
	return nil
}

// DeleteCategory implements store.CategoryRepository.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.categories, id)
	return nil
}

// CreateUser implements store.UserRepository.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, fmt.Errorf("CreateUser: username %q: %w", u.Username, store.ErrConflict)
		}
	}
	if _, exists := s.users[u.UID]; exists {
		return nil, fmt.Errorf("CreateUser: uid %q: %w", u.UID, store.ErrConflict)
	}

	u.CreatedAt = time.Now().UTC()
	record := *u
	s.users[record.UID] = &record
	return u, nil
}

// GetUserByUID implements store.UserRepository.
func (s *Store) GetUserByUID(ctx context.Context, uid string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[uid]
	if !exists {
		return nil, fmt.Errorf("GetUserByUID %q: %w", uid, store.ErrNotFound)
	}

	record := *u
	return &record, nil
}

// FindUserByUsername implements store.UserRepository.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			record := *u
			return &record, nil
		}
	}
	return nil, fmt.Errorf("FindUserByUsername %q: %w", username, store.ErrNotFound)
}

var (
	_ store.TransactionRepository = (*Store)(nil)
	_ store.BudgetRepository      = (*Store)(nil)
	_ store.CategoryRepository    = (*Store)(nil)
	_ store.UserRepository        = (*Store)(nil)
)
