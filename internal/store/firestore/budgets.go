package firestore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/finwise/finance-api/internal/domain"
)

// CreateBudget assigns the document id and creation timestamp, then
// inserts the record.
func (s *Store) CreateBudget(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	b.ID = uuid.New().String()
	b.CreatedAt = time.Now().UTC()

	if _, err := s.client.Collection(budgetsCollection).Doc(b.ID).Create(ctx, b); err != nil {
		return nil, fmt.Errorf("CreateBudget: %w", classify(err))
	}
	return b, nil
}

// GetBudget retrieves one budget by document id.
func (s *Store) GetBudget(ctx context.Context, id string) (*domain.Budget, error) {
	snap, err := s.client.Collection(budgetsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetBudget %q: %w", id, classify(err))
	}

	var b domain.Budget
	if err := snap.DataTo(&b); err != nil {
		return nil, fmt.Errorf("GetBudget %q: decoding: %w", id, err)
	}
	return &b, nil
}

// ListBudgetsByOwner returns every budget owned by ownerID.
func (s *Store) ListBudgetsByOwner(ctx context.Context, ownerID string) ([]*domain.Budget, error) {
	iter := s.client.Collection(budgetsCollection).
		Where("ownerId", "==", ownerID).
		Documents(ctx)
	defer iter.Stop()

	var result []*domain.Budget
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListBudgetsByOwner: iterating: %w", classify(err))
		}

		var b domain.Budget
		if err := snap.DataTo(&b); err != nil {
			return nil, fmt.Errorf("ListBudgetsByOwner: decoding %q: %w", snap.Ref.ID, err)
		}
		result = append(result, &b)
	}

	return result, nil
}

// UpdateBudget overwrites the stored document.
func (s *Store) UpdateBudget(ctx context.Context, b *domain.Budget) error {
	if _, err := s.client.Collection(budgetsCollection).Doc(b.ID).Set(ctx, b); err != nil {
		return fmt.Errorf("UpdateBudget %q: %w", b.ID, classify(err))
	}
	return nil
}

// DeleteBudget removes the document by id.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	if _, err := s.client.Collection(budgetsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("DeleteBudget %q: %w", id, classify(err))
	}
	return nil
}
