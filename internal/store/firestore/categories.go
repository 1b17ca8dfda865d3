package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/finwise/finance-api/internal/domain"
)

// CreateCategory assigns the document id and creation timestamp, then
// inserts the record.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()

	if _, err := s.client.Collection(categoriesCollection).Doc(c.ID).Create(ctx, c); err != nil {
		return nil, fmt.Errorf("CreateCategory: %w", classify(err))
	}
	return c, nil
}

// GetCategory retrieves one category by document id.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	snap, err := s.client.Collection(categoriesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetCategory %q: %w", id, classify(err))
	}

	var c domain.Category
	if err := snap.DataTo(&c); err != nil {
		return nil, fmt.Errorf("GetCategory %q: decoding: %w", id, err)
	}
	return &c, nil
}

// ListCategoriesByOwner returns every category owned by ownerID.
func (s *Store) ListCategoriesByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	return s.listCategories(ctx, s.client.Collection(categoriesCollection).Where("ownerId", "==", ownerID))
}

// ListCategoriesByOwnerAndType narrows the owner listing to one
// transaction type using a compound equality filter.
func (s *Store) ListCategoriesByOwnerAndType(ctx context.Context, ownerID string, typ domain.TransactionType) ([]*domain.Category, error) {
	return s.listCategories(ctx, s.client.Collection(categoriesCollection).
		Where("ownerId", "==", ownerID).
		Where("type", "==", string(typ)))
}

func (s *Store) listCategories(ctx context.Context, q fs.Query) ([]*domain.Category, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var result []*domain.Category
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listCategories: iterating: %w", classify(err))
		}

		var c domain.Category
		if err := snap.DataTo(&c); err != nil {
			return nil, fmt.Errorf("listCategories: decoding %q: %w", snap.Ref.ID, err)
		}
		result = append(result, &c)
	}

	return result, nil
}

// UpdateCategory overwrites the stored document.
func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	if _, err := s.client.Collection(categoriesCollection).Doc(c.ID).Set(ctx, c); err != nil {
		return fmt.Errorf("UpdateCategory %q: %w", c.ID, classify(err))
	}
	return nil
}

// DeleteCategory removes the document by id. Transactions referencing
// the category name are left as they are.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.client.Collection(categoriesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("DeleteCategory %q: %w", id, classify(err))
	}
	return nil
}
