package firestore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/finwise/finance-api/internal/domain"
)

// CreateTransaction assigns the document id and creation timestamp, then
// inserts the record.
func (s *Store) CreateTransaction(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	txn.ID = uuid.New().String()
	txn.CreatedAt = time.Now().UTC()

	if _, err := s.client.Collection(transactionsCollection).Doc(txn.ID).Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("CreateTransaction: %w", classify(err))
	}
	return txn, nil
}

// GetTransaction retrieves one transaction by document id.
func (s *Store) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	snap, err := s.client.Collection(transactionsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetTransaction %q: %w", id, classify(err))
	}

	var txn domain.Transaction
	if err := snap.DataTo(&txn); err != nil {
		return nil, fmt.Errorf("GetTransaction %q: decoding: %w", id, err)
	}
	return &txn, nil
}

// ListTransactionsByOwner returns every transaction owned by ownerID.
// Ownership filtering happens here, at the query, so no other owner's
// records ever leave the store layer.
func (s *Store) ListTransactionsByOwner(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	iter := s.client.Collection(transactionsCollection).
		Where("ownerId", "==", ownerID).
		Documents(ctx)
	defer iter.Stop()

	var result []*domain.Transaction
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListTransactionsByOwner: iterating: %w", classify(err))
		}

		var txn domain.Transaction
		if err := snap.DataTo(&txn); err != nil {
			return nil, fmt.Errorf("ListTransactionsByOwner: decoding %q: %w", snap.Ref.ID, err)
		}
		result = append(result, &txn)
	}

	return result, nil
}

// UpdateTransaction overwrites the stored document. Concurrent updates
// follow last-write-wins; no version check is performed.
func (s *Store) UpdateTransaction(ctx context.Context, txn *domain.Transaction) error {
	if _, err := s.client.Collection(transactionsCollection).Doc(txn.ID).Set(ctx, txn); err != nil {
		return fmt.Errorf("UpdateTransaction %q: %w", txn.ID, classify(err))
	}
	return nil
}

// DeleteTransaction removes the document by id.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := s.client.Collection(transactionsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("DeleteTransaction %q: %w", id, classify(err))
	}
	return nil
}
