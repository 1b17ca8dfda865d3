package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/iterator"

	"github.com/finwise/finance-api/internal/domain"
	"github.com/finwise/finance-api/internal/store"
)

// CreateUser inserts a profile document keyed by the external identity.
// The username uniqueness check and the insert are two separate store
// calls; the small race window matches the store's own consistency
// model.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	existing, err := s.FindUserByUsername(ctx, u.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("CreateUser: username %q: %w", u.Username, store.ErrConflict)
	}

	u.CreatedAt = time.Now().UTC()
	if _, err := s.client.Collection(usersCollection).Doc(u.UID).Create(ctx, u); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", classify(err))
	}
	return u, nil
}

// GetUserByUID retrieves the profile mapped to an identity.
func (s *Store) GetUserByUID(ctx context.Context, uid string) (*domain.User, error) {
	snap, err := s.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetUserByUID %q: %w", uid, classify(err))
	}

	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("GetUserByUID %q: decoding: %w", uid, err)
	}
	return &u, nil
}

// FindUserByUsername looks a profile up by its unique username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	iter := s.client.Collection(usersCollection).
		Where("username", "==", username).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("FindUserByUsername %q: %w", username, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("FindUserByUsername %q: %w", username, classify(err))
	}

	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("FindUserByUsername %q: decoding: %w", username, err)
	}
	return &u, nil
}
