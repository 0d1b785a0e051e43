package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndemidov/storefront/internal/logging"
	"github.com/ndemidov/storefront/internal/models"
	"github.com/ndemidov/storefront/internal/repo"
)

// Catalog is the cart engine's read-only view of the item store.
// GetItem returns an error matching ErrItemNotFound for unknown ids.
type Catalog interface {
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

// LineView is a cart line joined with the current item record. The join
// happens at read time, so price and stock are always live.
type LineView struct {
	Item     models.Item `json:"item"`
	Quantity uint        `json:"quantity"`
}

// CartService owns the per-user cart state. Every operation runs inside
// a critical section scoped to one user: operations for the same user
// serialize to some total order, operations for different users never
// contend.
type CartService struct {
	Repo     *repo.GormRepo
	Catalog  Catalog
	Producer EventPublisher

	mu    sync.Mutex
	users map[uuid.UUID]*sync.Mutex
}

func (s *CartService) userLock(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users == nil {
		s.users = make(map[uuid.UUID]*sync.Mutex)
	}
	l, ok := s.users[id]
	if !ok {
		l = &sync.Mutex{}
		s.users[id] = l
	}
	return l
}

// Get returns the user's cart in insertion order, an empty slice when no
// cart exists yet. Lines whose item no longer resolves in the catalog
// are pruned and omitted from the view.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) ([]LineView, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	return s.view(ctx, userID)
}

// Add merges quantity into an existing line or appends a new one. A zero
// quantity means "not supplied" and defaults to 1.
func (s *CartService) Add(ctx context.Context, userID, itemID uuid.UUID, quantity int) ([]LineView, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrInvalidInput)
	}
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.Catalog.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	line, err := s.Repo.GetLine(ctx, userID, itemID)
	switch {
	case err == nil:
		line.Quantity += uint(quantity)
		if err := s.Repo.SaveLine(ctx, line); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = &models.CartLine{
			UserID:   userID,
			ItemID:   itemID,
			Quantity: uint(quantity),
		}
		if err := s.Repo.CreateLine(ctx, line); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":     "cart_line_added",
		"user_id":  userID,
		"item_id":  itemID,
		"quantity": line.Quantity,
	})

	return s.view(ctx, userID)
}

// Update replaces the stored quantity outright; quantity <= 0 removes
// the line. This is an absolute set, unlike Add's merge-by-increment.
func (s *CartService) Update(ctx context.Context, userID, itemID uuid.UUID, quantity int) ([]LineView, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	line, err := s.Repo.GetLine(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", itemID, ErrNotInCart)
		}
		return nil, err
	}

	if quantity <= 0 {
		if err := s.Repo.DeleteLineByItem(ctx, userID, itemID); err != nil {
			return nil, err
		}
	} else {
		line.Quantity = uint(quantity)
		if err := s.Repo.SaveLine(ctx, line); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, userID, map[string]any{
		"type":     "cart_line_updated",
		"user_id":  userID,
		"item_id":  itemID,
		"quantity": quantity,
	})

	return s.view(ctx, userID)
}

// Remove deletes the line for itemID. Removing an absent item is a
// no-op, not an error.
func (s *CartService) Remove(ctx context.Context, userID, itemID uuid.UUID) ([]LineView, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	if err := s.Repo.DeleteLineByItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":    "cart_line_removed",
		"user_id": userID,
		"item_id": itemID,
	})

	return s.view(ctx, userID)
}

// view builds the populated cart. Callers must hold the user's lock.
func (s *CartService) view(ctx context.Context, userID uuid.UUID) ([]LineView, error) {
	lines, err := s.Repo.GetLines(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]LineView, 0, len(lines))
	for _, line := range lines {
		item, err := s.Catalog.GetItem(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, ErrItemNotFound) {
				// Orphan reference: the item vanished from the catalog.
				// Prune the line so storage matches the view.
				if err := s.Repo.DeleteLineByItem(ctx, userID, line.ItemID); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}
		out = append(out, LineView{Item: *item, Quantity: line.Quantity})
	}
	return out, nil
}

func (s *CartService) publish(ctx context.Context, userID uuid.UUID, event map[string]any) {
	if s.Producer == nil {
		return
	}
	if err := s.Producer.PublishEvent(ctx, "cart_events", userID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("kafka publish failed", "topic", "cart_events", "error", err)
	}
}
