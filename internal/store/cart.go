package store

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"

	"serenityspa/internal/domain"
	"serenityspa/internal/storage"
)

// CartStore keeps one cart per user, persisted write-through after
// every mutation. All content changes go through the four mutators;
// totals are recomputed from the lines on every read.
type CartStore struct {
	kv  storage.KV
	log zerolog.Logger
}

func NewCartStore(kv storage.KV, log zerolog.Logger) *CartStore {
	return &CartStore{kv: kv, log: log}
}

func cartKey(userID int64) string { return "cart:" + strconv.FormatInt(userID, 10) }

// Get loads the user's cart. A missing slot is an empty cart; a corrupt
// slot is discarded and also yields an empty cart.
func (s *CartStore) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	raw, ok, err := s.kv.Get(ctx, cartKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return &domain.Cart{}, nil
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		s.log.Warn().Int64("user_id", userID).Err(err).Msg("discarding corrupt cart record")
		_ = s.kv.Delete(ctx, cartKey(userID))
		return &domain.Cart{}, nil
	}
	return &cart, nil
}

// AddItem appends a snapshot of the product, or increments the existing
// line when the product is already in the cart. Quantities below 1 are
// treated as 1.
func (s *CartStore) AddItem(ctx context.Context, userID int64, product domain.Product, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i, ok := cart.Find(product.ID); ok {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.NewCartItem(product, quantity))
	}

	if err := s.persist(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or
// less removes the line entirely; there is no invalid in-between state.
// Unknown product ids are a no-op.
func (s *CartStore) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	i, ok := cart.Find(productID)
	if !ok {
		return cart, nil
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}

	if err := s.persist(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a line regardless of its quantity.
func (s *CartStore) RemoveItem(ctx context.Context, userID, productID int64) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i, ok := cart.Find(productID); ok {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		if err := s.persist(ctx, userID, cart); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

// Clear empties the cart. Used after checkout and on explicit user
// confirmation.
func (s *CartStore) Clear(ctx context.Context, userID int64) error {
	return s.kv.Delete(ctx, cartKey(userID))
}

func (s *CartStore) persist(ctx context.Context, userID int64, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, cartKey(userID), raw)
}
