package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"serenityspa/internal/domain"
	"serenityspa/internal/storage"
)

// VoucherCatalog is the seeded promotional catalog.
type VoucherCatalog interface {
	ListSuper(ctx context.Context) ([]domain.Voucher, error)
	GetByID(ctx context.Context, id int64) (*domain.Voucher, error)
}

// VoucherStore manages the catalog view plus each user's saved list.
// Saved lists are persisted under a per-user slot so switching
// accounts on one client can never leak another user's vouchers.
type VoucherStore struct {
	kv      storage.KV
	catalog VoucherCatalog
	log     zerolog.Logger
}

func NewVoucherStore(kv storage.KV, catalog VoucherCatalog, log zerolog.Logger) *VoucherStore {
	return &VoucherStore{kv: kv, catalog: catalog, log: log}
}

func voucherKey(userID int64) string { return "vouchers:" + strconv.FormatInt(userID, 10) }

// ListSuper returns the active promotional vouchers from the catalog.
func (s *VoucherStore) ListSuper(ctx context.Context) ([]domain.Voucher, error) {
	return s.catalog.ListSuper(ctx)
}

// ListSaved returns the vouchers the session's user has saved. Requires
// an authenticated session.
func (s *VoucherStore) ListSaved(ctx context.Context, sess *Session) ([]domain.Voucher, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}
	return s.loadSaved(ctx, sess.User.ID)
}

// Save adds a catalog voucher to the user's saved list. Saving is
// idempotent by id: a duplicate reports ErrAlreadySaved and leaves the
// list untouched.
func (s *VoucherStore) Save(ctx context.Context, sess *Session, voucherID int64) (*domain.Voucher, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}

	voucher, err := s.catalog.GetByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrVoucherNotFound
	}

	saved, err := s.loadSaved(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	for _, v := range saved {
		if v.ID == voucherID {
			return voucher, ErrAlreadySaved
		}
	}

	saved = append(saved, *voucher)
	if err := s.persist(ctx, sess.User.ID, saved); err != nil {
		return nil, err
	}
	return voucher, nil
}

// Remove deletes a voucher from the saved list by id. Removing an
// absent id is a no-op.
func (s *VoucherStore) Remove(ctx context.Context, sess *Session, voucherID int64) error {
	if sess == nil {
		return ErrAuthRequired
	}

	saved, err := s.loadSaved(ctx, sess.User.ID)
	if err != nil {
		return err
	}

	kept := saved[:0]
	for _, v := range saved {
		if v.ID != voucherID {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(saved) {
		return nil
	}
	return s.persist(ctx, sess.User.ID, kept)
}

// FindByID looks a voucher up across the catalog and, when a session is
// present, the user's saved list.
func (s *VoucherStore) FindByID(ctx context.Context, sess *Session, voucherID int64) (*domain.Voucher, error) {
	v, err := s.catalog.GetByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if v != nil {
		return v, nil
	}
	if sess != nil {
		saved, err := s.loadSaved(ctx, sess.User.ID)
		if err != nil {
			return nil, err
		}
		for _, v := range saved {
			if v.ID == voucherID {
				return &v, nil
			}
		}
	}
	return nil, ErrVoucherNotFound
}

// IsExpired reports lazily computed expiry; there is no sweep job.
func (s *VoucherStore) IsExpired(v domain.Voucher) bool {
	return v.IsExpired(time.Now())
}

func (s *VoucherStore) loadSaved(ctx context.Context, userID int64) ([]domain.Voucher, error) {
	raw, ok, err := s.kv.Get(ctx, voucherKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Voucher{}, nil
	}

	var saved []domain.Voucher
	if err := json.Unmarshal(raw, &saved); err != nil {
		s.log.Warn().Int64("user_id", userID).Err(err).Msg("discarding corrupt saved-voucher record")
		_ = s.kv.Delete(ctx, voucherKey(userID))
		return []domain.Voucher{}, nil
	}
	return saved, nil
}

func (s *VoucherStore) persist(ctx context.Context, userID int64, saved []domain.Voucher) error {
	raw, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, voucherKey(userID), raw)
}
