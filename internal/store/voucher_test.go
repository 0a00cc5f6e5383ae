package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"serenityspa/internal/domain"
	"serenityspa/internal/storage"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListSuper(ctx context.Context) ([]domain.Voucher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *mockCatalog) GetByID(ctx context.Context, id int64) (*domain.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

var welcome20 = domain.Voucher{
	ID:            1,
	Code:          "WELCOME20",
	Title:         "Chào mừng thành viên mới",
	DiscountType:  domain.DiscountPercentage,
	DiscountValue: 20,
	ExpiryDate:    time.Now().AddDate(1, 0, 0),
	IsSpecial:     true,
	ApplicableFor: domain.ScopeAll,
	Status:        domain.VoucherActive,
}

func customerSession(id int64) *Session {
	return &Session{User: domain.User{ID: id, Role: domain.RoleCustomer}}
}

func newVoucherStore(catalog VoucherCatalog) (*VoucherStore, *storage.MemKV) {
	kv := storage.NewMemKV()
	return NewVoucherStore(kv, catalog, zerolog.Nop()), kv
}

func TestSaveRequiresSession(t *testing.T) {
	s, _ := newVoucherStore(new(mockCatalog))

	_, err := s.Save(context.Background(), nil, welcome20.ID)
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = s.ListSaved(context.Background(), nil)
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestSaveUnknownVoucher(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	s, _ := newVoucherStore(catalog)

	_, err := s.Save(context.Background(), customerSession(3), 99)
	assert.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestSaveSurfacesCatalogOutage(t *testing.T) {
	boom := errors.New("connection refused")
	catalog := new(mockCatalog)
	catalog.On("GetByID", mock.Anything, welcome20.ID).Return(nil, boom)

	s, _ := newVoucherStore(catalog)

	_, err := s.Save(context.Background(), customerSession(3), welcome20.ID)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrVoucherNotFound)

	_, err = s.FindByID(context.Background(), customerSession(3), welcome20.ID)
	assert.ErrorIs(t, err, boom)
}

func TestSaveIsIdempotentByID(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetByID", mock.Anything, welcome20.ID).Return(&welcome20, nil)

	s, _ := newVoucherStore(catalog)
	ctx := context.Background()
	sess := customerSession(3)

	v, err := s.Save(ctx, sess, welcome20.ID)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME20", v.Code)

	_, err = s.Save(ctx, sess, welcome20.ID)
	assert.ErrorIs(t, err, ErrAlreadySaved)

	saved, err := s.ListSaved(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestSavedListsAreScopedPerUser(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetByID", mock.Anything, welcome20.ID).Return(&welcome20, nil)

	s, _ := newVoucherStore(catalog)
	ctx := context.Background()

	_, err := s.Save(ctx, customerSession(3), welcome20.ID)
	require.NoError(t, err)

	saved, err := s.ListSaved(ctx, customerSession(4))
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestRemoveAbsentVoucherIsNoop(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetByID", mock.Anything, welcome20.ID).Return(&welcome20, nil)

	s, _ := newVoucherStore(catalog)
	ctx := context.Background()
	sess := customerSession(3)

	_, err := s.Save(ctx, sess, welcome20.ID)
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, sess, 42))
	saved, err := s.ListSaved(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	require.NoError(t, s.Remove(ctx, sess, welcome20.ID))
	saved, err = s.ListSaved(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestListSavedDiscardsCorruptRecord(t *testing.T) {
	s, kv := newVoucherStore(new(mockCatalog))
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "vouchers:3", []byte("nope")))

	saved, err := s.ListSaved(ctx, customerSession(3))
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestFindByIDFallsBackToSavedList(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("GetByID", mock.Anything, welcome20.ID).Return(&welcome20, nil)

	s, _ := newVoucherStore(catalog)

	v, err := s.FindByID(context.Background(), nil, welcome20.ID)
	require.NoError(t, err)
	assert.Equal(t, welcome20.ID, v.ID)

	catalog2 := new(mockCatalog)
	catalog2.On("GetByID", mock.Anything, int64(7)).Return(nil, nil)
	catalog2.On("GetByID", mock.Anything, int64(8)).Return(nil, nil)
	s2, kv := newVoucherStore(catalog2)

	// A voucher kept only in the saved list is still resolvable.
	stale := welcome20
	stale.ID = 7
	raw := []byte(`[{"id":7,"code":"WELCOME20"}]`)
	require.NoError(t, kv.Put(context.Background(), "vouchers:3", raw))

	v, err = s2.FindByID(context.Background(), customerSession(3), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.ID)

	_, err = s2.FindByID(context.Background(), customerSession(3), 8)
	assert.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestVoucherDiscountHonorsMinPurchase(t *testing.T) {
	v := domain.Voucher{
		DiscountType:  domain.DiscountFixed,
		DiscountValue: 100000,
		MinPurchase:   500000,
	}
	assert.Equal(t, 0.0, v.Discount(400000))
	assert.Equal(t, 100000.0, v.Discount(500000))

	pct := domain.Voucher{DiscountType: domain.DiscountPercentage, DiscountValue: 20}
	assert.Equal(t, 100000.0, pct.Discount(500000))
}
