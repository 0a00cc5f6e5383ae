package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"serenityspa/internal/domain"
)

// ErrDuplicateCode reports a voucher code collision on create.
var ErrDuplicateCode = errors.New("voucher code already exists")

type VoucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

func (r *VoucherRepository) List(ctx context.Context) ([]domain.Voucher, error) {
	var vouchers []domain.Voucher
	err := r.db.WithContext(ctx).Order("id").Find(&vouchers).Error
	return vouchers, err
}

// ListSuper returns the highlighted promotional vouchers still active.
func (r *VoucherRepository) ListSuper(ctx context.Context) ([]domain.Voucher, error) {
	var vouchers []domain.Voucher
	err := r.db.WithContext(ctx).
		Where("is_special = ? AND status = ?", true, domain.VoucherActive).
		Order("id").
		Find(&vouchers).Error
	return vouchers, err
}

func (r *VoucherRepository) GetByID(ctx context.Context, id int64) (*domain.Voucher, error) {
	var v domain.Voucher
	tx := r.db.WithContext(ctx).First(&v, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &v, nil
}

func (r *VoucherRepository) Create(ctx context.Context, v *domain.Voucher) error {
	err := r.db.WithContext(ctx).Create(v).Error
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateCode
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCode
	}
	return err
}

func (r *VoucherRepository) Update(ctx context.Context, v *domain.Voucher) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VoucherRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Voucher{}, id).Error
}

func (r *VoucherRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Voucher{}).Count(&n).Error
	return n, err
}
