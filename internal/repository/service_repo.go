package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"serenityspa/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.SpaService, error) {
	var services []domain.SpaService
	err := r.db.WithContext(ctx).Order("id").Find(&services).Error
	return services, err
}

func (r *ServiceRepository) GetBySlug(ctx context.Context, slug string) (*domain.SpaService, error) {
	var s domain.SpaService
	tx := r.db.WithContext(ctx).Where("slug = ?", slug).First(&s)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &s, nil
}

// ExistsByName backs the booking wizard's service guard.
func (r *ServiceRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.SpaService{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

func (r *ServiceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.SpaService{}).Count(&n).Error
	return n, err
}
