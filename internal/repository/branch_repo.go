package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"serenityspa/internal/domain"
)

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) List(ctx context.Context) ([]domain.Branch, error) {
	var branches []domain.Branch
	err := r.db.WithContext(ctx).Order("id").Find(&branches).Error
	return branches, err
}

func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	var b domain.Branch
	tx := r.db.WithContext(ctx).First(&b, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &b, nil
}

// First returns the default branch offered when none is selected yet.
func (r *BranchRepository) First(ctx context.Context) (*domain.Branch, error) {
	var b domain.Branch
	tx := r.db.WithContext(ctx).Order("id").First(&b)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &b, nil
}

func (r *BranchRepository) Update(ctx context.Context, b *domain.Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BranchRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Branch{}).Count(&n).Error
	return n, err
}
