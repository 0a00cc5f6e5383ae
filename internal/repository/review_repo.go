package repository

import (
	"context"

	"gorm.io/gorm"

	"serenityspa/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepository) ListByTarget(ctx context.Context, target domain.ReviewTarget, targetID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", target, targetID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) AverageRating(ctx context.Context, target domain.ReviewTarget, targetID int64) (float64, int64, error) {
	var result struct {
		Avg   float64
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS total").
		Where("target_type = ? AND target_id = ?", target, targetID).
		Scan(&result).Error
	return result.Avg, result.Total, err
}
