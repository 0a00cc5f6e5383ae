package review

import "serenityspa/internal/domain"

type CreateReviewRequest struct {
	TargetType domain.ReviewTarget `json:"targetType" validate:"required,oneof=product service"`
	TargetID   int64               `json:"targetId" validate:"required"`
	Rating     int                 `json:"rating" validate:"required,min=1,max=5"`
	Comment    string              `json:"comment" validate:"max=2000"`
}

type ReviewListResponse struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	Total         int64           `json:"total"`
}
