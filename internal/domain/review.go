package domain

import "time"

type ReviewTarget string

const (
	ReviewProduct ReviewTarget = "product"
	ReviewService ReviewTarget = "service"
)

// Review is a customer rating for a product or spa service.
type Review struct {
	ID         int64        `json:"id" gorm:"primaryKey"`
	UserID     int64        `json:"user_id" gorm:"not null;index"`
	UserName   string       `json:"user_name"`
	TargetType ReviewTarget `json:"target_type" gorm:"not null;index:idx_review_target"`
	TargetID   int64        `json:"target_id" gorm:"not null;index:idx_review_target"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (Review) TableName() string { return "reviews" }
