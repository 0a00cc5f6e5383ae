package domain

import "time"

// Branch is a physical spa location. Read-mostly reference data.
type Branch struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	OpenTime  string    `json:"open_time"`
	CloseTime string    `json:"close_time"`
	ImageURL  string    `json:"image_url,omitempty"`
	ManagerID *int64    `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Branch) TableName() string { return "branches" }
