package admin

import (
	"time"

	"serenityspa/internal/domain"
)

type DashboardResponse struct {
	Customers int64 `json:"customers"`
	Managers  int64 `json:"managers"`
	Branches  int64 `json:"branches"`
	Services  int64 `json:"services"`
	Products  int64 `json:"products"`
	Vouchers  int64 `json:"vouchers"`
}

type UpdateBranchRequest struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	ImageURL  string `json:"image_url"`
	ManagerID *int64 `json:"manager_id"`
}

type ProductRequest struct {
	Slug        string  `json:"slug" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"min=0"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	InStock     bool    `json:"in_stock"`
}

type VoucherRequest struct {
	Code          string              `json:"code" validate:"required"`
	Title         string              `json:"title" validate:"required"`
	Description   string              `json:"description"`
	DiscountType  domain.DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue float64             `json:"discount_value" validate:"min=0"`
	MinPurchase   float64             `json:"min_purchase" validate:"min=0"`
	ExpiryDate    time.Time           `json:"expiry_date" validate:"required"`
	ImageURL      string              `json:"image_url"`
	IsSpecial     bool                `json:"is_special"`
	ApplicableFor domain.VoucherScope `json:"applicable_for" validate:"required,oneof=products services all"`
	Terms         []string            `json:"terms"`
}
