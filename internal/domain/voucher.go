package domain

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type VoucherScope string

const (
	ScopeProducts VoucherScope = "products"
	ScopeServices VoucherScope = "services"
	ScopeAll      VoucherScope = "all"
)

type VoucherStatus string

const (
	VoucherActive  VoucherStatus = "active"
	VoucherUsed    VoucherStatus = "used"
	VoucherExpired VoucherStatus = "expired"
)

// Voucher is a promotional code from the seeded catalog.
type Voucher struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	Code          string        `json:"code" gorm:"uniqueIndex;not null"`
	Title         string        `json:"title"`
	Description   string        `json:"description" gorm:"type:text"`
	DiscountType  DiscountType  `json:"discount_type"`
	DiscountValue float64       `json:"discount_value"`
	MinPurchase   float64       `json:"min_purchase,omitempty"`
	ExpiryDate    time.Time     `json:"expiry_date"`
	ImageURL      string        `json:"image_url,omitempty"`
	IsSpecial     bool          `json:"is_special"`
	ApplicableFor VoucherScope  `json:"applicable_for"`
	Status        VoucherStatus `json:"status"`
	Terms         []string      `json:"terms,omitempty" gorm:"serializer:json"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Voucher) TableName() string { return "vouchers" }

// IsExpired is computed from the expiry date at read time, never stored.
func (v Voucher) IsExpired(now time.Time) bool {
	return v.ExpiryDate.Before(now)
}

// Discount returns the amount this voucher takes off the given total,
// honoring the minimum purchase. Percentage vouchers never discount
// more than the total itself.
func (v Voucher) Discount(total float64) float64 {
	if v.MinPurchase > 0 && total < v.MinPurchase {
		return 0
	}
	switch v.DiscountType {
	case DiscountPercentage:
		return total * v.DiscountValue / 100
	case DiscountFixed:
		if v.DiscountValue > total {
			return total
		}
		return v.DiscountValue
	}
	return 0
}
