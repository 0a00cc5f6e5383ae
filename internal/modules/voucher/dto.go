package voucher

import (
	"time"

	"serenityspa/internal/domain"
)

// VoucherResponse augments the catalog record with the lazily computed
// expiry flag.
type VoucherResponse struct {
	domain.Voucher
	IsExpired bool `json:"is_expired"`
}

func toVoucherResponse(v domain.Voucher, now time.Time) VoucherResponse {
	return VoucherResponse{Voucher: v, IsExpired: v.IsExpired(now)}
}

func toVoucherResponses(vouchers []domain.Voucher, now time.Time) []VoucherResponse {
	out := make([]VoucherResponse, 0, len(vouchers))
	for _, v := range vouchers {
		out = append(out, toVoucherResponse(v, now))
	}
	return out
}
