package checkout

type CheckoutRequest struct {
	FullName      string `json:"fullName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,phone"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	District      string `json:"district" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=cod bank-transfer credit-card"`
	BranchID      int64  `json:"branchId"`
	Notes         string `json:"notes"`
}

type OrderResponse struct {
	OrderID  string `json:"order_id"`
	Redirect string `json:"redirect"`
}
