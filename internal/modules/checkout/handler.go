package checkout

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"serenityspa/internal/middleware"
	"serenityspa/internal/notify"
	"serenityspa/internal/pkg/response"
	"serenityspa/internal/pkg/task"
	"serenityspa/internal/pkg/validator"
	"serenityspa/internal/repository"
	"serenityspa/internal/store"
)

// Handler turns a non-empty cart plus a valid shipping form into an
// order id. Placement runs through a delayed task so the flow behaves
// like a real payment round trip.
type Handler struct {
	carts    *store.CartStore
	branches *repository.BranchRepository
	notifier notify.Notifier
	delay    time.Duration
	log      zerolog.Logger
}

func NewHandler(carts *store.CartStore, branches *repository.BranchRepository, notifier notify.Notifier, delay time.Duration, log zerolog.Logger) *Handler {
	return &Handler{carts: carts, branches: branches, notifier: notifier, delay: delay, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.PlaceOrder)
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	cart, err := h.carts.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CHECKOUT_FAILED", "Could not load cart")
		return
	}
	if cart.Empty() {
		// Nothing to pay for; send the client back to the cart page.
		c.Redirect(http.StatusSeeOther, "/cart")
		c.Abort()
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.FieldErrors(c, http.StatusBadRequest, "Invalid checkout input", fields)
		return
	}

	// The shipping branch is optional; when given it must exist.
	if req.BranchID != 0 {
		branch, err := h.branches.GetByID(c.Request.Context(), req.BranchID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "CHECKOUT_FAILED", "Could not place order")
			return
		}
		if branch == nil {
			response.Error(c, http.StatusNotFound, "BRANCH_NOT_FOUND", "Unknown branch")
			return
		}
	}

	total := cart.TotalPrice()
	ctx := context.WithoutCancel(c.Request.Context())

	placed := task.Run(h.delay, func() (string, error) {
		if err := h.carts.Clear(ctx, userID); err != nil {
			return "", err
		}
		return uuid.NewString(), nil
	})

	orderID, err := placed.Await()
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("order placement failed")
		response.Error(c, http.StatusInternalServerError, "CHECKOUT_FAILED", "Could not place order")
		return
	}

	h.notifier.Push(userID, notify.Toast{
		Title:       "Order placed",
		Description: "Thank you " + req.FullName + ", your order is on its way",
	})
	h.log.Info().
		Str("order_id", orderID).
		Int64("user_id", userID).
		Float64("total", total).
		Str("payment_method", req.PaymentMethod).
		Int64("branch_id", req.BranchID).
		Msg("order placed")

	response.Success(c, http.StatusOK, OrderResponse{
		OrderID:  orderID,
		Redirect: "/order-success/" + orderID,
	})
}
