package cart

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"serenityspa/internal/middleware"
	"serenityspa/internal/notify"
	"serenityspa/internal/pkg/response"
	"serenityspa/internal/repository"
	"serenityspa/internal/store"
)

type Handler struct {
	carts    *store.CartStore
	products *repository.ProductRepository
	notifier notify.Notifier
}

func NewHandler(carts *store.CartStore, products *repository.ProductRepository, notifier notify.Notifier) *Handler {
	return &Handler{carts: carts, products: products, notifier: notifier}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", h.GetCart)
		cartGroup.POST("/items", h.AddItem)
		cartGroup.PUT("/items/:productId", h.UpdateQuantity)
		cartGroup.DELETE("/items/:productId", h.RemoveItem)
		cartGroup.DELETE("", h.Clear)
	}
}

func (h *Handler) GetCart(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	cart, err := h.carts.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CART_LOAD_FAILED", "Could not load cart")
		return
	}
	response.Success(c, http.StatusOK, toCartResponse(cart))
}

// AddItem snapshots the product into the cart, incrementing the line
// when the product is already there.
func (h *Handler) AddItem(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), req.ProductID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CART_UPDATE_FAILED", "Could not update cart")
		return
	}
	if product == nil {
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), userID, *product, req.Quantity)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CART_UPDATE_FAILED", "Could not update cart")
		return
	}

	h.notifier.Push(userID, notify.Toast{
		Title:       "Added to cart",
		Description: product.Name + " is now in your cart",
	})
	response.Success(c, http.StatusOK, toCartResponse(cart))
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product id")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cart, err := h.carts.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CART_UPDATE_FAILED", "Could not update cart")
		return
	}
	response.Success(c, http.StatusOK, toCartResponse(cart))
}

func (h *Handler) RemoveItem(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product id")
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CART_UPDATE_FAILED", "Could not update cart")
		return
	}
	response.Success(c, http.StatusOK, toCartResponse(cart))
}

func (h *Handler) Clear(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	if err := h.carts.Clear(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "CART_UPDATE_FAILED", "Could not clear cart")
		return
	}

	h.notifier.Push(userID, notify.Toast{
		Title:       "Cart cleared",
		Description: "All items were removed from your cart",
	})
	c.Status(http.StatusNoContent)
}
