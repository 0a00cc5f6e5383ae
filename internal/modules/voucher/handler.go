package voucher

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"serenityspa/internal/middleware"
	"serenityspa/internal/notify"
	"serenityspa/internal/pkg/response"
	"serenityspa/internal/store"
)

type Handler struct {
	vouchers *store.VoucherStore
	notifier notify.Notifier
}

func NewHandler(vouchers *store.VoucherStore, notifier notify.Notifier) *Handler {
	return &Handler{vouchers: vouchers, notifier: notifier}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/vouchers/super", h.ListSuper)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	voucherGroup := rg.Group("/vouchers")
	{
		voucherGroup.GET("/me", h.ListSaved)
		voucherGroup.POST("/me/:id", h.Save)
		voucherGroup.DELETE("/me/:id", h.Remove)
		voucherGroup.GET("/:id", h.GetByID)
	}
}

// ListSuper returns the highlighted active catalog vouchers. Public:
// browsing promotions needs no session.
func (h *Handler) ListSuper(c *gin.Context) {
	vouchers, err := h.vouchers.ListSuper(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "VOUCHER_LIST_FAILED", "Could not list vouchers")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vouchers": toVoucherResponses(vouchers, time.Now())})
}

func (h *Handler) ListSaved(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	saved, err := h.vouchers.ListSaved(c.Request.Context(), sess)
	if err != nil {
		if errors.Is(err, store.ErrAuthRequired) {
			response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Sign in to see your vouchers")
			return
		}
		response.Error(c, http.StatusInternalServerError, "VOUCHER_LIST_FAILED", "Could not list vouchers")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vouchers": toVoucherResponses(saved, time.Now())})
}

// Save puts a catalog voucher on the user's list. A duplicate save is
// answered with a notice, not an error, and changes nothing.
func (h *Handler) Save(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	userID := c.GetInt64(middleware.CtxUserID)

	voucherID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid voucher id")
		return
	}

	saved, err := h.vouchers.Save(c.Request.Context(), sess, voucherID)
	switch {
	case errors.Is(err, store.ErrAuthRequired):
		response.Error(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Sign in to save vouchers")
	case errors.Is(err, store.ErrVoucherNotFound):
		response.Error(c, http.StatusNotFound, "VOUCHER_NOT_FOUND", "Voucher not found")
	case errors.Is(err, store.ErrAlreadySaved):
		h.notifier.Push(userID, notify.Toast{
			Title:       "Voucher already saved",
			Description: "This voucher is already on your list",
		})
		response.Success(c, http.StatusOK, gin.H{"saved": false})
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "VOUCHER_SAVE_FAILED", "Could not save voucher")
	default:
		h.notifier.Push(userID, notify.Toast{
			Title:       "Voucher saved",
			Description: "Voucher " + saved.Code + " was added to your list",
		})
		response.Success(c, http.StatusCreated, gin.H{"saved": true, "voucher": toVoucherResponse(*saved, time.Now())})
	}
}

func (h *Handler) Remove(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	userID := c.GetInt64(middleware.CtxUserID)

	voucherID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid voucher id")
		return
	}

	if err := h.vouchers.Remove(c.Request.Context(), sess, voucherID); err != nil {
		response.Error(c, http.StatusInternalServerError, "VOUCHER_REMOVE_FAILED", "Could not remove voucher")
		return
	}

	h.notifier.Push(userID, notify.Toast{
		Title:       "Voucher removed",
		Description: "The voucher was removed from your list",
	})
	c.Status(http.StatusNoContent)
}

// GetByID looks across the catalog and the user's saved list.
func (h *Handler) GetByID(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	voucherID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid voucher id")
		return
	}

	v, err := h.vouchers.FindByID(c.Request.Context(), sess, voucherID)
	if err != nil {
		if errors.Is(err, store.ErrVoucherNotFound) {
			response.Error(c, http.StatusNotFound, "VOUCHER_NOT_FOUND", "Voucher not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "VOUCHER_LOOKUP_FAILED", "Could not look up voucher")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"voucher": toVoucherResponse(*v, time.Now())})
}
