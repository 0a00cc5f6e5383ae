package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"serenityspa/internal/domain"
	"serenityspa/internal/pkg/response"
	"serenityspa/internal/pkg/validator"
	"serenityspa/internal/repository"
)

// Handler is the back-office surface. Route-level role checks live in
// the router; the handler assumes the caller is already allowed in.
type Handler struct {
	users    *repository.UserRepository
	branches *repository.BranchRepository
	services *repository.ServiceRepository
	products *repository.ProductRepository
	vouchers *repository.VoucherRepository
}

func NewHandler(users *repository.UserRepository, branches *repository.BranchRepository, services *repository.ServiceRepository, products *repository.ProductRepository, vouchers *repository.VoucherRepository) *Handler {
	return &Handler{
		users:    users,
		branches: branches,
		services: services,
		products: products,
		vouchers: vouchers,
	}
}

// RegisterAdminRoutes mounts routes reserved for administrators.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)

	products := rg.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.GET("", h.ListVouchers)
		vouchers.POST("", h.CreateVoucher)
		vouchers.PUT("/:id", h.UpdateVoucher)
		vouchers.DELETE("/:id", h.DeleteVoucher)
	}
}

// RegisterManagerRoutes mounts routes shared by admins and managers.
func (h *Handler) RegisterManagerRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	{
		branches.GET("", h.ListBranches)
		branches.PUT("/:id", h.UpdateBranch)
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		resp DashboardResponse
		err  error
	)
	if resp.Customers, err = h.users.CountByRole(ctx, domain.RoleCustomer); err != nil {
		response.Error(c, http.StatusInternalServerError, "DASHBOARD_FAILED", "Could not load dashboard")
		return
	}
	if resp.Managers, err = h.users.CountByRole(ctx, domain.RoleManager); err != nil {
		response.Error(c, http.StatusInternalServerError, "DASHBOARD_FAILED", "Could not load dashboard")
		return
	}
	if resp.Branches, err = h.branches.Count(ctx); err != nil {
		response.Error(c, http.StatusInternalServerError, "DASHBOARD_FAILED", "Could not load dashboard")
		return
	}
	if resp.Services, err = h.services.Count(ctx); err != nil {
		response.Error(c, http.StatusInternalServerError, "DASHBOARD_FAILED", "Could not load dashboard")
		return
	}
	if resp.Products, err = h.products.Count(ctx); err != nil {
		response.Error(c, http.StatusInternalServerError, "DASHBOARD_FAILED", "Could not load dashboard")
		return
	}
	if resp.Vouchers, err = h.vouchers.Count(ctx); err != nil {
		response.Error(c, http.StatusInternalServerError, "DASHBOARD_FAILED", "Could not load dashboard")
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) ListBranches(c *gin.Context) {
	branches, err := h.branches.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "BRANCH_LOAD_FAILED", "Could not load branches")
		return
	}
	response.Success(c, http.StatusOK, branches)
}

func (h *Handler) UpdateBranch(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid branch id")
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.FieldErrors(c, http.StatusBadRequest, "Invalid branch input", fields)
		return
	}

	branch, err := h.branches.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "BRANCH_UPDATE_FAILED", "Could not update branch")
		return
	}
	if branch == nil {
		response.Error(c, http.StatusNotFound, "BRANCH_NOT_FOUND", "Branch not found")
		return
	}

	branch.Name = req.Name
	branch.Address = req.Address
	branch.Phone = req.Phone
	branch.OpenTime = req.OpenTime
	branch.CloseTime = req.CloseTime
	branch.ImageURL = req.ImageURL
	branch.ManagerID = req.ManagerID

	if err := h.branches.Update(c.Request.Context(), branch); err != nil {
		response.Error(c, http.StatusInternalServerError, "BRANCH_UPDATE_FAILED", "Could not update branch")
		return
	}
	response.Success(c, http.StatusOK, branch)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.FieldErrors(c, http.StatusBadRequest, "Invalid product input", fields)
		return
	}

	product := domain.Product{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		InStock:     req.InStock,
	}
	if err := h.products.Create(c.Request.Context(), &product); err != nil {
		response.Error(c, http.StatusInternalServerError, "PRODUCT_CREATE_FAILED", "Could not create product")
		return
	}
	response.Success(c, http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product id")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.FieldErrors(c, http.StatusBadRequest, "Invalid product input", fields)
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PRODUCT_UPDATE_FAILED", "Could not update product")
		return
	}
	if product == nil {
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	product.Slug = req.Slug
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.ImageURL = req.ImageURL
	product.InStock = req.InStock

	if err := h.products.Update(c.Request.Context(), product); err != nil {
		response.Error(c, http.StatusInternalServerError, "PRODUCT_UPDATE_FAILED", "Could not update product")
		return
	}
	response.Success(c, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product id")
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "PRODUCT_DELETE_FAILED", "Could not delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListVouchers(c *gin.Context) {
	vouchers, err := h.vouchers.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "VOUCHER_LOAD_FAILED", "Could not load vouchers")
		return
	}
	response.Success(c, http.StatusOK, vouchers)
}

func (h *Handler) CreateVoucher(c *gin.Context) {
	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.FieldErrors(c, http.StatusBadRequest, "Invalid voucher input", fields)
		return
	}

	voucher := voucherFromRequest(req)
	if err := h.vouchers.Create(c.Request.Context(), &voucher); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			response.Error(c, http.StatusConflict, "DUPLICATE_CODE", "Voucher code already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "VOUCHER_CREATE_FAILED", "Could not create voucher")
		return
	}
	response.Success(c, http.StatusCreated, voucher)
}

func (h *Handler) UpdateVoucher(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid voucher id")
		return
	}

	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.FieldErrors(c, http.StatusBadRequest, "Invalid voucher input", fields)
		return
	}

	voucher, err := h.vouchers.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "VOUCHER_UPDATE_FAILED", "Could not update voucher")
		return
	}
	if voucher == nil {
		response.Error(c, http.StatusNotFound, "VOUCHER_NOT_FOUND", "Voucher not found")
		return
	}

	updated := voucherFromRequest(req)
	updated.ID = voucher.ID
	updated.Status = voucher.Status
	updated.CreatedAt = voucher.CreatedAt

	if err := h.vouchers.Update(c.Request.Context(), &updated); err != nil {
		response.Error(c, http.StatusInternalServerError, "VOUCHER_UPDATE_FAILED", "Could not update voucher")
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler) DeleteVoucher(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid voucher id")
		return
	}
	if err := h.vouchers.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "VOUCHER_DELETE_FAILED", "Could not delete voucher")
		return
	}
	c.Status(http.StatusNoContent)
}

func voucherFromRequest(req VoucherRequest) domain.Voucher {
	return domain.Voucher{
		Code:          req.Code,
		Title:         req.Title,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinPurchase:   req.MinPurchase,
		ExpiryDate:    req.ExpiryDate,
		ImageURL:      req.ImageURL,
		IsSpecial:     req.IsSpecial,
		ApplicableFor: req.ApplicableFor,
		Status:        domain.VoucherActive,
		Terms:         req.Terms,
	}
}
