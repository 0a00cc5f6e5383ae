package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"serenityspa/internal/pkg/response"
	"serenityspa/internal/repository"
)

// Handler serves the public storefront data: branches, spa services
// and retail products.
type Handler struct {
	branches *repository.BranchRepository
	services *repository.ServiceRepository
	products *repository.ProductRepository
}

func NewHandler(branches *repository.BranchRepository, services *repository.ServiceRepository, products *repository.ProductRepository) *Handler {
	return &Handler{branches: branches, services: services, products: products}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/branches", h.ListBranches)
		catalog.GET("/services", h.ListServices)
		catalog.GET("/services/:slug", h.GetService)
		catalog.GET("/products", h.ListProducts)
		catalog.GET("/products/:id", h.GetProduct)
	}
}

func (h *Handler) ListBranches(c *gin.Context) {
	branches, err := h.branches.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CATALOG_LOAD_FAILED", "Could not load branches")
		return
	}
	response.Success(c, http.StatusOK, branches)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CATALOG_LOAD_FAILED", "Could not load services")
		return
	}
	response.Success(c, http.StatusOK, services)
}

func (h *Handler) GetService(c *gin.Context) {
	svc, err := h.services.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CATALOG_LOAD_FAILED", "Could not load service")
		return
	}
	if svc == nil {
		response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
		return
	}
	response.Success(c, http.StatusOK, svc)
}

func (h *Handler) ListProducts(c *gin.Context) {
	filters := repository.ProductFilters{Category: c.Query("category")}
	if v := c.Query("inStock"); v != "" {
		inStock := v == "true"
		filters.InStock = &inStock
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filters.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filters.Offset = n
		}
	}

	products, total, err := h.products.List(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CATALOG_LOAD_FAILED", "Could not load products")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": products, "total": total})
}

func (h *Handler) GetProduct(c *gin.Context) {
	// Products resolve by numeric id first, then by slug, so both
	// /products/3 and /products/lavender-oil work.
	param := c.Param("id")

	if id, err := strconv.ParseInt(param, 10, 64); err == nil {
		p, err := h.products.GetByID(c.Request.Context(), id)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "CATALOG_LOAD_FAILED", "Could not load product")
			return
		}
		if p != nil {
			response.Success(c, http.StatusOK, p)
			return
		}
	} else {
		p, err := h.products.GetBySlug(c.Request.Context(), param)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "CATALOG_LOAD_FAILED", "Could not load product")
			return
		}
		if p != nil {
			response.Success(c, http.StatusOK, p)
			return
		}
	}
	response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
}
