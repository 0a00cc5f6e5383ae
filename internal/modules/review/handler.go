package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"serenityspa/internal/domain"
	"serenityspa/internal/middleware"
	"serenityspa/internal/pkg/response"
	"serenityspa/internal/pkg/validator"
	"serenityspa/internal/repository"
)

type Handler struct {
	reviews *repository.ReviewRepository
}

func NewHandler(reviews *repository.ReviewRepository) *Handler {
	return &Handler{reviews: reviews}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/reviews/:targetType/:targetId", h.ListByTarget)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.Create)
}

func (h *Handler) Create(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to leave a review")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.FieldErrors(c, http.StatusBadRequest, "Invalid review input", fields)
		return
	}

	review := domain.Review{
		UserID:     sess.User.ID,
		UserName:   sess.User.Name,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := h.reviews.Create(c.Request.Context(), &review); err != nil {
		response.Error(c, http.StatusInternalServerError, "REVIEW_CREATE_FAILED", "Could not save review")
		return
	}
	response.Success(c, http.StatusCreated, review)
}

func (h *Handler) ListByTarget(c *gin.Context) {
	target := domain.ReviewTarget(c.Param("targetType"))
	if target != domain.ReviewProduct && target != domain.ReviewService {
		response.Error(c, http.StatusBadRequest, "INVALID_TARGET", "Target must be product or service")
		return
	}
	targetID, err := strconv.ParseInt(c.Param("targetId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid target id")
		return
	}

	reviews, err := h.reviews.ListByTarget(c.Request.Context(), target, targetID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REVIEW_LOAD_FAILED", "Could not load reviews")
		return
	}
	avg, total, err := h.reviews.AverageRating(c.Request.Context(), target, targetID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REVIEW_LOAD_FAILED", "Could not load reviews")
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	response.Success(c, http.StatusOK, ReviewListResponse{Reviews: reviews, AverageRating: avg, Total: total})
}
