package handlers

import (
	"net/http"

	"skillswap_backend/internal/middleware"
	"skillswap_backend/internal/services"
	"skillswap_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const latestReviewsLimit = 6

type ReviewHandler struct {
	*BaseHandler
	reviewService *services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/reviews")
	{
		public.GET("", h.GetLatestReviews)
		public.GET("/users/:userId", h.GetUserReviews)
	}

	// Protected routes
	me := r.Group("/me/reviews")
	me.Use(middleware.AuthMiddleware())
	{
		me.POST("", h.CreateReview)
		me.PATCH("/:reviewId", h.UpdateReview)
	}
}

// --- Public handlers ---

func (h *ReviewHandler) GetLatestReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetLatestReviews(h.GetDB(c), latestReviewsLimit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	userID := c.Param("userId")

	reviews, stats, err := h.reviewService.GetUserReviews(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":       reviews,
		"total":         len(reviews),
		"average_grade": stats.AverageGrade,
		"nb_of_reviews": stats.NbOfReviews,
	})
}

// --- Protected handlers ---

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"review":  review,
		"message": "Review created successfully",
	})
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reviewID := c.Param("reviewId")

	var req dto.UpdateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.UpdateReview(h.GetDB(c), reviewID, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review":  review,
		"message": "Review updated successfully",
	})
}
