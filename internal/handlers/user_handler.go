package handlers

import (
	"net/http"

	"skillswap_backend/internal/middleware"
	"skillswap_backend/internal/services"
	"skillswap_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService *services.UserService
}

func NewUserHandler(base *BaseHandler, userService *services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	r.GET("/users/:userId", h.GetProfile)

	// Protected routes
	me := r.Group("/me/availability")
	me.Use(middleware.AuthMiddleware())
	{
		me.PATCH("", h.UpdateAvailability)
	}
}

// --- Public handlers ---

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.Param("userId")

	user, stats, err := h.userService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"average_grade": stats.AverageGrade,
		"nb_of_reviews": stats.NbOfReviews,
	})
}

// --- Protected handlers ---

func (h *UserHandler) UpdateAvailability(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAvailabilityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateAvailability(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "Availability updated successfully",
	})
}
