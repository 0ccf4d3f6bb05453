package handlers

import (
	"net/http"

	"skillswap_backend/internal/middleware"
	"skillswap_backend/internal/services"
	"skillswap_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	*BaseHandler
	postService *services.PostService
}

func NewPostHandler(base *BaseHandler, postService *services.PostService) *PostHandler {
	return &PostHandler{
		BaseHandler: base,
		postService: postService,
	}
}

func (h *PostHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/posts")
	{
		public.GET("", h.GetPosts)
		public.GET("/users/:userId", h.GetUserPosts)
	}

	// Protected routes
	me := r.Group("/me/posts")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", h.GetMyPosts)
		me.POST("", h.CreatePost)
		me.DELETE("/:postId", h.DeletePost)
	}
}

// --- Public handlers ---

func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.postService.GetPosts(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

func (h *PostHandler) GetUserPosts(c *gin.Context) {
	userID := c.Param("userId")

	posts, err := h.postService.GetUserPosts(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

// --- Protected handlers ---

func (h *PostHandler) GetMyPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	posts, err := h.postService.GetMyPosts(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.postService.CreatePost(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"post":    post,
		"message": "Post created successfully",
	})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID := c.Param("postId")

	if err := h.postService.DeletePost(h.GetDB(c), postID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
