package handlers

import (
	"net/http"

	"skillswap_backend/internal/middleware"
	"skillswap_backend/internal/services"
	"skillswap_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PropositionHandler struct {
	*BaseHandler
	propositionService *services.PropositionService
}

func NewPropositionHandler(base *BaseHandler, propositionService *services.PropositionService) *PropositionHandler {
	return &PropositionHandler{
		BaseHandler:        base,
		propositionService: propositionService,
	}
}

func (h *PropositionHandler) RegisterRoutes(r *gin.RouterGroup) {
	me := r.Group("/me/propositions")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", h.GetSentPropositions)
		me.POST("/:postId", h.SubmitProposition)
	}

	posts := r.Group("/me/posts/:postId/propositions")
	posts.Use(middleware.AuthMiddleware())
	{
		posts.GET("", h.GetPostPropositions)
	}

	propositions := r.Group("/propositions")
	propositions.Use(middleware.AuthMiddleware())
	{
		propositions.PATCH("/:propositionId/accept", h.AcceptProposition)
		propositions.PATCH("/:propositionId/finish", h.MarkFinished)
	}
}

func (h *PropositionHandler) GetSentPropositions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	propositions, err := h.propositionService.GetSentPropositions(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"propositions": propositions,
		"total":        len(propositions),
	})
}

func (h *PropositionHandler) SubmitProposition(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID := c.Param("postId")

	var req dto.CreatePropositionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	proposition, err := h.propositionService.SubmitProposition(h.GetDB(c), postID, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"proposition": proposition,
		"message":     "Proposition sent successfully",
	})
}

func (h *PropositionHandler) GetPostPropositions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID := c.Param("postId")

	propositions, err := h.propositionService.GetPostPropositions(h.GetDB(c), postID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"propositions": propositions,
		"total":        len(propositions),
	})
}

func (h *PropositionHandler) AcceptProposition(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	propositionID := c.Param("propositionId")

	proposition, err := h.propositionService.AcceptProposition(h.GetDB(c), propositionID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposition": proposition,
		"message":     "Proposition accepted successfully",
	})
}

func (h *PropositionHandler) MarkFinished(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	propositionID := c.Param("propositionId")

	proposition, err := h.propositionService.MarkFinished(h.GetDB(c), propositionID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposition": proposition,
		"message":     "Exchange marked as finished",
	})
}
