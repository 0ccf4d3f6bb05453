package handlers

import (
	"net/http"

	"skillswap_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	*BaseHandler
	skillService *services.SkillService
}

func NewSkillHandler(base *BaseHandler, skillService *services.SkillService) *SkillHandler {
	return &SkillHandler{
		BaseHandler:  base,
		skillService: skillService,
	}
}

func (h *SkillHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/skills", h.GetSkills)
}

func (h *SkillHandler) GetSkills(c *gin.Context) {
	skills, err := h.skillService.GetSkills(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skills": skills,
		"total":  len(skills),
	})
}
