package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/cardapio-api/internal/alexa"
	"github.com/windoze95/cardapio-api/internal/logger"
	"go.uber.org/zap"
)

// SkillStatus is the body of GET /.
const SkillStatus = "Alexa skill online"

// SkillHandler serves the voice skill endpoint.
type SkillHandler struct {
	Skill *alexa.Skill
}

// NewSkillHandler is the constructor function for initializing a new SkillHandler.
func NewSkillHandler(skill *alexa.Skill) *SkillHandler {
	return &SkillHandler{Skill: skill}
}

// HandleSkillRequest answers one request envelope from the voice platform.
func (h *SkillHandler) HandleSkillRequest(c *gin.Context) {
	var req alexa.RequestEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request envelope"})
		return
	}
	if req.Request.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request.type is required"})
		return
	}

	resp, err := h.Skill.Dispatch(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, alexa.ErrWrongApplication) {
			logger.FromContext(c).Warn("rejected skill request", zap.Error(err))
			c.JSON(http.StatusForbidden, gin.H{"error": "Unknown application"})
			return
		}
		logger.FromContext(c).Error("skill dispatch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to handle request"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Status reports that the skill endpoint is up.
func (h *SkillHandler) Status(c *gin.Context) {
	c.String(http.StatusOK, SkillStatus)
}
