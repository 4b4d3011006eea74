package handlers

import (
	"errors"
	"net/http"
	"strings"

	"wellness-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssessmentHandler struct {
	log       *zap.Logger
	templates services.TemplateSource
	service   *services.AssessmentService
}

func NewAssessmentHandler(log *zap.Logger, templates services.TemplateSource, service *services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{log: log, templates: templates, service: service}
}

// ListTemplates serves GET /api/assessments?types=a,b. Without types every
// template is returned.
func (h *AssessmentHandler) ListTemplates(c *gin.Context) {
	var types []string
	if raw := c.Query("types"); raw != "" {
		types = strings.Split(raw, ",")
	}
	templates, err := h.templates.GetTemplates(c.Request.Context(), types)
	if err != nil {
		h.log.Error("Failed to load templates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load assessments"})
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *AssessmentHandler) GetTemplate(c *gin.Context) {
	tmpl, err := h.service.Template(c.Request.Context(), c.Param("type"))
	if errors.Is(err, services.ErrTemplateNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to load template", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load assessment"})
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// Submit serves POST /api/assessments/:type/submit with {"answers": {...}}.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Answers map[string]string `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answers are required"})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), user.ID, services.Submission{
		AssessmentType: c.Param("type"),
		Answers:        req.Answers,
	})
	if errors.Is(err, services.ErrTemplateNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to submit assessment", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save assessment"})
		return
	}
	c.JSON(http.StatusCreated, result)
}
