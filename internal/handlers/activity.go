package handlers

import (
	"errors"
	"net/http"
	"time"

	"wellness-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	log     *zap.Logger
	service *services.ActivityService
}

func NewActivityHandler(log *zap.Logger, service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{log: log, service: service}
}

func (h *ActivityHandler) LogMood(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Mood  string `json:"mood" binding:"required"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mood is required"})
		return
	}
	entry, err := h.service.LogMood(c.Request.Context(), user.ID, req.Mood, req.Notes)
	if errors.Is(err, services.ErrInvalidMood) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error("Failed to log mood", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save check-in"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *ActivityHandler) LogProgress(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Metric string     `json:"metric" binding:"required"`
		Value  *float64   `json:"value" binding:"required"`
		Date   *time.Time `json:"date"`
		Notes  string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Metric and value are required"})
		return
	}
	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}
	entry, err := h.service.LogProgress(c.Request.Context(), user.ID, req.Metric, *req.Value, date, req.Notes)
	if errors.Is(err, services.ErrInvalidMetric) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error("Failed to log progress", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *ActivityHandler) PlanModules(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	modules, err := h.service.PlanModules(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load plan", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan"})
		return
	}
	c.JSON(http.StatusOK, modules)
}

func (h *ActivityHandler) UpdatePlanModule(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Progress       float64  `json:"progress"`
		CompletedSteps []string `json:"completedSteps"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	state, err := h.service.UpdatePlanModule(c.Request.Context(), user.ID, c.Param("id"), req.Progress, req.CompletedSteps)
	if errors.Is(err, services.ErrPlanModuleNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan module not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to update plan module", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan module"})
		return
	}
	c.JSON(http.StatusOK, state)
}
