package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sleeptrain/checkin-engine/internal/adapters/handler/http/middleware"
	"github.com/sleeptrain/checkin-engine/internal/core/services"
)

type ScheduleHandler struct {
	svc *services.ScheduleService
}

func NewScheduleHandler(svc *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

type updateScheduleRequest struct {
	BedHour    *int `json:"bed_hour" binding:"required"`
	BedMinute  *int `json:"bed_minute" binding:"required"`
	WakeHour   *int `json:"wake_hour" binding:"required"`
	WakeMinute *int `json:"wake_minute" binding:"required"`
}

func (h *ScheduleHandler) RegisterRoutes(router *gin.RouterGroup) {
	schedule := router.Group("/schedule")
	{
		schedule.GET("", h.Get)
		schedule.PUT("", h.Update)
	}
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tmpl, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tmpl)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.UpdateScheduleInput{
		UserID:     userID,
		BedHour:    *req.BedHour,
		BedMinute:  *req.BedMinute,
		WakeHour:   *req.WakeHour,
		WakeMinute: *req.WakeMinute,
	}

	tmpl, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, tmpl)
}
