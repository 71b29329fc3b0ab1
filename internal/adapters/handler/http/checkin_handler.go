package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sleeptrain/checkin-engine/internal/adapters/handler/http/middleware"
	"github.com/sleeptrain/checkin-engine/internal/core/domain"
	"github.com/sleeptrain/checkin-engine/internal/core/services"
)

type CheckInHandler struct {
	svc   *services.CheckInService
	clock domain.Clock
}

func NewCheckInHandler(svc *services.CheckInService, clock domain.Clock) *CheckInHandler {
	return &CheckInHandler{
		svc:   svc,
		clock: clock,
	}
}

// The transport (NFC tag read, biometric confirmation) only supplies the
// instant; how it was authenticated is not this engine's concern.
type checkInRequest struct {
	CheckedInAt time.Time `json:"checked_in_at" binding:"required"`
}

type sessionEventRequest struct {
	At *time.Time `json:"at"`
}

func (r sessionEventRequest) instant(clock domain.Clock) time.Time {
	if r.At != nil {
		return *r.At
	}
	return clock.Now()
}

func (h *CheckInHandler) RegisterRoutes(router *gin.RouterGroup) {
	checkins := router.Group("/checkins")
	{
		checkins.POST("", h.CheckIn)
		checkins.POST("/wake", h.WakeUp)
		checkins.POST("/abort", h.ManualCheckOut)
	}
	router.GET("/stats", h.Stats)
}

func (h *CheckInHandler) CheckIn(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.svc.CheckIn(c.Request.Context(), userID, req.CheckedInAt)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CheckInHandler) WakeUp(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// Body is optional; a missing instant means "now".
	var req sessionEventRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.svc.WakeUp(c.Request.Context(), userID, req.instant(h.clock))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CheckInHandler) ManualCheckOut(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req sessionEventRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.svc.ManualCheckOut(c.Request.Context(), userID, req.instant(h.clock))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CheckInHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidScheduleTime):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrCheckInNotFound) || errors.Is(err, domain.ErrScheduleNotFound) || errors.Is(err, domain.ErrStatsNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
