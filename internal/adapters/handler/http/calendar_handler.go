package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sleeptrain/checkin-engine/internal/adapters/handler/http/middleware"
	"github.com/sleeptrain/checkin-engine/internal/core/services"
)

const (
	defaultPastDays   = 30
	defaultFutureDays = 7
	maxRangeDays      = 366
)

type CalendarHandler struct {
	svc *services.CalendarService
}

func NewCalendarHandler(svc *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

func (h *CalendarHandler) RegisterRoutes(router *gin.RouterGroup) {
	calendar := router.Group("/calendar")
	{
		calendar.GET("", h.Range)
		calendar.GET("/widget", h.Widget)
	}
}

func rangeParams(c *gin.Context) (past, future int, ok bool) {
	past = defaultPastDays
	future = defaultFutureDays

	if v := c.Query("past"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "past must be a non-negative integer"})
			return 0, 0, false
		}
		past = parsed
	}
	if v := c.Query("future"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "future must be a non-negative integer"})
			return 0, 0, false
		}
		future = parsed
	}

	if past+future > maxRangeDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date range too large, max 1 year allowed"})
		return 0, 0, false
	}

	return past, future, true
}

func (h *CalendarHandler) Range(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	past, future, ok := rangeParams(c)
	if !ok {
		return
	}

	days, err := h.svc.Range(c.Request.Context(), userID, past, future)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *CalendarHandler) Widget(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	past, future, ok := rangeParams(c)
	if !ok {
		return
	}

	days, err := h.svc.StreakDays(c.Request.Context(), userID, past, future)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}
