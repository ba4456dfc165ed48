package handler

import (
	"strconv"

	"github.com/fitlog-server/internal/middleware"
	"github.com/fitlog-server/internal/service"
	"github.com/fitlog-server/pkg/response"
	"github.com/gin-gonic/gin"
)

// StatsHandler handles the aggregate statistics API requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Dashboard handles the dashboard summary
// GET /api/stats/dashboard
func (h *StatsHandler) Dashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	stats, err := h.statsService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "failed to compute dashboard")
		return
	}

	response.Success(c, stats)
}

// MonthlyWorkouts handles the per-month workout rollup. Absent year/month
// parameters default to the current month inside the service.
// GET /api/stats/workouts/monthly?year=YYYY&month=M
func (h *StatsHandler) MonthlyWorkouts(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var year, month int
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			response.BadRequest(c, "invalid year")
			return
		}
		year = v
	}
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			response.BadRequest(c, "month must be between 1 and 12")
			return
		}
		month = v
	}

	stats, err := h.statsService.MonthlyWorkouts(userID, year, month)
	if err != nil {
		response.InternalError(c, "failed to compute monthly stats")
		return
	}

	response.Success(c, stats)
}

// DailyNutrition handles the per-day nutrition breakdown
// GET /api/stats/nutrition/daily?target_date=YYYY-MM-DD
func (h *StatsHandler) DailyNutrition(c *gin.Context) {
	userID := middleware.GetUserID(c)

	date, ok := parseDateQuery(c, "target_date")
	if !ok {
		response.BadRequest(c, "invalid target_date, expected YYYY-MM-DD")
		return
	}

	stats, err := h.statsService.DailyNutrition(userID, date)
	if err != nil {
		response.InternalError(c, "failed to compute nutrition stats")
		return
	}

	response.Success(c, stats)
}

// RegisterRoutes registers stats routes
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	stats := rg.Group("/stats", authMiddleware)
	{
		stats.GET("/dashboard", h.Dashboard)
		stats.GET("/workouts/monthly", h.MonthlyWorkouts)
		stats.GET("/nutrition/daily", h.DailyNutrition)
	}
}
