package handler

import (
	"errors"
	"strconv"

	"github.com/fitlog-server/internal/middleware"
	"github.com/fitlog-server/internal/repository"
	"github.com/fitlog-server/internal/service"
	"github.com/fitlog-server/pkg/response"
	"github.com/gin-gonic/gin"
)

// MeasurementHandler handles body measurement API requests
type MeasurementHandler struct {
	measurementService *service.MeasurementService
	statsService       *service.StatsService
}

// NewMeasurementHandler creates a new MeasurementHandler
func NewMeasurementHandler(measurementService *service.MeasurementService, statsService *service.StatsService) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
		statsService:       statsService,
	}
}

// ListMeasurements handles listing the caller's measurements
// GET /api/measurements
func (h *MeasurementHandler) ListMeasurements(c *gin.Context) {
	userID := middleware.GetUserID(c)

	skip, limit := parseSkipLimit(c)
	startDate, ok := parseDateQuery(c, "start_date")
	if !ok {
		response.BadRequest(c, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, ok := parseDateQuery(c, "end_date")
	if !ok {
		response.BadRequest(c, "invalid end_date, expected YYYY-MM-DD")
		return
	}

	measurements, total, err := h.measurementService.List(userID, repository.MeasurementFilter{
		StartDate: startDate,
		EndDate:   endDate,
		Skip:      skip,
		Limit:     limit,
	})
	if err != nil {
		response.InternalError(c, "failed to list measurements")
		return
	}

	response.SuccessList(c, measurements, total, skip, limit)
}

// GetMeasurement handles fetching one measurement
// GET /api/measurements/:id
func (h *MeasurementHandler) GetMeasurement(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid measurement id")
		return
	}

	measurement, err := h.measurementService.Get(userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrMeasurementNotFound) {
			response.NotFound(c, "measurement not found")
			return
		}
		response.InternalError(c, "failed to get measurement")
		return
	}

	response.Success(c, measurement)
}

// CreateMeasurement handles measurement creation
// POST /api/measurements
func (h *MeasurementHandler) CreateMeasurement(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.MeasurementCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	measurement, err := h.measurementService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c, "failed to create measurement")
		return
	}

	response.Created(c, measurement)
}

// UpdateMeasurement handles partial measurement update
// PUT /api/measurements/:id
func (h *MeasurementHandler) UpdateMeasurement(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid measurement id")
		return
	}

	var req service.MeasurementUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	measurement, err := h.measurementService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrMeasurementNotFound) {
			response.NotFound(c, "measurement not found")
			return
		}
		response.InternalError(c, "failed to update measurement")
		return
	}

	response.Success(c, measurement)
}

// DeleteMeasurement handles measurement deletion
// DELETE /api/measurements/:id
func (h *MeasurementHandler) DeleteMeasurement(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid measurement id")
		return
	}

	if err := h.measurementService.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrMeasurementNotFound) {
			response.NotFound(c, "measurement not found")
			return
		}
		response.InternalError(c, "failed to delete measurement")
		return
	}

	response.NoContent(c)
}

// Progress handles the trailing-window weight and body fat series
// GET /api/measurements/stats/progress
func (h *MeasurementHandler) Progress(c *gin.Context) {
	userID := middleware.GetUserID(c)

	periodDays, err := strconv.Atoi(c.DefaultQuery("period_days", "30"))
	if err != nil || periodDays < 7 || periodDays > 365 {
		response.BadRequest(c, "period_days must be between 7 and 365")
		return
	}

	progress, err := h.statsService.Progress(userID, periodDays)
	if err != nil {
		response.InternalError(c, "failed to compute progress")
		return
	}

	response.Success(c, progress)
}

// RegisterRoutes registers measurement routes
func (h *MeasurementHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	measurements := rg.Group("/measurements", authMiddleware)
	{
		measurements.GET("", h.ListMeasurements)
		measurements.POST("", h.CreateMeasurement)
		measurements.GET("/stats/progress", h.Progress)
		measurements.GET("/:id", h.GetMeasurement)
		measurements.PUT("/:id", h.UpdateMeasurement)
		measurements.DELETE("/:id", h.DeleteMeasurement)
	}
}
