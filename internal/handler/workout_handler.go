package handler

import (
	"errors"

	"github.com/fitlog-server/internal/middleware"
	"github.com/fitlog-server/internal/repository"
	"github.com/fitlog-server/internal/service"
	"github.com/fitlog-server/pkg/response"
	"github.com/gin-gonic/gin"
)

// WorkoutHandler handles workout API requests
type WorkoutHandler struct {
	workoutService *service.WorkoutService
	statsService   *service.StatsService
}

// NewWorkoutHandler creates a new WorkoutHandler
func NewWorkoutHandler(workoutService *service.WorkoutService, statsService *service.StatsService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		statsService:   statsService,
	}
}

// ListWorkouts handles listing the caller's workouts
// GET /api/workouts
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
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

	workouts, total, err := h.workoutService.List(userID, repository.WorkoutFilter{
		StartDate: startDate,
		EndDate:   endDate,
		Skip:      skip,
		Limit:     limit,
	})
	if err != nil {
		response.InternalError(c, "failed to list workouts")
		return
	}

	response.SuccessList(c, workouts, total, skip, limit)
}

// GetWorkout handles fetching one workout with exercises and sets
// GET /api/workouts/:id
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid workout id")
		return
	}

	workout, err := h.workoutService.Get(userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrWorkoutNotFound) {
			response.NotFound(c, "workout not found")
			return
		}
		response.InternalError(c, "failed to get workout")
		return
	}

	response.Success(c, workout)
}

// CreateWorkout handles compound workout creation
// POST /api/workouts
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.WorkoutCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c, "failed to create workout")
		return
	}

	response.Created(c, workout)
}

// UpdateWorkout handles partial workout update
// PUT /api/workouts/:id
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid workout id")
		return
	}

	var req service.WorkoutUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	workout, err := h.workoutService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrWorkoutNotFound) {
			response.NotFound(c, "workout not found")
			return
		}
		response.InternalError(c, "failed to update workout")
		return
	}

	response.Success(c, workout)
}

// DeleteWorkout handles workout deletion
// DELETE /api/workouts/:id
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid workout id")
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrWorkoutNotFound) {
			response.NotFound(c, "workout not found")
			return
		}
		response.InternalError(c, "failed to delete workout")
		return
	}

	response.NoContent(c)
}

// WorkoutSummary handles the named-period workout summary
// GET /api/workouts/stats/summary
func (h *WorkoutHandler) WorkoutSummary(c *gin.Context) {
	userID := middleware.GetUserID(c)

	period := c.DefaultQuery("period", "month")
	summary, err := h.statsService.WorkoutSummary(userID, period)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, "period must be one of week, month, year, all")
			return
		}
		response.InternalError(c, "failed to compute workout summary")
		return
	}

	response.Success(c, summary)
}

// RegisterRoutes registers workout routes
func (h *WorkoutHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	workouts := rg.Group("/workouts", authMiddleware)
	{
		workouts.GET("", h.ListWorkouts)
		workouts.POST("", h.CreateWorkout)
		workouts.GET("/stats/summary", h.WorkoutSummary)
		workouts.GET("/:id", h.GetWorkout)
		workouts.PUT("/:id", h.UpdateWorkout)
		workouts.DELETE("/:id", h.DeleteWorkout)
	}
}
