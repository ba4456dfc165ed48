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

// GoalHandler handles goal API requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// ListGoals handles listing the caller's goals
// GET /api/goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID := middleware.GetUserID(c)

	skip, limit := parseSkipLimit(c)
	goals, total, err := h.goalService.List(userID, skip, limit)
	if err != nil {
		response.InternalError(c, "failed to list goals")
		return
	}

	response.SuccessList(c, goals, total, skip, limit)
}

// GetGoal handles fetching one goal
// GET /api/goals/:id
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid goal id")
		return
	}

	goal, err := h.goalService.Get(userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			response.NotFound(c, "goal not found")
			return
		}
		response.InternalError(c, "failed to get goal")
		return
	}

	response.Success(c, goal)
}

// CreateGoal handles goal creation
// POST /api/goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.GoalCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c, "failed to create goal")
		return
	}

	response.Created(c, goal)
}

// UpdateGoal handles partial goal update
// PUT /api/goals/:id
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid goal id")
		return
	}

	var req service.GoalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			response.NotFound(c, "goal not found")
			return
		}
		response.InternalError(c, "failed to update goal")
		return
	}

	response.Success(c, goal)
}

// CompleteGoal records the final value and marks the goal completed
// PATCH /api/goals/:id/complete?current_value=X
func (h *GoalHandler) CompleteGoal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid goal id")
		return
	}

	currentValue, err := strconv.ParseFloat(c.Query("current_value"), 64)
	if err != nil {
		response.BadRequest(c, "current_value is required and must be a number")
		return
	}

	goal, err := h.goalService.Complete(c.Request.Context(), userID, id, currentValue)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			response.NotFound(c, "goal not found")
			return
		}
		response.InternalError(c, "failed to complete goal")
		return
	}

	response.Success(c, goal)
}

// DeleteGoal handles goal deletion
// DELETE /api/goals/:id
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid goal id")
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			response.NotFound(c, "goal not found")
			return
		}
		response.InternalError(c, "failed to delete goal")
		return
	}

	response.NoContent(c)
}

// RegisterRoutes registers goal routes
func (h *GoalHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	goals := rg.Group("/goals", authMiddleware)
	{
		goals.GET("", h.ListGoals)
		goals.POST("", h.CreateGoal)
		goals.GET("/:id", h.GetGoal)
		goals.PUT("/:id", h.UpdateGoal)
		goals.PATCH("/:id/complete", h.CompleteGoal)
		goals.DELETE("/:id", h.DeleteGoal)
	}
}
