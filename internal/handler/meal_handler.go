package handler

import (
	"errors"

	"github.com/fitlog-server/internal/middleware"
	"github.com/fitlog-server/internal/repository"
	"github.com/fitlog-server/internal/service"
	"github.com/fitlog-server/pkg/response"
	"github.com/gin-gonic/gin"
)

// MealHandler handles meal API requests
type MealHandler struct {
	mealService  *service.MealService
	statsService *service.StatsService
}

// NewMealHandler creates a new MealHandler
func NewMealHandler(mealService *service.MealService, statsService *service.StatsService) *MealHandler {
	return &MealHandler{
		mealService:  mealService,
		statsService: statsService,
	}
}

// ListMeals handles listing the caller's meals
// GET /api/meals
func (h *MealHandler) ListMeals(c *gin.Context) {
	userID := middleware.GetUserID(c)

	skip, limit := parseSkipLimit(c)
	date, ok := parseDateQuery(c, "date_filter")
	if !ok {
		response.BadRequest(c, "invalid date_filter, expected YYYY-MM-DD")
		return
	}

	meals, total, err := h.mealService.List(userID, repository.MealFilter{
		Date:     date,
		MealType: c.Query("meal_type"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		response.InternalError(c, "failed to list meals")
		return
	}

	response.SuccessList(c, meals, total, skip, limit)
}

// GetMeal handles fetching one meal
// GET /api/meals/:id
func (h *MealHandler) GetMeal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid meal id")
		return
	}

	meal, err := h.mealService.Get(userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrMealNotFound) {
			response.NotFound(c, "meal not found")
			return
		}
		response.InternalError(c, "failed to get meal")
		return
	}

	response.Success(c, meal)
}

// CreateMeal handles meal creation
// POST /api/meals
func (h *MealHandler) CreateMeal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.MealCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	meal, err := h.mealService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c, "failed to create meal")
		return
	}

	response.Created(c, meal)
}

// UpdateMeal handles partial meal update
// PUT /api/meals/:id
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid meal id")
		return
	}

	var req service.MealUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	meal, err := h.mealService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrMealNotFound) {
			response.NotFound(c, "meal not found")
			return
		}
		response.InternalError(c, "failed to update meal")
		return
	}

	response.Success(c, meal)
}

// DeleteMeal handles meal deletion
// DELETE /api/meals/:id
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid meal id")
		return
	}

	if err := h.mealService.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrMealNotFound) {
			response.NotFound(c, "meal not found")
			return
		}
		response.InternalError(c, "failed to delete meal")
		return
	}

	response.NoContent(c)
}

// DailySummary handles the per-day meal summary
// GET /api/meals/daily/summary
func (h *MealHandler) DailySummary(c *gin.Context) {
	userID := middleware.GetUserID(c)

	date, ok := parseDateQuery(c, "target_date")
	if !ok {
		response.BadRequest(c, "invalid target_date, expected YYYY-MM-DD")
		return
	}

	summary, err := h.statsService.DailyMeals(userID, date)
	if err != nil {
		response.InternalError(c, "failed to compute daily summary")
		return
	}

	response.Success(c, summary)
}

// RegisterRoutes registers meal routes
func (h *MealHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	meals := rg.Group("/meals", authMiddleware)
	{
		meals.GET("", h.ListMeals)
		meals.POST("", h.CreateMeal)
		meals.GET("/daily/summary", h.DailySummary)
		meals.GET("/:id", h.GetMeal)
		meals.PUT("/:id", h.UpdateMeal)
		meals.DELETE("/:id", h.DeleteMeal)
	}
}
