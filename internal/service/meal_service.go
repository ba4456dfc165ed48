package service

import (
	"context"

	"github.com/fitlog-server/internal/models"
	"github.com/fitlog-server/internal/repository"
)

// MealService handles meal CRUD scoped to the calling user
type MealService struct {
	mealRepo *repository.MealRepository
	cache    *StatsCache
}

// NewMealService creates a new MealService
func NewMealService(mealRepo *repository.MealRepository, cache *StatsCache) *MealService {
	return &MealService{
		mealRepo: mealRepo,
		cache:    cache,
	}
}

// MealCreateRequest is the meal creation payload
type MealCreateRequest struct {
	Date     models.Date `json:"date" binding:"required"`
	MealType string      `json:"meal_type" binding:"required,max=20"`
	Name     string      `json:"name" binding:"required,max=200"`
	Calories *float64    `json:"calories" binding:"omitempty,gte=0"`
	Protein  *float64    `json:"protein" binding:"omitempty,gte=0"`
	Carbs    *float64    `json:"carbs" binding:"omitempty,gte=0"`
	Fat      *float64    `json:"fat" binding:"omitempty,gte=0"`
	Notes    *string     `json:"notes"`
}

// MealUpdateRequest is a partial update; only non-nil fields are applied
type MealUpdateRequest struct {
	Date     *models.Date `json:"date"`
	MealType *string      `json:"meal_type" binding:"omitempty,max=20"`
	Name     *string      `json:"name" binding:"omitempty,max=200"`
	Calories *float64     `json:"calories" binding:"omitempty,gte=0"`
	Protein  *float64     `json:"protein" binding:"omitempty,gte=0"`
	Carbs    *float64     `json:"carbs" binding:"omitempty,gte=0"`
	Fat      *float64     `json:"fat" binding:"omitempty,gte=0"`
	Notes    *string      `json:"notes"`
}

// Create inserts a meal for the user
func (s *MealService) Create(ctx context.Context, userID uint, req *MealCreateRequest) (*models.Meal, error) {
	meal := &models.Meal{
		UserID:   userID,
		Date:     req.Date,
		MealType: req.MealType,
		Name:     req.Name,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Notes:    req.Notes,
	}

	if err := s.mealRepo.Create(meal); err != nil {
		return nil, err
	}

	s.cache.InvalidateDashboard(ctx, userID)
	return meal, nil
}

// List returns the user's meals, newest first
func (s *MealService) List(userID uint, filter repository.MealFilter) ([]models.Meal, int64, error) {
	return s.mealRepo.ListByUserID(userID, filter)
}

// Get returns one meal
func (s *MealService) Get(userID, id uint) (*models.Meal, error) {
	return s.mealRepo.GetByIDAndUserID(id, userID)
}

// Update applies the supplied fields to a meal owned by the user
func (s *MealService) Update(ctx context.Context, userID, id uint, req *MealUpdateRequest) (*models.Meal, error) {
	meal, err := s.mealRepo.GetByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		meal.Date = *req.Date
	}
	if req.MealType != nil {
		meal.MealType = *req.MealType
	}
	if req.Name != nil {
		meal.Name = *req.Name
	}
	if req.Calories != nil {
		meal.Calories = req.Calories
	}
	if req.Protein != nil {
		meal.Protein = req.Protein
	}
	if req.Carbs != nil {
		meal.Carbs = req.Carbs
	}
	if req.Fat != nil {
		meal.Fat = req.Fat
	}
	if req.Notes != nil {
		meal.Notes = req.Notes
	}

	if err := s.mealRepo.Update(meal); err != nil {
		return nil, err
	}

	s.cache.InvalidateDashboard(ctx, userID)
	return meal, nil
}

// Delete removes a meal owned by the user
func (s *MealService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.mealRepo.Delete(id, userID); err != nil {
		return err
	}
	s.cache.InvalidateDashboard(ctx, userID)
	return nil
}
