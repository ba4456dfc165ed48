package service

import (
	"context"

	"github.com/fitlog-server/internal/models"
	"github.com/fitlog-server/internal/repository"
)

// GoalService handles goal CRUD scoped to the calling user
type GoalService struct {
	goalRepo *repository.GoalRepository
	cache    *StatsCache
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo *repository.GoalRepository, cache *StatsCache) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		cache:    cache,
	}
}

// GoalCreateRequest is the goal creation payload
type GoalCreateRequest struct {
	Title        string       `json:"title" binding:"required,max=200"`
	Description  *string      `json:"description"`
	GoalType     *string      `json:"goal_type" binding:"omitempty,max=50"`
	TargetValue  *float64     `json:"target_value"`
	CurrentValue *float64     `json:"current_value"`
	Unit         *string      `json:"unit" binding:"omitempty,max=20"`
	Deadline     *models.Date `json:"deadline"`
}

// GoalUpdateRequest is a partial update; only non-nil fields are applied
type GoalUpdateRequest struct {
	Title        *string      `json:"title" binding:"omitempty,max=200"`
	Description  *string      `json:"description"`
	GoalType     *string      `json:"goal_type" binding:"omitempty,max=50"`
	TargetValue  *float64     `json:"target_value"`
	CurrentValue *float64     `json:"current_value"`
	Unit         *string      `json:"unit" binding:"omitempty,max=20"`
	Deadline     *models.Date `json:"deadline"`
	IsCompleted  *bool        `json:"is_completed"`
}

// Create inserts a goal for the user
func (s *GoalService) Create(ctx context.Context, userID uint, req *GoalCreateRequest) (*models.Goal, error) {
	goal := &models.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		GoalType:    req.GoalType,
		TargetValue: req.TargetValue,
		Unit:        "kg",
		Deadline:    req.Deadline,
	}
	if req.CurrentValue != nil {
		goal.CurrentValue = *req.CurrentValue
	}
	if req.Unit != nil {
		goal.Unit = *req.Unit
	}

	if err := s.goalRepo.Create(goal); err != nil {
		return nil, err
	}

	s.cache.InvalidateDashboard(ctx, userID)
	return goal, nil
}

// List returns the user's goals, newest first
func (s *GoalService) List(userID uint, skip, limit int) ([]models.Goal, int64, error) {
	return s.goalRepo.ListByUserID(userID, skip, limit)
}

// Get returns one goal
func (s *GoalService) Get(userID, id uint) (*models.Goal, error) {
	return s.goalRepo.GetByIDAndUserID(id, userID)
}

// Update applies the supplied fields to a goal owned by the user
func (s *GoalService) Update(ctx context.Context, userID, id uint, req *GoalUpdateRequest) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = req.Description
	}
	if req.GoalType != nil {
		goal.GoalType = req.GoalType
	}
	if req.TargetValue != nil {
		goal.TargetValue = req.TargetValue
	}
	if req.CurrentValue != nil {
		goal.CurrentValue = *req.CurrentValue
	}
	if req.Unit != nil {
		goal.Unit = *req.Unit
	}
	if req.Deadline != nil {
		goal.Deadline = req.Deadline
	}
	if req.IsCompleted != nil {
		goal.IsCompleted = *req.IsCompleted
	}

	if err := s.goalRepo.Update(goal); err != nil {
		return nil, err
	}

	s.cache.InvalidateDashboard(ctx, userID)
	return goal, nil
}

// Complete records the final value and marks the goal completed. Calling it
// again is idempotent.
func (s *GoalService) Complete(ctx context.Context, userID, id uint, currentValue float64) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}

	goal.CurrentValue = currentValue
	goal.IsCompleted = true

	if err := s.goalRepo.Update(goal); err != nil {
		return nil, err
	}

	s.cache.InvalidateDashboard(ctx, userID)
	return goal, nil
}

// Delete removes a goal owned by the user
func (s *GoalService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.goalRepo.Delete(id, userID); err != nil {
		return err
	}
	s.cache.InvalidateDashboard(ctx, userID)
	return nil
}
