package service

import (
	"context"

	"github.com/fitlog-server/internal/models"
	"github.com/fitlog-server/internal/repository"
)

// WorkoutService handles workout CRUD scoped to the calling user
type WorkoutService struct {
	workoutRepo *repository.WorkoutRepository
	cache       *StatsCache
}

// NewWorkoutService creates a new WorkoutService
func NewWorkoutService(workoutRepo *repository.WorkoutRepository, cache *StatsCache) *WorkoutService {
	return &WorkoutService{
		workoutRepo: workoutRepo,
		cache:       cache,
	}
}

// SetCreateRequest is one set inside a workout creation payload
type SetCreateRequest struct {
	SetNumber int      `json:"set_number" binding:"required"`
	Reps      *int     `json:"reps"`
	Weight    *float64 `json:"weight"`
	RestTime  *int     `json:"rest_time"`
	Completed *bool    `json:"completed"`
}

// ExerciseCreateRequest is one exercise inside a workout creation payload
type ExerciseCreateRequest struct {
	Name     string             `json:"name" binding:"required,max=100"`
	Category *string            `json:"category"`
	Order    int                `json:"order"`
	Sets     []SetCreateRequest `json:"sets" binding:"dive"`
}

// WorkoutCreateRequest is the compound workout creation payload
type WorkoutCreateRequest struct {
	Date      models.Date             `json:"date" binding:"required"`
	Name      string                  `json:"name" binding:"required,max=100"`
	Duration  *int                    `json:"duration"`
	Notes     *string                 `json:"notes"`
	Exercises []ExerciseCreateRequest `json:"exercises" binding:"dive"`
}

// WorkoutUpdateRequest is a partial update; only non-nil fields are applied
type WorkoutUpdateRequest struct {
	Date     *models.Date `json:"date"`
	Name     *string      `json:"name" binding:"omitempty,max=100"`
	Duration *int         `json:"duration"`
	Notes    *string      `json:"notes"`
}

// Create inserts a workout with its nested exercises and sets, all or
// nothing
func (s *WorkoutService) Create(ctx context.Context, userID uint, req *WorkoutCreateRequest) (*models.Workout, error) {
	workout := &models.Workout{
		UserID:   userID,
		Date:     req.Date,
		Name:     req.Name,
		Duration: req.Duration,
		Notes:    req.Notes,
	}

	for _, ex := range req.Exercises {
		exercise := models.Exercise{
			Name:     ex.Name,
			Category: ex.Category,
			OrderNum: ex.Order,
		}
		for _, set := range ex.Sets {
			completed := true
			if set.Completed != nil {
				completed = *set.Completed
			}
			exercise.Sets = append(exercise.Sets, models.ExerciseSet{
				SetNumber: set.SetNumber,
				Reps:      set.Reps,
				Weight:    set.Weight,
				RestTime:  set.RestTime,
				Completed: completed,
			})
		}
		workout.Exercises = append(workout.Exercises, exercise)
	}

	if err := s.workoutRepo.Create(workout); err != nil {
		return nil, err
	}

	s.cache.InvalidateDashboard(ctx, userID)
	return workout, nil
}

// List returns the user's workouts, newest first
func (s *WorkoutService) List(userID uint, filter repository.WorkoutFilter) ([]models.Workout, int64, error) {
	return s.workoutRepo.ListByUserID(userID, filter)
}

// Get returns one workout with exercises and sets
func (s *WorkoutService) Get(userID, id uint) (*models.Workout, error) {
	return s.workoutRepo.GetByIDAndUserID(id, userID)
}

// Update applies the supplied fields to a workout owned by the user
func (s *WorkoutService) Update(ctx context.Context, userID, id uint, req *WorkoutUpdateRequest) (*models.Workout, error) {
	workout, err := s.workoutRepo.GetByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		workout.Date = *req.Date
	}
	if req.Name != nil {
		workout.Name = *req.Name
	}
	if req.Duration != nil {
		workout.Duration = req.Duration
	}
	if req.Notes != nil {
		workout.Notes = req.Notes
	}

	if err := s.workoutRepo.Update(workout); err != nil {
		return nil, err
	}

	s.cache.InvalidateDashboard(ctx, userID)
	return workout, nil
}

// Delete removes a workout; its exercises and sets cascade
func (s *WorkoutService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.workoutRepo.Delete(id, userID); err != nil {
		return err
	}
	s.cache.InvalidateDashboard(ctx, userID)
	return nil
}
