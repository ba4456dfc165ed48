package repository

import (
	"errors"

	"github.com/fitlog-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
)

// WorkoutFilter narrows a workout listing
type WorkoutFilter struct {
	StartDate *models.Date
	EndDate   *models.Date
	Skip      int
	Limit     int
}

// WorkoutRepository handles workout data access
type WorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new WorkoutRepository
func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// Create inserts a workout together with its nested exercises and sets in a
// single transaction; a failed nested insert leaves no partial rows.
func (r *WorkoutRepository) Create(workout *models.Workout) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(workout).Error
	})
}

// GetByIDAndUserID retrieves a workout with its exercises and sets, scoped
// to the owning user
func (r *WorkoutRepository) GetByIDAndUserID(id, userID uint) (*models.Workout, error) {
	var workout models.Workout
	result := r.db.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("exercises.order_num, exercises.id")
	}).Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB {
		return db.Order("exercise_sets.set_number, exercise_sets.id")
	}).Where("id = ? AND user_id = ?", id, userID).First(&workout)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, result.Error
	}
	return &workout, nil
}

// ListByUserID retrieves workouts for a user, newest first, with optional
// date bounds and skip/limit paging
func (r *WorkoutRepository) ListByUserID(userID uint, filter WorkoutFilter) ([]models.Workout, int64, error) {
	query := r.db.Model(&models.Workout{}).Where("user_id = ?", userID)
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var workouts []models.Workout
	result := query.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercises.order_num, exercises.id")
		}).
		Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_sets.set_number, exercise_sets.id")
		}).
		Order("date DESC, id DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&workouts)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return workouts, total, nil
}

// Update persists changed workout fields without touching the exercise
// associations
func (r *WorkoutRepository) Update(workout *models.Workout) error {
	return r.db.Omit(clause.Associations).Save(workout).Error
}

// Delete removes a workout owned by the user; exercises and sets cascade at
// the database level
func (r *WorkoutRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Workout{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// CountExercisesByWorkoutID counts exercise rows belonging to a workout
func (r *WorkoutRepository) CountExercisesByWorkoutID(workoutID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Exercise{}).Where("workout_id = ?", workoutID).Count(&count).Error
	return count, err
}

// CountSetsByWorkoutID counts set rows belonging to any exercise of a workout
func (r *WorkoutRepository) CountSetsByWorkoutID(workoutID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ExerciseSet{}).
		Joins("JOIN exercises ON exercises.id = exercise_sets.exercise_id").
		Where("exercises.workout_id = ?", workoutID).
		Count(&count).Error
	return count, err
}
