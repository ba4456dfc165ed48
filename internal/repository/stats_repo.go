package repository

import (
	"github.com/fitlog-server/internal/models"
	"gorm.io/gorm"
)

// MacroTotals holds summed nutrition values; null columns sum to zero
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// ExerciseCount is an exercise name with its occurrence count
type ExerciseCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// WeightPoint is one point of the weight time series
type WeightPoint struct {
	Date   models.Date `json:"date"`
	Weight float64     `json:"weight"`
}

// BodyFatPoint is one point of the body fat time series
type BodyFatPoint struct {
	Date    models.Date `json:"date"`
	BodyFat float64     `json:"body_fat"`
}

// StatsRepository runs the read-only aggregate queries behind the stats
// endpoints. It never writes.
type StatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CountWorkouts counts all workouts a user ever logged
func (r *StatsRepository) CountWorkouts(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Workout{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountWorkoutsSince counts workouts on or after the given date
func (r *StatsRepository) CountWorkoutsSince(userID uint, from models.Date) (int64, error) {
	var count int64
	err := r.db.Model(&models.Workout{}).
		Where("user_id = ? AND date >= ?", userID, from).
		Count(&count).Error
	return count, err
}

// SumMacrosSince sums meal macros on or after the given date
func (r *StatsRepository) SumMacrosSince(userID uint, from models.Date) (MacroTotals, error) {
	var totals MacroTotals
	err := r.db.Model(&models.Meal{}).
		Select("COALESCE(SUM(calories), 0) AS calories, COALESCE(SUM(protein), 0) AS protein, COALESCE(SUM(carbs), 0) AS carbs, COALESCE(SUM(fat), 0) AS fat").
		Where("user_id = ? AND date >= ?", userID, from).
		Scan(&totals).Error
	return totals, err
}

// LatestWeight returns the most recent non-null weight, or nil when the user
// has never recorded one
func (r *StatsRepository) LatestWeight(userID uint) (*float64, error) {
	var measurements []models.Measurement
	err := r.db.Select("weight").
		Where("user_id = ? AND weight IS NOT NULL", userID).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&measurements).Error
	if err != nil {
		return nil, err
	}
	if len(measurements) == 0 {
		return nil, nil
	}
	return measurements[0].Weight, nil
}

// CountActiveGoals counts goals not yet completed
func (r *StatsRepository) CountActiveGoals(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Goal{}).
		Where("user_id = ? AND is_completed = ?", userID, false).
		Count(&count).Error
	return count, err
}

// WorkoutsInRange retrieves the date and duration of workouts with
// from <= date < to, oldest first
func (r *StatsRepository) WorkoutsInRange(userID uint, from, to models.Date) ([]models.Workout, error) {
	var workouts []models.Workout
	err := r.db.Select("id", "date", "duration").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date, id").
		Find(&workouts).Error
	return workouts, err
}

// WorkoutTotals returns the workout count and summed duration, optionally
// bounded to workouts on or after a start date
func (r *StatsRepository) WorkoutTotals(userID uint, from *models.Date) (int64, int64, error) {
	query := r.db.Model(&models.Workout{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}

	var result struct {
		Count         int64
		TotalDuration int64
	}
	err := query.
		Select("COUNT(*) AS count, COALESCE(SUM(duration), 0) AS total_duration").
		Scan(&result).Error
	return result.Count, result.TotalDuration, err
}

// TopExercises returns the most frequent exercise names across a user's
// workouts, descending by count, optionally bounded by [from, to)
func (r *StatsRepository) TopExercises(userID uint, from, to *models.Date, limit int) ([]ExerciseCount, error) {
	query := r.db.Model(&models.Exercise{}).
		Joins("JOIN workouts ON workouts.id = exercises.workout_id").
		Where("workouts.user_id = ?", userID)
	if from != nil {
		query = query.Where("workouts.date >= ?", *from)
	}
	if to != nil {
		query = query.Where("workouts.date < ?", *to)
	}

	var counts []ExerciseCount
	err := query.
		Select("exercises.name AS name, COUNT(exercises.id) AS count").
		Group("exercises.name").
		Order("count DESC, name").
		Limit(limit).
		Scan(&counts).Error
	return counts, err
}

// WeightSeries returns chronological (date, weight) points since the given
// date, skipping rows without a weight
func (r *StatsRepository) WeightSeries(userID uint, from models.Date) ([]WeightPoint, error) {
	var points []WeightPoint
	err := r.db.Model(&models.Measurement{}).
		Select("date, weight").
		Where("user_id = ? AND date >= ? AND weight IS NOT NULL", userID, from).
		Order("date, id").
		Scan(&points).Error
	return points, err
}

// BodyFatSeries returns chronological (date, body fat) points since the
// given date, skipping rows without a body fat value
func (r *StatsRepository) BodyFatSeries(userID uint, from models.Date) ([]BodyFatPoint, error) {
	var points []BodyFatPoint
	err := r.db.Model(&models.Measurement{}).
		Select("date, body_fat").
		Where("user_id = ? AND date >= ? AND body_fat IS NOT NULL", userID, from).
		Order("date, id").
		Scan(&points).Error
	return points, err
}
