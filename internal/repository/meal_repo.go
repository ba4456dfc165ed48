package repository

import (
	"errors"

	"github.com/fitlog-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMealNotFound = errors.New("meal not found")
)

// MealFilter narrows a meal listing
type MealFilter struct {
	Date     *models.Date
	MealType string
	Skip     int
	Limit    int
}

// MealRepository handles meal data access
type MealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new MealRepository
func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

// Create creates a new meal
func (r *MealRepository) Create(meal *models.Meal) error {
	return r.db.Create(meal).Error
}

// GetByIDAndUserID retrieves a meal scoped to the owning user
func (r *MealRepository) GetByIDAndUserID(id, userID uint) (*models.Meal, error) {
	var meal models.Meal
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&meal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, result.Error
	}
	return &meal, nil
}

// ListByUserID retrieves meals for a user, newest first, optionally filtered
// by exact date and meal type
func (r *MealRepository) ListByUserID(userID uint, filter MealFilter) ([]models.Meal, int64, error) {
	query := r.db.Model(&models.Meal{}).Where("user_id = ?", userID)
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.MealType != "" {
		query = query.Where("meal_type = ?", filter.MealType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var meals []models.Meal
	result := query.
		Order("date DESC, id DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&meals)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return meals, total, nil
}

// ListByUserIDAndDate retrieves all meals a user logged on one date
func (r *MealRepository) ListByUserIDAndDate(userID uint, date models.Date) ([]models.Meal, error) {
	var meals []models.Meal
	result := r.db.Where("user_id = ? AND date = ?", userID, date).
		Order("time, id").
		Find(&meals)
	return meals, result.Error
}

// Update persists changed meal fields
func (r *MealRepository) Update(meal *models.Meal) error {
	return r.db.Omit(clause.Associations).Save(meal).Error
}

// Delete removes a meal owned by the user
func (r *MealRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Meal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMealNotFound
	}
	return nil
}
