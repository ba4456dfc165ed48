package repository

import (
	"errors"

	"github.com/fitlog-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

// GoalRepository handles goal data access
type GoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create creates a new goal
func (r *GoalRepository) Create(goal *models.Goal) error {
	return r.db.Create(goal).Error
}

// GetByIDAndUserID retrieves a goal scoped to the owning user
func (r *GoalRepository) GetByIDAndUserID(id, userID uint) (*models.Goal, error) {
	var goal models.Goal
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&goal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, result.Error
	}
	return &goal, nil
}

// ListByUserID retrieves all goals for a user, newest first
func (r *GoalRepository) ListByUserID(userID uint, skip, limit int) ([]models.Goal, int64, error) {
	var total int64
	if err := r.db.Model(&models.Goal{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var goals []models.Goal
	result := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&goals)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return goals, total, nil
}

// Update persists changed goal fields
func (r *GoalRepository) Update(goal *models.Goal) error {
	return r.db.Omit(clause.Associations).Save(goal).Error
}

// Delete removes a goal owned by the user
func (r *GoalRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}
