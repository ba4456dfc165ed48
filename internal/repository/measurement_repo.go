package repository

import (
	"errors"

	"github.com/fitlog-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMeasurementNotFound = errors.New("measurement not found")
)

// MeasurementFilter narrows a measurement listing
type MeasurementFilter struct {
	StartDate *models.Date
	EndDate   *models.Date
	Skip      int
	Limit     int
}

// MeasurementRepository handles body measurement data access
type MeasurementRepository struct {
	db *gorm.DB
}

// NewMeasurementRepository creates a new MeasurementRepository
func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// Create creates a new measurement
func (r *MeasurementRepository) Create(measurement *models.Measurement) error {
	return r.db.Create(measurement).Error
}

// GetByIDAndUserID retrieves a measurement scoped to the owning user
func (r *MeasurementRepository) GetByIDAndUserID(id, userID uint) (*models.Measurement, error) {
	var measurement models.Measurement
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&measurement)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMeasurementNotFound
		}
		return nil, result.Error
	}
	return &measurement, nil
}

// ListByUserID retrieves measurements for a user, newest first, with
// optional date bounds
func (r *MeasurementRepository) ListByUserID(userID uint, filter MeasurementFilter) ([]models.Measurement, int64, error) {
	query := r.db.Model(&models.Measurement{}).Where("user_id = ?", userID)
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

	var measurements []models.Measurement
	result := query.
		Order("date DESC, id DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&measurements)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return measurements, total, nil
}

// Update persists changed measurement fields
func (r *MeasurementRepository) Update(measurement *models.Measurement) error {
	return r.db.Omit(clause.Associations).Save(measurement).Error
}

// Delete removes a measurement owned by the user
func (r *MeasurementRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Measurement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMeasurementNotFound
	}
	return nil
}
