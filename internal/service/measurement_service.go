package service

import (
	"context"

	"github.com/fitlog-server/internal/models"
	"github.com/fitlog-server/internal/repository"
)

// MeasurementService handles body measurement CRUD scoped to the calling
// user
type MeasurementService struct {
	measurementRepo *repository.MeasurementRepository
	cache           *StatsCache
}

// NewMeasurementService creates a new MeasurementService
func NewMeasurementService(measurementRepo *repository.MeasurementRepository, cache *StatsCache) *MeasurementService {
	return &MeasurementService{
		measurementRepo: measurementRepo,
		cache:           cache,
	}
}

// MeasurementCreateRequest is the measurement creation payload; every
// metric is optional
type MeasurementCreateRequest struct {
	Date        models.Date `json:"date" binding:"required"`
	Weight      *float64    `json:"weight" binding:"omitempty,gt=0"`
	BodyFat     *float64    `json:"body_fat" binding:"omitempty,gte=0,lte=100"`
	Neck        *float64    `json:"neck" binding:"omitempty,gt=0"`
	Chest       *float64    `json:"chest" binding:"omitempty,gt=0"`
	Waist       *float64    `json:"waist" binding:"omitempty,gt=0"`
	Hips        *float64    `json:"hips" binding:"omitempty,gt=0"`
	BicepsLeft  *float64    `json:"biceps_left" binding:"omitempty,gt=0"`
	BicepsRight *float64    `json:"biceps_right" binding:"omitempty,gt=0"`
	ThighLeft   *float64    `json:"thigh_left" binding:"omitempty,gt=0"`
	ThighRight  *float64    `json:"thigh_right" binding:"omitempty,gt=0"`
	CalfLeft    *float64    `json:"calf_left" binding:"omitempty,gt=0"`
	CalfRight   *float64    `json:"calf_right" binding:"omitempty,gt=0"`
}

// MeasurementUpdateRequest is a partial update; only non-nil fields are
// applied
type MeasurementUpdateRequest struct {
	Date        *models.Date `json:"date"`
	Weight      *float64     `json:"weight" binding:"omitempty,gt=0"`
	BodyFat     *float64     `json:"body_fat" binding:"omitempty,gte=0,lte=100"`
	Neck        *float64     `json:"neck" binding:"omitempty,gt=0"`
	Chest       *float64     `json:"chest" binding:"omitempty,gt=0"`
	Waist       *float64     `json:"waist" binding:"omitempty,gt=0"`
	Hips        *float64     `json:"hips" binding:"omitempty,gt=0"`
	BicepsLeft  *float64     `json:"biceps_left" binding:"omitempty,gt=0"`
	BicepsRight *float64     `json:"biceps_right" binding:"omitempty,gt=0"`
	ThighLeft   *float64     `json:"thigh_left" binding:"omitempty,gt=0"`
	ThighRight  *float64     `json:"thigh_right" binding:"omitempty,gt=0"`
	CalfLeft    *float64     `json:"calf_left" binding:"omitempty,gt=0"`
	CalfRight   *float64     `json:"calf_right" binding:"omitempty,gt=0"`
}

// Create inserts a measurement for the user
func (s *MeasurementService) Create(ctx context.Context, userID uint, req *MeasurementCreateRequest) (*models.Measurement, error) {
	measurement := &models.Measurement{
		UserID:      userID,
		Date:        req.Date,
		Weight:      req.Weight,
		BodyFat:     req.BodyFat,
		Neck:        req.Neck,
		Chest:       req.Chest,
		Waist:       req.Waist,
		Hips:        req.Hips,
		BicepsLeft:  req.BicepsLeft,
		BicepsRight: req.BicepsRight,
		ThighLeft:   req.ThighLeft,
		ThighRight:  req.ThighRight,
		CalfLeft:    req.CalfLeft,
		CalfRight:   req.CalfRight,
	}

	if err := s.measurementRepo.Create(measurement); err != nil {
		return nil, err
	}

	s.cache.InvalidateDashboard(ctx, userID)
	return measurement, nil
}

// List returns the user's measurements, newest first
func (s *MeasurementService) List(userID uint, filter repository.MeasurementFilter) ([]models.Measurement, int64, error) {
	return s.measurementRepo.ListByUserID(userID, filter)
}

// Get returns one measurement
func (s *MeasurementService) Get(userID, id uint) (*models.Measurement, error) {
	return s.measurementRepo.GetByIDAndUserID(id, userID)
}

// Update applies the supplied fields to a measurement owned by the user
func (s *MeasurementService) Update(ctx context.Context, userID, id uint, req *MeasurementUpdateRequest) (*models.Measurement, error) {
	measurement, err := s.measurementRepo.GetByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		measurement.Date = *req.Date
	}
	if req.Weight != nil {
		measurement.Weight = req.Weight
	}
	if req.BodyFat != nil {
		measurement.BodyFat = req.BodyFat
	}
	if req.Neck != nil {
		measurement.Neck = req.Neck
	}
	if req.Chest != nil {
		measurement.Chest = req.Chest
	}
	if req.Waist != nil {
		measurement.Waist = req.Waist
	}
	if req.Hips != nil {
		measurement.Hips = req.Hips
	}
	if req.BicepsLeft != nil {
		measurement.BicepsLeft = req.BicepsLeft
	}
	if req.BicepsRight != nil {
		measurement.BicepsRight = req.BicepsRight
	}
	if req.ThighLeft != nil {
		measurement.ThighLeft = req.ThighLeft
	}
	if req.ThighRight != nil {
		measurement.ThighRight = req.ThighRight
	}
	if req.CalfLeft != nil {
		measurement.CalfLeft = req.CalfLeft
	}
	if req.CalfRight != nil {
		measurement.CalfRight = req.CalfRight
	}

	if err := s.measurementRepo.Update(measurement); err != nil {
		return nil, err
	}

	s.cache.InvalidateDashboard(ctx, userID)
	return measurement, nil
}

// Delete removes a measurement owned by the user
func (s *MeasurementService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.measurementRepo.Delete(id, userID); err != nil {
		return err
	}
	s.cache.InvalidateDashboard(ctx, userID)
	return nil
}
