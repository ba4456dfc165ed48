package models

import (
	"time"
)

// Workout represents a single training session with its exercises
type Workout struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Date      Date      `gorm:"not null;index" json:"date"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Duration  *int      `json:"duration"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Exercises []Exercise `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"exercises"`
}

// TableName specifies the table name for Workout model
func (Workout) TableName() string {
	return "workouts"
}

// Exercise represents one exercise inside a workout. OrderNum is a
// caller-supplied display hint with no uniqueness guarantee.
type Exercise struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	WorkoutID uint    `gorm:"index;not null" json:"workout_id"`
	Name      string  `gorm:"size:100;not null" json:"name"`
	Category  *string `gorm:"size:50" json:"category"`
	OrderNum  int     `gorm:"column:order_num;default:0" json:"order"`

	// Relations
	Workout Workout       `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"-"`
	Sets    []ExerciseSet `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE" json:"sets"`
}

// TableName specifies the table name for Exercise model
func (Exercise) TableName() string {
	return "exercises"
}

// ExerciseSet represents one set of an exercise
type ExerciseSet struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	ExerciseID uint     `gorm:"index;not null" json:"exercise_id"`
	SetNumber  int      `gorm:"not null" json:"set_number"`
	Reps       *int     `json:"reps"`
	Weight     *float64 `json:"weight"`
	RestTime   *int     `json:"rest_time"`
	Completed  bool     `json:"completed"`

	// Relations
	Exercise Exercise `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for ExerciseSet model
func (ExerciseSet) TableName() string {
	return "exercise_sets"
}
