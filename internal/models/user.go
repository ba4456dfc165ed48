package models

import (
	"time"
)

// User represents a registered user
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:100" json:"full_name"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations; deleting a user removes everything they own
	Workouts     []Workout     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Meals        []Meal        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Measurements []Measurement `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Goals        []Goal        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
