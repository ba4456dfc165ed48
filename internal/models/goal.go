package models

import (
	"time"
)

// Goal represents a fitness goal with an optional target and deadline
type Goal struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description"`
	GoalType     *string   `gorm:"size:50" json:"goal_type"`
	TargetValue  *float64  `json:"target_value"`
	CurrentValue float64   `gorm:"default:0" json:"current_value"`
	Unit         string    `gorm:"size:20;default:'kg'" json:"unit"`
	Deadline     *Date     `json:"deadline"`
	IsCompleted  bool      `gorm:"default:false" json:"is_completed"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Goal model
func (Goal) TableName() string {
	return "goals"
}
