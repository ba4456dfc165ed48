package models

import (
	"time"
)

// Meal represents a logged meal with optional macro values
type Meal struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	Date     Date      `gorm:"not null;index" json:"date"`
	MealType string    `gorm:"size:20;not null" json:"meal_type"`
	Name     string    `gorm:"size:200;not null" json:"name"`
	Calories *float64  `json:"calories"`
	Protein  *float64  `json:"protein"`
	Carbs    *float64  `json:"carbs"`
	Fat      *float64  `json:"fat"`
	Notes    *string   `gorm:"type:text" json:"notes"`
	Time     time.Time `gorm:"autoCreateTime" json:"time"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Meal model
func (Meal) TableName() string {
	return "meals"
}
