package models

// Measurement represents a body measurement entry. Every metric is
// independently optional; a partial measurement is valid.
type Measurement struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	UserID      uint     `gorm:"index;not null" json:"user_id"`
	Date        Date     `gorm:"not null;index" json:"date"`
	Weight      *float64 `json:"weight"`
	BodyFat     *float64 `json:"body_fat"`
	Neck        *float64 `json:"neck"`
	Chest       *float64 `json:"chest"`
	Waist       *float64 `json:"waist"`
	Hips        *float64 `json:"hips"`
	BicepsLeft  *float64 `json:"biceps_left"`
	BicepsRight *float64 `json:"biceps_right"`
	ThighLeft   *float64 `json:"thigh_left"`
	ThighRight  *float64 `json:"thigh_right"`
	CalfLeft    *float64 `json:"calf_left"`
	CalfRight   *float64 `json:"calf_right"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Measurement model
func (Measurement) TableName() string {
	return "measurements"
}
