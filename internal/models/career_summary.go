package models

import (
	"time"

	"gorm.io/datatypes"
)

// CareerSummary keeps every generated piece of career advice together with
// the profile it was generated from.
type CareerSummary struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"not null;index"`
	Summary         string         `json:"summary" gorm:"type:text;not null"`
	ProfileSnapshot datatypes.JSON `json:"profile_snapshot,omitempty" gorm:"type:json"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (CareerSummary) TableName() string {
	return "career_summaries"
}
