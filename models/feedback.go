package models

import (
	"time"
)

type Satisfaction string

const (
	SatisfactionPositive Satisfaction = "positive"
	SatisfactionNeutral  Satisfaction = "neutral"
	SatisfactionNegative Satisfaction = "negative"
)

// Feedback is a customer review. Created once, never mutated; only a
// superadmin may remove it.
type Feedback struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	UserID       uint         `json:"user_id" gorm:"not null;index"`
	Rating       int          `json:"rating" gorm:"type:int;check:rating >= 1 AND rating <= 5"`
	Message      string       `json:"message" gorm:"type:text"`
	Satisfaction Satisfaction `json:"satisfaction" gorm:"type:varchar(10);check:satisfaction IN ('positive','neutral','negative')"`
	CreatedAt    time.Time    `json:"created_at" gorm:"autoCreateTime"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName sets custom table name
func (Feedback) TableName() string { return "feedback" }
