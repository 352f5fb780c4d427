package models

import (
	"time"
)

// ProgressUpdate is a staff-authored photo + note attached to an
// in-progress booking, shown to the customer in their gallery.
type ProgressUpdate struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	BookingID     uint      `json:"booking_id" gorm:"not null;index"`
	ImageURL      string    `json:"image_url" gorm:"size:500;not null"`
	Message       string    `json:"message" gorm:"size:500"`
	CustomerEmail string    `json:"customer_email" gorm:"size:255;not null"`
	CarDetails    string    `json:"car_details" gorm:"size:255"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Booking Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the ProgressUpdate model
func (ProgressUpdate) TableName() string {
	return "progress_updates"
}
