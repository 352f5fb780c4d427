package models

import (
	"time"
)

// Notification is the audit record written by the customer notifier.
// No real email is sent; the would-be message is logged and stored here.
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CustomerEmail string    `json:"customer_email" gorm:"size:255;not null"`
	BookingID     uint      `json:"booking_id" gorm:"not null;index"`
	Subject       string    `json:"subject" gorm:"size:255;not null"`
	Body          string    `json:"body" gorm:"type:text"`
	ImageURL      string    `json:"image_url" gorm:"size:500"`
	SentAt        time.Time `json:"sent_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
