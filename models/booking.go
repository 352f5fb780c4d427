package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Booking is a customer's reservation of one detailing service at one
// date+slot. Date is stored as a plain yyyy-MM-dd string; the system works
// entirely in local display dates. Price echoes the catalog display string
// at submission time.
type Booking struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	UserID      uint          `json:"user_id" gorm:"not null;index"`
	Date        string        `json:"date" gorm:"size:10;not null;index"`
	TimeSlot    string        `json:"time_slot" gorm:"size:20;not null"`
	ServiceID   string        `json:"service_id" gorm:"size:50;not null"`
	ServiceName string        `json:"service_name" gorm:"size:100;not null"`
	Price       string        `json:"price" gorm:"size:20;not null"`
	CarMake     string        `json:"car_make" gorm:"size:100;not null"`
	CarModel    string        `json:"car_model" gorm:"size:100;not null"`
	Phone       string        `json:"phone" gorm:"size:20;not null"`
	Status      BookingStatus `json:"status" gorm:"type:varchar(20);default:'confirmed';check:status IN ('confirmed','in_progress','completed','cancelled')"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User            User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ProgressUpdates []ProgressUpdate `json:"progress_updates,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// IsTerminal reports whether the booking has reached a final state.
// Customers may only cancel bookings that are not terminal.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// IsValidStatus checks a status label against the four known states.
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}
