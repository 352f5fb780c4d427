package models

import (
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Phone        string    `json:"phone" gorm:"size:20"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	IsSuperAdmin bool      `json:"is_superadmin" gorm:"default:false"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Bookings []Booking  `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	Feedback []Feedback `json:"feedback,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "profiles"
}

// CanManageBookings reports whether the user may access the admin dashboard.
func (u *User) CanManageBookings() bool {
	return u.IsAdmin || u.IsSuperAdmin
}

// CanDelete reports whether the user may permanently remove rows.
// Destructive actions are reserved for superadmins.
func (u *User) CanDelete() bool {
	return u.IsSuperAdmin
}
