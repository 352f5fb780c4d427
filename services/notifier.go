package services

import (
	"errors"
	"fmt"
	"log"

	"autogenics-server/database"
	"autogenics-server/models"
)

// Notifier delivers progress updates to customers. The current
// implementation only logs the would-be email and records an audit row;
// callers treat every failure as non-fatal.
type Notifier struct{}

// NewNotifier creates a notifier
func NewNotifier() *Notifier {
	return &Notifier{}
}

var ErrMissingNotificationFields = errors.New("missing required fields")

// NotifyCustomer logs the notification and stores an audit record. Email,
// booking id and image URL are required; the message defaults to a generic
// progress line.
func (n *Notifier) NotifyCustomer(customerEmail string, bookingID uint, message, imageURL, carDetails string) error {
	if customerEmail == "" || bookingID == 0 || imageURL == "" {
		return ErrMissingNotificationFields
	}

	if message == "" {
		message = "Your vehicle service is in progress. Here's an update!"
	}

	subject := fmt.Sprintf("Update on Your Vehicle Service (Booking #%d)", bookingID)
	body := fmt.Sprintf("%s\n\nView your progress photo: %s\n\nCar Details: %s\n\nThis is an automated message from Autogenics.",
		message, imageURL, carDetails)

	// No email provider is wired up yet; log what would be sent.
	log.Printf("📧 Would send email to %s\nSubject: %s\n%s", customerEmail, subject, body)

	notification := models.Notification{
		CustomerEmail: customerEmail,
		BookingID:     bookingID,
		Subject:       subject,
		Body:          body,
		ImageURL:      imageURL,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("⚠️ Failed to record notification for booking %d: %v", bookingID, err)
		return err
	}

	return nil
}
