package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"autogenics-server/catalog"
	"autogenics-server/database"
	"autogenics-server/models"
	ws "autogenics-server/websocket"
)

// RegisterBookingRoutes registers the customer-facing booking routes.
// All routes here require authentication.
func RegisterBookingRoutes(router *gin.RouterGroup, hub *ws.Hub) {
	router.POST("/bookings", func(c *gin.Context) { CreateBooking(c, hub) })
	router.GET("/bookings/my", GetMyBookings)
	router.DELETE("/bookings/:id", func(c *gin.Context) { DeleteOwnBooking(c, hub) })
	router.GET("/bookings/:id/progress", GetBookingProgress)
}

// isUniqueViolation reports whether err came from the active-slot unique
// index. TranslateError covers sqlite; the pq path covers raw postgres
// errors that arrive untranslated.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// CreateBooking reserves a date+slot. The pre-check gives the friendly
// conflict message; the partial unique index decides races.
func CreateBooking(c *gin.Context, hub *ws.Hub) {
	var req struct {
		Date      string `json:"date" binding:"required,bookingdate"`
		TimeSlot  string `json:"time_slot" binding:"required,timeslot"`
		ServiceID string `json:"service_id" binding:"required,serviceid"`
		CarMake   string `json:"car_make" binding:"required,max=100"`
		CarModel  string `json:"car_model" binding:"required,max=100"`
		Phone     string `json:"phone" binding:"required,max=20"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	user := c.MustGet("user").(models.User)
	service, _ := catalog.ServiceByID(req.ServiceID)

	// Friendly pre-check before the insert attempt
	taken, err := bookedSlots(req.Date)
	if err == nil {
		for _, slot := range taken {
			if slot == req.TimeSlot {
				c.JSON(http.StatusConflict, gin.H{
					"error":   "Time slot unavailable",
					"message": "This time slot has already been booked. Please choose another.",
				})
				return
			}
		}
	}

	booking := models.Booking{
		UserID:      user.ID,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		ServiceID:   service.ID,
		ServiceName: service.Name,
		Price:       service.Price,
		CarMake:     strings.TrimSpace(req.CarMake),
		CarModel:    strings.TrimSpace(req.CarModel),
		Phone:       strings.TrimSpace(req.Phone),
		Status:      models.BookingStatusConfirmed,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Time slot unavailable",
				"message": "This time slot has already been booked. Please choose another.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create booking",
			"message": err.Error(),
		})
		return
	}

	log.Printf("✅ Booking %d created: %s %s for user %d", booking.ID, booking.Date, booking.TimeSlot, user.ID)
	hub.NotifyChange("bookings", "INSERT", booking.ID)
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GetMyBookings lists the caller's bookings newest-date first, plus an
// active-booking hint: the first in_progress booking, else the most recent.
func GetMyBookings(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var bookings []models.Booking
	err := database.DB.
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&bookings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load bookings",
			"message": err.Error(),
		})
		return
	}

	var activeID uint
	for _, b := range bookings {
		if b.Status == models.BookingStatusInProgress {
			activeID = b.ID
			break
		}
	}
	if activeID == 0 && len(bookings) > 0 {
		activeID = bookings[0].ID
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":          bookings,
		"active_booking_id": activeID,
	})
}

// DeleteOwnBooking lets a customer remove one of their own bookings while
// it is still in a non-terminal state.
func DeleteOwnBooking(c *gin.Context, hub *ws.Hub) {
	userID := c.MustGet("user_id").(uint)

	var booking models.Booking
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No such booking for this account",
		})
		return
	}

	if booking.IsTerminal() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Booking cannot be cancelled",
			"message": "Completed or cancelled bookings cannot be removed",
		})
		return
	}

	if err := database.DB.Delete(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to cancel booking",
			"message": err.Error(),
		})
		return
	}

	log.Printf("🗑️ Booking %d cancelled by owner %d", booking.ID, userID)
	hub.NotifyChange("bookings", "DELETE", booking.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// GetBookingProgress returns the progress-photo gallery for a booking the
// caller owns.
func GetBookingProgress(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var booking models.Booking
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&booking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No such booking for this account",
		})
		return
	}

	var updates []models.ProgressUpdate
	err := database.DB.
		Where("booking_id = ?", booking.ID).
		Order("created_at DESC").
		Find(&updates).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load progress updates",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress_updates": updates})
}
