package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"autogenics-server/catalog"
	"autogenics-server/database"
	"autogenics-server/models"
)

// RegisterPublicRoutes registers endpoints that need no authentication.
func RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.GET("/services", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"services":   catalog.Services,
			"time_slots": catalog.TimeSlots,
		})
	})

	// Availability reports which slot labels are already taken for a date.
	// Read failures are swallowed: the form shows every slot as open and
	// the submit path remains the arbiter.
	router.GET("/bookings/availability", GetAvailability)
}

// GetAvailability returns the booked (non-cancelled) slot labels for a date.
func GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date",
			"message": "date must be in yyyy-MM-dd format",
		})
		return
	}

	booked, err := bookedSlots(date)
	if err != nil {
		log.Printf("⚠️ Availability lookup failed for %s: %v", date, err)
		c.JSON(http.StatusOK, gin.H{"date": date, "booked_slots": []string{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "booked_slots": booked})
}

// bookedSlots lists taken slot labels for a date, filtered to the catalog.
func bookedSlots(date string) ([]string, error) {
	var labels []string
	err := database.DB.Model(&models.Booking{}).
		Where("date = ? AND status <> ?", date, models.BookingStatusCancelled).
		Pluck("time_slot", &labels).Error
	if err != nil {
		return nil, err
	}
	return catalog.FilterToTimeSlots(labels), nil
}
