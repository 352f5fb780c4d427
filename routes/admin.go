package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"autogenics-server/config"
	"autogenics-server/database"
	"autogenics-server/models"
	"autogenics-server/services"
)

// RegisterAdminRoutes registers the dashboard, analytics, report and
// storage management routes. The group must already carry Auth +
// AdminAuth middleware.
func RegisterAdminRoutes(router *gin.RouterGroup, storage services.Storage) {
	router.GET("/dashboard/stats", GetDashboardStats)
	router.GET("/analytics", GetAnalytics)
	router.GET("/reports", ListReports)
	router.GET("/reports/:name", RunReport)
	router.POST("/storage/ensure", func(c *gin.Context) { EnsureStorage(c, storage) })
}

// GetDashboardStats returns the counters shown at the top of the admin panel.
func GetDashboardStats(c *gin.Context) {
	var stats struct {
		TotalCustomers    int64 `json:"total_customers"`
		TotalBookings     int64 `json:"total_bookings"`
		ActiveBookings    int64 `json:"active_bookings"`
		CompletedBookings int64 `json:"completed_bookings"`
		CancelledBookings int64 `json:"cancelled_bookings"`
		TodayBookings     int64 `json:"today_bookings"`
		ProgressUpdates   int64 `json:"progress_updates"`
		FeedbackEntries   int64 `json:"feedback_entries"`
	}

	today := time.Now().Format("2006-01-02")

	database.DB.Model(&models.User{}).Where("is_admin = ? AND is_super_admin = ?", false, false).Count(&stats.TotalCustomers)
	database.DB.Model(&models.Booking{}).Count(&stats.TotalBookings)
	database.DB.Model(&models.Booking{}).Where("status IN (?)", []string{
		string(models.BookingStatusConfirmed), string(models.BookingStatusInProgress),
	}).Count(&stats.ActiveBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusCompleted).Count(&stats.CompletedBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusCancelled).Count(&stats.CancelledBookings)
	database.DB.Model(&models.Booking{}).Where("date = ? AND status <> ?", today, models.BookingStatusCancelled).Count(&stats.TodayBookings)
	database.DB.Model(&models.ProgressUpdate{}).Count(&stats.ProgressUpdates)
	database.DB.Model(&models.Feedback{}).Count(&stats.FeedbackEntries)

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetAnalytics returns the aggregations behind the analytics charts.
func GetAnalytics(c *gin.Context) {
	var bookings []models.Booking
	if err := database.DB.Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load bookings",
			"message": err.Error(),
		})
		return
	}

	var feedback []models.Feedback
	if err := database.DB.Find(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load feedback",
			"message": err.Error(),
		})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"bookings_by_service":   services.BookingsByService(bookings),
		"bookings_by_month":     services.BookingsByMonth(bookings, now),
		"bookings_by_status":    services.BookingsByStatus(bookings),
		"bookings_by_car_make":  services.BookingsByCarMake(bookings),
		"bookings_by_time_slot": services.BookingsByTimeSlot(bookings),
		"revenue_by_month":      services.RevenueByMonth(bookings, now),
		"feedback":              services.SummarizeFeedback(feedback),
	})
}

// ListReports describes the named report queries available to admins.
func ListReports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reports": services.ListReports()})
}

// RunReport executes one named report with query-string parameters.
func RunReport(c *gin.Context) {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	rows, err := services.RunReport(database.DB, c.Param("name"), params)
	if err != nil {
		if errors.Is(err, services.ErrUnknownReport) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Unknown report",
				"message": "No report with that name",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Report failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": c.Param("name"), "rows": rows})
}

// EnsureStorage runs the idempotent storage provisioning check.
func EnsureStorage(c *gin.Context, storage services.Storage) {
	bucket := config.AppConfig.Storage.Bucket
	if err := storage.EnsureBucket(c.Request.Context(), bucket); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Storage unavailable",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Storage ready",
		"bucket":  bucket,
	})
}
