package routes

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"autogenics-server/config"
	"autogenics-server/database"
	"autogenics-server/middleware"
	"autogenics-server/models"
	"autogenics-server/services"
	ws "autogenics-server/websocket"
)

// sortColumns maps the manager UI's sort keys to ORDER BY columns.
var sortColumns = map[string]string{
	"date":     "bookings.date",
	"customer": "profiles.full_name",
	"service":  "bookings.service_name",
	"status":   "bookings.status",
}

// RegisterAdminBookingRoutes registers the bookings manager routes.
// The group must already carry Auth + AdminAuth middleware.
func RegisterAdminBookingRoutes(router *gin.RouterGroup, hub *ws.Hub, storage services.Storage, notifier *services.Notifier) {
	router.GET("/bookings", GetAllBookings)
	router.PATCH("/bookings/:id/status", func(c *gin.Context) { UpdateBookingStatus(c, hub) })
	router.DELETE("/bookings/:id", middleware.SuperAdminMiddleware(), func(c *gin.Context) { DeleteBooking(c, hub) })
	router.POST("/bookings/:id/progress", func(c *gin.Context) { UploadProgressPhoto(c, hub, storage, notifier) })
}

// GetAllBookings lists every booking with its customer, filtered and
// sorted per the manager UI's controls.
func GetAllBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Booking{}).
		Joins("JOIN profiles ON profiles.id = bookings.user_id").
		Preload("User")

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"LOWER(profiles.full_name) LIKE LOWER(?) OR LOWER(profiles.email) LIKE LOWER(?) OR "+
				"LOWER(bookings.service_name) LIKE LOWER(?) OR LOWER(bookings.car_make) LIKE LOWER(?) OR "+
				"LOWER(bookings.car_model) LIKE LOWER(?)",
			like, like, like, like, like)
	}

	if status := c.Query("status"); status != "" {
		if !models.IsValidStatus(models.BookingStatus(status)) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid status filter",
				"message": "status must be one of confirmed, in_progress, completed, cancelled",
			})
			return
		}
		query = query.Where("bookings.status = ?", status)
	}

	column, ok := sortColumns[c.DefaultQuery("sort_by", "date")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid sort key",
			"message": "sort_by must be one of date, customer, service, status",
		})
		return
	}
	direction := "DESC"
	if c.DefaultQuery("order", "desc") == "asc" {
		direction = "ASC"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to count bookings",
			"message": err.Error(),
		})
		return
	}

	var bookings []models.Booking
	err := query.
		Order(column + " " + direction).
		Order("bookings.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&bookings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load bookings",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// UpdateBookingStatus moves a booking to any of the four states.
func UpdateBookingStatus(c *gin.Context, hub *ws.Hub) {
	var req struct {
		Status models.BookingStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid status",
			"message": "status must be one of confirmed, in_progress, completed, cancelled",
		})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id",
		})
		return
	}

	booking.Status = req.Status
	if err := database.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update status",
			"message": err.Error(),
		})
		return
	}

	log.Printf("✅ Booking %d status set to %s", booking.ID, booking.Status)
	hub.NotifyChange("bookings", "UPDATE", booking.ID)
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// DeleteBooking permanently removes a booking and its progress updates.
// Gated behind superadmin.
func DeleteBooking(c *gin.Context, hub *ws.Hub) {
	var booking models.Booking
	if err := database.DB.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id",
		})
		return
	}

	if err := database.DB.Where("booking_id = ?", booking.ID).Delete(&models.ProgressUpdate{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete booking",
			"message": err.Error(),
		})
		return
	}

	if err := database.DB.Delete(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete booking",
			"message": err.Error(),
		})
		return
	}

	log.Printf("🗑️ Booking %d permanently deleted", booking.ID)
	hub.NotifyChange("bookings", "DELETE", booking.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// UploadProgressPhoto stores a progress photo for a booking, records the
// metadata row and notifies the customer best-effort.
func UploadProgressPhoto(c *gin.Context, hub *ws.Hub, storage services.Storage, notifier *services.Notifier) {
	var booking models.Booking
	if err := database.DB.Preload("User").First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking with that id",
		})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Photo required",
			"message": "Attach an image file in the photo field",
		})
		return
	}

	cfg := config.AppConfig
	if reason, ok := services.ValidateImageFile(header, cfg.Storage.MaxUploadBytes); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid photo",
			"message": reason,
		})
		return
	}

	customerEmail := strings.TrimSpace(c.PostForm("customer_email"))
	if customerEmail == "" {
		customerEmail = booking.User.Email
	}
	if customerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Customer email required",
			"message": "Booking has no customer email on file; provide customer_email",
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to read photo",
			"message": err.Error(),
		})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	if err := storage.EnsureBucket(ctx, cfg.Storage.Bucket); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Storage unavailable",
			"message": err.Error(),
		})
		return
	}

	fileName := fmt.Sprintf("booking_%d_%s", booking.ID, uuid.NewString())
	imageURL, err := storage.Upload(ctx, cfg.Storage.Bucket, fileName, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Upload failed",
			"message": err.Error(),
		})
		return
	}

	carDetails := strings.TrimSpace(booking.CarMake + " " + booking.CarModel)
	update := models.ProgressUpdate{
		BookingID:     booking.ID,
		ImageURL:      imageURL,
		Message:       strings.TrimSpace(c.PostForm("message")),
		CustomerEmail: customerEmail,
		CarDetails:    carDetails,
	}

	if err := database.DB.Create(&update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to record progress update",
			"message": err.Error(),
		})
		return
	}

	// Notification is best-effort: the upload already succeeded
	if err := notifier.NotifyCustomer(customerEmail, booking.ID, update.Message, imageURL, carDetails); err != nil {
		log.Printf("⚠️ Customer notification failed for booking %d: %v", booking.ID, err)
	}

	log.Printf("📸 Progress photo added to booking %d", booking.ID)
	hub.NotifyChange("progress_updates", "INSERT", update.ID)
	c.JSON(http.StatusCreated, gin.H{"progress_update": update})
}
