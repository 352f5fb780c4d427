package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autogenics-server/database"
	"autogenics-server/middleware"
	"autogenics-server/models"
	"autogenics-server/services"
	ws "autogenics-server/websocket"
)

// RegisterAdminFeedbackRoutes registers the feedback review routes.
// The group must already carry Auth + AdminAuth middleware.
func RegisterAdminFeedbackRoutes(router *gin.RouterGroup, hub *ws.Hub) {
	router.GET("/feedback", GetAllFeedback)
	router.GET("/feedback/stats", GetFeedbackStats)
	router.DELETE("/feedback/:id", middleware.SuperAdminMiddleware(), func(c *gin.Context) { DeleteFeedback(c, hub) })
}

// GetAllFeedback lists feedback newest first with the submitting user.
func GetAllFeedback(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Feedback{})
	if rating := c.Query("rating"); rating != "" {
		query = query.Where("rating = ?", rating)
	}
	if satisfaction := c.Query("satisfaction"); satisfaction != "" {
		query = query.Where("satisfaction = ?", satisfaction)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to count feedback",
			"message": err.Error(),
		})
		return
	}

	var feedback []models.Feedback
	err := query.Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&feedback).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load feedback",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": feedback,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetFeedbackStats returns the rating and satisfaction distributions.
func GetFeedbackStats(c *gin.Context) {
	var feedback []models.Feedback
	if err := database.DB.Find(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load feedback",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": services.SummarizeFeedback(feedback)})
}

// DeleteFeedback permanently removes one feedback entry. Superadmin only.
func DeleteFeedback(c *gin.Context, hub *ws.Hub) {
	var feedback models.Feedback
	if err := database.DB.First(&feedback, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Feedback not found",
			"message": "No feedback with that id",
		})
		return
	}

	if err := database.DB.Delete(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete feedback",
			"message": err.Error(),
		})
		return
	}

	log.Printf("🗑️ Feedback %d deleted", feedback.ID)
	hub.NotifyChange("feedback", "DELETE", feedback.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted"})
}
