package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autogenics-server/database"
	"autogenics-server/models"
	ws "autogenics-server/websocket"
)

// RegisterFeedbackRoutes registers the customer feedback submission route.
func RegisterFeedbackRoutes(router *gin.RouterGroup, hub *ws.Hub) {
	router.POST("/feedback", func(c *gin.Context) {
		var req struct {
			Rating       int    `json:"rating" binding:"required,min=1,max=5"`
			Message      string `json:"message" binding:"omitempty,max=1000"`
			Satisfaction string `json:"satisfaction" binding:"required,oneof=positive neutral negative"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		userID := c.MustGet("user_id").(uint)

		feedback := models.Feedback{
			UserID:       userID,
			Rating:       req.Rating,
			Message:      strings.TrimSpace(req.Message),
			Satisfaction: models.Satisfaction(req.Satisfaction),
		}

		if err := database.DB.Create(&feedback).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to submit feedback",
				"message": err.Error(),
			})
			return
		}

		log.Printf("✅ Feedback %d submitted by user %d (rating %d)", feedback.ID, userID, feedback.Rating)
		hub.NotifyChange("feedback", "INSERT", feedback.ID)
		c.JSON(http.StatusCreated, gin.H{"feedback": feedback})
	})
}
