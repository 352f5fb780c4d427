package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autogenics-server/database"
	"autogenics-server/models"
)

// RegisterProfileRoutes registers the profile read/update routes the
// booking form uses to pre-fill contact details.
func RegisterProfileRoutes(router *gin.RouterGroup) {
	router.GET("/profile", func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		c.JSON(http.StatusOK, gin.H{"profile": user})
	})

	router.PUT("/profile", func(c *gin.Context) {
		var req struct {
			FullName string `json:"full_name" binding:"required,min=2,max=100"`
			Phone    string `json:"phone" binding:"omitempty,max=20"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		user := c.MustGet("user").(models.User)
		user.FullName = strings.TrimSpace(req.FullName)
		user.Phone = strings.TrimSpace(req.Phone)

		if err := database.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to update profile",
				"message": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"profile": user})
	})
}
