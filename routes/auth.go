package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autogenics-server/database"
	"autogenics-server/middleware"
	"autogenics-server/models"
	"autogenics-server/services"
	"autogenics-server/utils"
)

// RegisterAuthRoutes registers signup, login and token lifecycle routes.
func RegisterAuthRoutes(router *gin.RouterGroup) {
	jwtService := services.NewJWTService()

	router.POST("/signup", func(c *gin.Context) {
		var req struct {
			FullName string `json:"full_name" binding:"required,min=2,max=100"`
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required,min=8,max=128"`
			Phone    string `json:"phone" binding:"omitempty,max=20"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if !utils.ValidateEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid email",
				"message": "Please provide a valid email address",
			})
			return
		}

		var existing models.User
		if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "User already exists",
				"message": "An account with this email already exists",
			})
			return
		}

		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to create account",
				"message": err.Error(),
			})
			return
		}

		user := models.User{
			FullName:     strings.TrimSpace(req.FullName),
			Email:        req.Email,
			PasswordHash: hash,
			Phone:        strings.TrimSpace(req.Phone),
			IsActive:     true,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{
					"error":   "User already exists",
					"message": "An account with this email already exists",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to create account",
				"message": err.Error(),
			})
			return
		}

		tokens, err := jwtService.GenerateTokenPair(user.ID, c.GetHeader("X-Device-ID"), c.Request.UserAgent(), c.ClientIP())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to issue tokens",
				"message": err.Error(),
			})
			return
		}

		log.Printf("✅ New user registered: %s", user.Email)
		c.JSON(http.StatusCreated, gin.H{
			"user":   user,
			"tokens": tokens,
		})
	})

	router.POST("/login", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		var user models.User
		if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid credentials",
				"message": "Email or password is incorrect",
			})
			return
		}

		if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
			log.Printf("🚫 Failed login attempt for %s", req.Email)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid credentials",
				"message": "Email or password is incorrect",
			})
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User inactive",
				"message": "User account is deactivated",
			})
			return
		}

		tokens, err := jwtService.GenerateTokenPair(user.ID, c.GetHeader("X-Device-ID"), c.Request.UserAgent(), c.ClientIP())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to issue tokens",
				"message": err.Error(),
			})
			return
		}

		log.Printf("✅ User logged in: %s", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"user":   user,
			"tokens": tokens,
		})
	})

	router.POST("/refresh", func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		tokens, err := jwtService.RefreshAccessToken(req.RefreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid refresh token",
				"message": "Refresh token is invalid, expired or revoked",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"tokens": tokens})
	})

	router.POST("/logout", func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		if err := jwtService.RevokeRefreshToken(req.RefreshToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Logout failed",
				"message": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	})

	router.GET("/me", middleware.AuthMiddleware(), func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		c.JSON(http.StatusOK, gin.H{"user": user})
	})
}
