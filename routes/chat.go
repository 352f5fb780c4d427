package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"autogenics-server/services"
)

// RegisterChatRoutes registers the virtual-assistant session routes.
// Transcripts are in-memory only; restarting the server forgets them.
func RegisterChatRoutes(router *gin.RouterGroup, store *services.ChatStore, chatService *services.ChatService) {
	router.POST("/chat/sessions", func(c *gin.Context) {
		sessionID := store.CreateSession()
		messages, _ := store.Messages(sessionID)
		c.JSON(http.StatusCreated, gin.H{
			"session_id": sessionID,
			"messages":   messages,
		})
	})

	router.GET("/chat/sessions/:id/messages", func(c *gin.Context) {
		messages, err := store.Messages(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Session not found",
				"message": "No chat session with that id",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	})

	router.POST("/chat/sessions/:id/messages", func(c *gin.Context) {
		var req struct {
			Message string `json:"message" binding:"required,max=2000"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}

		sessionID := c.Param("id")
		history, err := store.BeginTurn(sessionID, req.Message)
		if err != nil {
			if errors.Is(err, services.ErrSessionBusy) {
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error":   "Reply in progress",
					"message": "Please wait for the current reply to finish",
				})
				return
			}
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Session not found",
				"message": "No chat session with that id",
			})
			return
		}

		// Any completion failure turns into the fixed apologetic reply;
		// the error never reaches the client.
		content, err := chatService.Complete(req.Message, history)
		if err != nil {
			log.Printf("⚠️ Chat completion failed for session %s: %v", sessionID, err)
			content = services.FallbackReply
		}

		reply, err := store.FinishTurn(sessionID, content)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Session not found",
				"message": "No chat session with that id",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reply": reply})
	})

	router.POST("/chat/sessions/:id/clear", func(c *gin.Context) {
		if err := store.Clear(c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Session not found",
				"message": "No chat session with that id",
			})
			return
		}

		messages, _ := store.Messages(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	})
}
