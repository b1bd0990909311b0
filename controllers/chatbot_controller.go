package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serviceconnect/service-connect-api/config"
	"github.com/serviceconnect/service-connect-api/middleware"
	"github.com/serviceconnect/service-connect-api/models"
	"github.com/serviceconnect/service-connect-api/services"
)

// ChatbotRequest represents one chatbot turn
type ChatbotRequest struct {
	Message string `json:"message" binding:"required"`
	Page    string `json:"page"`
}

// ChatbotReply handles POST /api/v1/chatbot - answers a canned-response turn.
// The route is public; authenticated callers get role-aware replies, everyone
// else is treated as a guest.
func ChatbotReply(c *gin.Context) {
	var req ChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	role := models.RoleGuest
	if r, err := middleware.GetUserRole(c); err == nil {
		role = r
	}

	page := req.Page
	if page == "" {
		page = "Home"
	}

	db := config.GetDB()
	var catalog []models.Service
	if err := db.Order("id ASC").Limit(3).Find(&catalog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load service catalog",
			},
		})
		return
	}

	bot := services.NewChatbot(catalog, nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"reply":    bot.Reply(req.Message, role, page),
			"category": services.MatchCategory(req.Message),
		},
	})
}
