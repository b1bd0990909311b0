package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/serviceconnect/service-connect-api/config"
	"github.com/serviceconnect/service-connect-api/models"
	"github.com/serviceconnect/service-connect-api/utils"
)

// ContactRequest represents the request body for the public contact form
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// SubmitContact handles POST /api/v1/contact - stores a contact form
// submission (public)
func SubmitContact(c *gin.Context) {
	var req ContactRequest
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

	if !utils.ValidateEmail(strings.TrimSpace(req.Email)) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid email format",
			},
		})
		return
	}

	message := models.ContactMessage{
		Name:    req.Name,
		Email:   strings.TrimSpace(req.Email),
		Subject: req.Subject,
		Body:    req.Body,
		Status:  models.ContactStatusUnread,
	}

	db := config.GetDB()
	if err := db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save contact message",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// ListContactMessages handles GET /api/v1/admin/contact-messages - lists
// contact form submissions newest first (admin only)
func ListContactMessages(c *gin.Context) {
	db := config.GetDB()

	var messages []models.ContactMessage
	if err := db.Order("created_at DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch contact messages",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// MarkContactRead handles PATCH /api/v1/admin/contact-messages/:id/read -
// flags a submission as read (admin only)
func MarkContactRead(c *gin.Context) {
	db := config.GetDB()

	var message models.ContactMessage
	if err := db.First(&message, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MESSAGE_NOT_FOUND",
				"message": "Contact message not found",
			},
		})
		return
	}

	if err := db.Model(&message).Update("status", models.ContactStatusRead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update contact message",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    message,
	})
}
