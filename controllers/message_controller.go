package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serviceconnect/service-connect-api/config"
	"github.com/serviceconnect/service-connect-api/middleware"
	"github.com/serviceconnect/service-connect-api/models"
	"gorm.io/gorm"
)

// SendMessageRequest represents the request body for sending a chat message
type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// SendMessage handles POST /api/v1/orders/:id/messages - appends a message to
// an order's conversation. The sender must be the order's customer or its
// assigned technician; a technician messaging an unassigned pending order
// claims it first.
func SendMessage(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	var assignment models.TechnicianAssignment
	assignErr := db.Where("order_id = ?", order.ID).First(&assignment).Error
	if assignErr != nil && !errors.Is(assignErr, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check assignment",
			},
		})
		return
	}

	needsClaim := false
	canMessage := false
	switch user.Role {
	case models.RoleCustomer:
		canMessage = order.CustomerID == user.ID
	case models.RoleTechnician:
		if assignErr == nil {
			canMessage = assignment.TechnicianID == user.ID
		} else if order.Status == models.OrderStatusPending {
			// First technician to respond takes the order
			canMessage = true
			needsClaim = true
		}
	}

	if !canMessage {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to message on this order",
			},
		})
		return
	}

	var req SendMessageRequest
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

	message := models.ChatMessage{
		OrderID:  order.ID,
		SenderID: user.ID,
		Body:     req.Body,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if needsClaim {
			if err := claimOrder(tx, order.ID, user.ID); err != nil {
				return err
			}
		}
		return tx.Create(&message).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create message",
			},
		})
		return
	}

	// Load the sender relationship to return complete data
	if err := db.Preload("Sender").First(&message, message.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load message details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// ListMessages handles GET /api/v1/orders/:id/messages - returns the
// conversation oldest first. Opening a thread bulk-marks the counterpart's
// messages read for the viewer; repeating the call changes nothing.
func ListMessages(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	order, _, ok := loadOrderForViewer(c, db, user)
	if !ok {
		return
	}

	// Bulk read-flag flip before fetching, so the viewer sees current state
	if err := db.Model(&models.ChatMessage{}).
		Where("order_id = ? AND sender_id <> ? AND is_read = ?", order.ID, user.ID, false).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to mark messages as read",
			},
		})
		return
	}

	var messages []models.ChatMessage
	if err := db.Where("order_id = ?", order.ID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch messages",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// ListChats handles GET /api/v1/chats - returns the caller's conversation
// summaries with unread counts. Customers see their own orders; technicians
// see pending orders platform-wide, matching the pending work queue.
func ListChats(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	query := db.Preload("Service").Preload("Customer").Order("created_at DESC")
	switch user.Role {
	case models.RoleCustomer:
		query = query.Where("customer_id = ?", user.ID)
	case models.RoleTechnician:
		query = query.Where("status = ?", models.OrderStatusPending)
	default:
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Chats are available to customers and technicians only",
			},
		})
		return
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch chats",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    withUnreadCounts(db, orders, user.ID),
	})
}

// UnreadTotal handles GET /api/v1/chats/unread - returns the caller's total
// unread badge count
func UnreadTotal(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var count int64
	switch user.Role {
	case models.RoleCustomer:
		err = db.Model(&models.ChatMessage{}).
			Joins("JOIN orders ON orders.id = chat_messages.order_id").
			Where("orders.customer_id = ? AND chat_messages.sender_id <> ? AND chat_messages.is_read = ?",
				user.ID, user.ID, false).
			Count(&count).Error
	case models.RoleTechnician:
		err = db.Model(&models.ChatMessage{}).
			Joins("JOIN orders ON orders.id = chat_messages.order_id").
			Joins("JOIN users ON users.id = chat_messages.sender_id").
			Where("orders.status = ? AND users.role = ? AND chat_messages.is_read = ?",
				models.OrderStatusPending, models.RoleCustomer, false).
			Count(&count).Error
	default:
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Chats are available to customers and technicians only",
			},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count unread messages",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"unread_count": count,
		},
	})
}
