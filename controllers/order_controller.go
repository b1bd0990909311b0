package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serviceconnect/service-connect-api/config"
	"github.com/serviceconnect/service-connect-api/middleware"
	"github.com/serviceconnect/service-connect-api/models"
	"gorm.io/gorm"
)

// CreateOrderRequest represents the request body for booking a service
type CreateOrderRequest struct {
	ServiceID     uint   `json:"service_id" binding:"required"`
	BookingDate   string `json:"booking_date" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

// AssignTechnicianRequest represents the request body for assigning a
// technician to an order
type AssignTechnicianRequest struct {
	TechnicianID uint `json:"technician_id" binding:"required"`
}

// OrderWithUnread decorates an order with the caller's unread message count
type OrderWithUnread struct {
	models.Order
	UnreadCount int64 `json:"unread_count"`
}

// CreateOrder handles POST /api/v1/orders - books a service (customers only).
// The catalog price is snapshotted onto the order and never follows later
// price edits.
func CreateOrder(c *gin.Context) {
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

	var req CreateOrderRequest
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

	if _, err := time.Parse("2006-01-02", req.BookingDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Booking date must be in YYYY-MM-DD format",
			},
		})
		return
	}

	db := config.GetDB()
	var service models.Service
	if err := db.First(&service, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	order := models.Order{
		CustomerID:    user.ID,
		ServiceID:     service.ID,
		BookingDate:   req.BookingDate,
		Status:        models.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Price:         service.Price, // snapshot at booking time
	}

	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// Load relationships to return complete data
	if err := db.Preload("Customer").Preload("Service").First(&order, "id = ?", order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMyOrders handles GET /api/v1/orders - lists the caller's own orders,
// newest first, each with its unread message count (customers only)
func ListMyOrders(c *gin.Context) {
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
	var orders []models.Order
	if err := db.Where("customer_id = ?", user.ID).
		Preload("Service").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    withUnreadCounts(db, orders, user.ID),
	})
}

// ListPendingOrders handles GET /api/v1/orders/pending - lists all pending
// orders platform-wide, newest first (technicians only). The list is
// deliberately not narrowed to the caller's assignments.
func ListPendingOrders(c *gin.Context) {
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
	var orders []models.Order
	if err := db.Where("status = ?", models.OrderStatusPending).
		Preload("Customer").
		Preload("Service").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch pending orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    withUnreadCounts(db, orders, user.ID),
	})
}

// GetOrder handles GET /api/v1/orders/:id - returns order detail including
// the technician assignment, if any
func GetOrder(c *gin.Context) {
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
	order, assignment, ok := loadOrderForViewer(c, db, user)
	if !ok {
		return
	}

	data := gin.H{
		"order": order,
	}
	if assignment != nil {
		data["assignment"] = assignment
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CompleteOrder handles PATCH /api/v1/orders/:id/complete - moves a pending
// order to Done (technicians only). An unassigned order is claimed by the
// completing technician; an order assigned elsewhere is refused. Done is
// terminal.
func CompleteOrder(c *gin.Context) {
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

	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Only pending orders can be completed",
			},
		})
		return
	}

	var assignment models.TechnicianAssignment
	assignErr := db.Where("order_id = ?", order.ID).First(&assignment).Error
	if assignErr == nil && assignment.TechnicianID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Order is assigned to another technician",
			},
		})
		return
	}
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

	err = db.Transaction(func(tx *gorm.DB) error {
		if errors.Is(assignErr, gorm.ErrRecordNotFound) {
			if err := claimOrder(tx, order.ID, user.ID); err != nil {
				return err
			}
		}
		return tx.Model(&order).Update("status", models.OrderStatusDone).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to complete order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AssignTechnician handles PUT /api/v1/orders/:id/technician - assigns or
// reassigns the technician responsible for a pending order (admin only)
func AssignTechnician(c *gin.Context) {
	var req AssignTechnicianRequest
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

	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Only pending orders can be assigned",
			},
		})
		return
	}

	var technician models.User
	if err := db.Where("id = ? AND role = ? AND is_active = ?",
		req.TechnicianID, models.RoleTechnician, true).First(&technician).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TECHNICIAN_NOT_FOUND",
				"message": "Technician not found or inactive",
			},
		})
		return
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return claimOrder(tx, order.ID, technician.ID)
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to assign technician",
			},
		})
		return
	}

	var assignment models.TechnicianAssignment
	if err := db.Preload("Technician").Where("order_id = ?", order.ID).First(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load assignment",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    assignment,
	})
}

// claimOrder replaces any existing assignment for an order with the given
// technician. Delete-then-insert keeps at most one assignment per order.
func claimOrder(tx *gorm.DB, orderID string, technicianID uint) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&models.TechnicianAssignment{}).Error; err != nil {
		return err
	}
	return tx.Create(&models.TechnicianAssignment{
		OrderID:      orderID,
		TechnicianID: technicianID,
	}).Error
}

// withUnreadCounts decorates orders with the count of messages not yet read
// by the viewer. Unread is derived by scanning, not stored.
func withUnreadCounts(db *gorm.DB, orders []models.Order, viewerID uint) []OrderWithUnread {
	result := make([]OrderWithUnread, 0, len(orders))
	for _, order := range orders {
		var count int64
		db.Model(&models.ChatMessage{}).
			Where("order_id = ? AND sender_id <> ? AND is_read = ?", order.ID, viewerID, false).
			Count(&count)
		result = append(result, OrderWithUnread{Order: order, UnreadCount: count})
	}
	return result
}

// loadOrderForViewer fetches an order and enforces who may see it: the
// owning customer, an admin, the assigned technician, or any technician
// while the order is pending and unassigned. Writes the error response
// itself and reports success through ok.
func loadOrderForViewer(c *gin.Context, db *gorm.DB, user *models.User) (order models.Order, assignment *models.TechnicianAssignment, ok bool) {
	if err := db.Preload("Customer").Preload("Service").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return order, nil, false
	}

	var assigned models.TechnicianAssignment
	assignErr := db.Preload("Technician").Where("order_id = ?", order.ID).First(&assigned).Error
	if assignErr == nil {
		assignment = &assigned
	} else if !errors.Is(assignErr, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check assignment",
			},
		})
		return order, nil, false
	}

	canView := false
	switch user.Role {
	case models.RoleAdmin:
		canView = true
	case models.RoleCustomer:
		canView = order.CustomerID == user.ID
	case models.RoleTechnician:
		if assignment != nil {
			canView = assignment.TechnicianID == user.ID
		} else {
			canView = order.Status == models.OrderStatusPending
		}
	}

	if !canView {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view this order",
			},
		})
		return order, nil, false
	}

	return order, assignment, true
}
