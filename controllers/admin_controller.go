package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serviceconnect/service-connect-api/config"
	"github.com/serviceconnect/service-connect-api/models"
)

// DashboardStats holds the aggregate counters shown on the admin dashboard
type DashboardStats struct {
	TotalUsers      int64   `json:"total_users"`
	TotalTechs      int64   `json:"total_techs"`
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	CompletedOrders int64   `json:"completed_orders"`
	Revenue         float64 `json:"revenue"`
	TotalServices   int64   `json:"total_services"`
}

// GetDashboardStats handles GET /api/v1/admin/stats - aggregate platform
// statistics (admin only). Revenue is the sum of prices of completed orders.
func GetDashboardStats(c *gin.Context) {
	db := config.GetDB()
	var stats DashboardStats

	db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&stats.TotalUsers)
	db.Model(&models.User{}).Where("role = ?", models.RoleTechnician).Count(&stats.TotalTechs)
	db.Model(&models.Order{}).Count(&stats.TotalOrders)
	db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders)
	db.Model(&models.Order{}).Where("status = ?", models.OrderStatusDone).Count(&stats.CompletedOrders)
	db.Model(&models.Order{}).Where("status = ?", models.OrderStatusDone).
		Select("COALESCE(SUM(price), 0)").Scan(&stats.Revenue)
	db.Model(&models.Service{}).Count(&stats.TotalServices)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// ListAllOrders handles GET /api/v1/admin/orders - lists every order newest
// first, filterable by status, service and booking date (admin only)
func ListAllOrders(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Order{}).
		Preload("Customer").
		Preload("Service").
		Order("created_at DESC")

	if status := c.Query("status"); status != "" && status != "All" {
		query = query.Where("status = ?", status)
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		query = query.Where("service_id = ?", serviceID)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("booking_date = ?", date)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
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
		"data":    orders,
	})
}
