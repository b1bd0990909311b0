package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serviceconnect/service-connect-api/config"
	"github.com/serviceconnect/service-connect-api/models"
)

// ServiceRequest represents the request body for creating or updating a
// catalog entry
type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Rating      float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
}

// ListServices handles GET /api/v1/services - lists the catalog, optionally
// filtered by category
func ListServices(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Service{})
	if category := c.Query("category"); category != "" && category != "All" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Order("id ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch services",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services,
	})
}

// GetService handles GET /api/v1/services/:id - returns one catalog entry
func GetService(c *gin.Context) {
	db := config.GetDB()

	var service models.Service
	if err := db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// CreateService handles POST /api/v1/services - adds a catalog entry (admin only)
func CreateService(c *gin.Context) {
	var req ServiceRequest
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

	service := models.Service{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		Icon:        req.Icon,
		Rating:      req.Rating,
	}
	if service.Rating == 0 {
		service.Rating = 4.5
	}

	db := config.GetDB()
	if err := db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create service",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    service,
	})
}

// UpdateService handles PUT /api/v1/services/:id - edits a catalog entry
// (admin only). Existing orders keep the price they were booked at.
func UpdateService(c *gin.Context) {
	db := config.GetDB()

	var service models.Service
	if err := db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	var req ServiceRequest
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

	service.Name = req.Name
	service.Category = req.Category
	service.Price = req.Price
	service.Description = req.Description
	service.Icon = req.Icon
	if req.Rating > 0 {
		service.Rating = req.Rating
	}

	if err := db.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update service",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}
