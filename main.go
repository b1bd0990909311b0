package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/serviceconnect/service-connect-api/config"
	"github.com/serviceconnect/service-connect-api/controllers"
	"github.com/serviceconnect/service-connect-api/middleware"
	"github.com/serviceconnect/service-connect-api/models"
)

func main() {
	log.Println("Starting Service Connect API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Order{},
		&models.ChatMessage{},
		&models.TechnicianAssignment{},
		&models.ContactMessage{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed baseline accounts and catalog on first run
	if err := models.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	router := setupRouter()

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires the full route table. Named so integration tests can
// drive it through httptest.
func setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.GET("/me", middleware.RequireAuth(), controllers.Me)
			auth.PUT("/me", middleware.RequireAuth(), controllers.UpdateMe)
		}

		v1.GET("/services", controllers.ListServices)
		v1.GET("/services/:id", controllers.GetService)
		v1.POST("/services", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin), controllers.CreateService)
		v1.PUT("/services/:id", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin), controllers.UpdateService)

		v1.POST("/contact", controllers.SubmitContact)
		v1.POST("/chatbot", middleware.OptionalAuth(), controllers.ChatbotReply)

		orders := v1.Group("/orders", middleware.RequireAuth())
		{
			orders.POST("", middleware.RequireRole(models.RoleCustomer), controllers.CreateOrder)
			orders.GET("", middleware.RequireRole(models.RoleCustomer), controllers.ListMyOrders)
			orders.GET("/pending", middleware.RequireRole(models.RoleTechnician), controllers.ListPendingOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.PATCH("/:id/complete", middleware.RequireRole(models.RoleTechnician), controllers.CompleteOrder)
			orders.PUT("/:id/technician", middleware.RequireRole(models.RoleAdmin), controllers.AssignTechnician)
			orders.POST("/:id/messages", controllers.SendMessage)
			orders.GET("/:id/messages", controllers.ListMessages)
		}

		chats := v1.Group("/chats", middleware.RequireAuth())
		{
			chats.GET("", controllers.ListChats)
			chats.GET("/unread", controllers.UnreadTotal)
		}

		admin := v1.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/stats", controllers.GetDashboardStats)
			admin.GET("/orders", controllers.ListAllOrders)
			admin.GET("/users", controllers.ListUsers)
			admin.PATCH("/users/:id/active", controllers.SetUserActive)
			admin.GET("/technicians", controllers.ListTechnicians)
			admin.GET("/contact-messages", controllers.ListContactMessages)
			admin.PATCH("/contact-messages/:id/read", controllers.MarkContactRead)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service Connect API is running",
	})
}
