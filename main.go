package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/controllers"
	"github.com/neyudnguyen/laundry-now-sub000/middleware"
	"github.com/neyudnguyen/laundry-now-sub000/models"
	"github.com/neyudnguyen/laundry-now-sub000/services"
)

func main() {
	log.Println("Starting Laundry Now API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.CustomerProfile{},
		&models.VendorProfile{},
		&models.VendorService{},
		&models.Order{},
		&models.OrderItem{},
		&models.Complaint{},
		&models.Bill{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
	} else {
		logrus.Warn("AWS_S3_BUCKET not set, evidence uploads are disabled")
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheck)

	// The payment gateway authenticates with a shared secret, not a JWT
	router.POST("/api/payments/webhook", controllers.PaymentWebhook)

	api := router.Group("/api", middleware.EnsureValidToken(cfg))
	{
		api.POST("/users", controllers.CreateUser)
		api.GET("/users/me", controllers.GetMyProfile)
		api.PUT("/users/me", controllers.UpdateMyProfile)

		api.GET("/notifications", controllers.ListNotifications)
		api.PATCH("/notifications/:id/read", controllers.MarkNotificationRead)

		api.POST("/uploads/evidence", controllers.UploadEvidence)

		customer := api.Group("/customer")
		{
			customer.POST("/orders", controllers.CreateOrder)
			customer.GET("/orders", controllers.ListMyOrders)
			customer.GET("/orders/:id", controllers.GetMyOrder)
			customer.POST("/complaints", controllers.CreateComplaint)
			customer.GET("/complaints", controllers.ListMyComplaints)
			customer.GET("/vendors/:id/services", controllers.ListVendorCatalog)
		}

		vendor := api.Group("/vendor")
		{
			vendor.GET("/orders", controllers.ListVendorOrders)
			vendor.GET("/orders/:id", controllers.GetVendorOrder)
			vendor.PATCH("/orders/:id", controllers.UpdateOrder)
			vendor.POST("/orders/:id/items", controllers.AddOrderItem)
			vendor.PUT("/orders/:id/items/:itemId", controllers.UpdateOrderItem)
			vendor.DELETE("/orders/:id/items/:itemId", controllers.DeleteOrderItem)
			vendor.GET("/complaints", controllers.ListVendorComplaints)
			vendor.PATCH("/complaints/:id", controllers.EscalateComplaint)
			vendor.GET("/bills", controllers.ListVendorBills)
			vendor.GET("/services", controllers.ListMyServices)
			vendor.POST("/services", controllers.CreateVendorService)
			vendor.PUT("/services/:id", controllers.UpdateVendorService)
			vendor.DELETE("/services/:id", controllers.DeleteVendorService)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/revenue", controllers.GetRevenueReport)
			admin.POST("/bills", controllers.CreateBill)
			admin.GET("/bills", controllers.ListBills)
			admin.PATCH("/bills/:id/status", controllers.UpdateBillStatus)
			admin.GET("/complaints", controllers.ListComplaints)
			admin.PATCH("/complaints/:id", controllers.ResolveComplaint)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Laundry Now API is running",
	})
}
