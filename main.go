package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/marcus-webb/repair-shop-api/config"
	"github.com/marcus-webb/repair-shop-api/controllers"
	"github.com/marcus-webb/repair-shop-api/logger"
	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/repositories"
	"github.com/marcus-webb/repair-shop-api/services"
	"github.com/marcus-webb/repair-shop-api/session"
	"github.com/marcus-webb/repair-shop-api/storage"
	"github.com/marcus-webb/repair-shop-api/templates"
)

func main() {
	log.Println("Starting Mechanic Repair System server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.LogLevel)

	if err := config.ConnectStorage(); err != nil {
		log.Fatalf("Failed to connect document store: %v", err)
	}

	// First-run seed: a default admin so the shop can log in at all.
	users := repositories.NewUsers(config.GetStore())
	if users.Seed() {
		log.Printf("Seeded default admin (%s / %s)",
			repositories.DefaultAdminUsername, repositories.DefaultAdminPassword)
	}

	if cfg.BackupToS3Enabled() {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		log.Printf("Offsite backups enabled (bucket %s)", cfg.AWSS3Bucket)
	}
	services.InitBackupService(config.GetStore(), cfg.BackupToS3Enabled())

	router := setupRouter()

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires the three screens and the JSON API surface.
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.SetHTMLTemplate(templates.Load())

	// Login screen and session actions
	router.GET("/", controllers.ShowLogin)
	router.POST("/login", controllers.Login)
	router.GET("/logout", controllers.Logout)
	router.POST("/reset", controllers.ResetData)

	// Staff dashboard, guarded to admin and mechanic
	staff := router.Group("/", session.Guard("/", models.RoleAdmin, models.RoleMechanic))
	{
		staff.GET("/dashboard", controllers.ShowDashboard)
		staff.POST("/customers", controllers.CreateCustomer)
		staff.POST("/repairs", controllers.CreateRepair)
		staff.POST("/repairs/:id/status", controllers.UpdateRepairStatus)
		staff.POST("/repairs/:id/delete", controllers.DeleteRepair)
		staff.GET("/export", controllers.ExportBackup)
		staff.POST("/import", controllers.ImportBackup)
	}

	// Customer self-service screen, guarded to the customer role
	portal := router.Group("/", session.Guard("/", models.RoleCustomer))
	{
		portal.GET("/customer", controllers.ShowCustomerPortal)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(cors.Default())
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Storage status endpoint
		v1.GET("/storage/status", storageStatus)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Mechanic Repair System is running",
	})
}

// storageStatus verifies the document store is reachable and reports
// which of the well-known documents are present.
func storageStatus(c *gin.Context) {
	store := config.GetStore()
	if store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Document store is not initialized",
			},
		})
		return
	}

	if pinger, ok := store.(interface{ Ping() error }); ok {
		if err := pinger.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STORAGE_CONNECTION_ERROR",
					"message": "Document store connection failed",
				},
			})
			return
		}
	}

	present := []string{}
	for _, key := range []string{storage.KeyUsers, storage.KeyCustomers, storage.KeyRepairs, storage.KeySession} {
		if _, ok := store.Get(key); ok {
			present = append(present, key)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Document store connected",
		"documents": present,
	})
}
