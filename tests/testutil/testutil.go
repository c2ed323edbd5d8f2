package testutil

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marcus-webb/repair-shop-api/config"
	"github.com/marcus-webb/repair-shop-api/controllers"
	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/services"
	"github.com/marcus-webb/repair-shop-api/session"
	"github.com/marcus-webb/repair-shop-api/storage"
	"github.com/marcus-webb/repair-shop-api/templates"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against a real document store.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}

// FreshStore wires a brand-new in-memory document store into the application
// globals and returns it. Each test gets an empty store, so there is no
// cross-test state to clean up.
func FreshStore(t *testing.T) *storage.MemoryStore {
	t.Helper()

	store := storage.NewMemoryStore()
	config.SetStore(store)
	services.InitBackupService(store, false)
	return store
}

// BuildRouter assembles the full three-screen router the same way the server
// does at startup. Suites exercise real HTTP round trips against it.
func BuildRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.SetHTMLTemplate(templates.Load())

	router.GET("/", controllers.ShowLogin)
	router.POST("/login", controllers.Login)
	router.GET("/logout", controllers.Logout)
	router.POST("/reset", controllers.ResetData)

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

	portal := router.Group("/", session.Guard("/", models.RoleCustomer))
	{
		portal.GET("/customer", controllers.ShowCustomerPortal)
	}

	return router
}
