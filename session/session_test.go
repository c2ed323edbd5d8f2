package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marcus-webb/repair-shop-api/config"
	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/storage"
	"github.com/stretchr/testify/assert"
)

func setupStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	config.SetStore(store)
	return store
}

func TestSetGetClear(t *testing.T) {
	setupStore(t)

	_, ok := Get()
	assert.False(t, ok, "No session should exist initially")

	assert.NoError(t, Set(models.Session{Role: models.RoleAdmin, UserID: 1, Username: "admin"}))

	sess, ok := Get()
	assert.True(t, ok)
	assert.Equal(t, models.RoleAdmin, sess.Role)
	assert.Equal(t, 1, sess.UserID)
	assert.Equal(t, "admin", sess.Username)

	assert.NoError(t, Clear())
	_, ok = Get()
	assert.False(t, ok, "Cleared session should be gone")

	// Clearing twice is idempotent
	assert.NoError(t, Clear())
}

func TestGetToleratesCorruptSessionDocument(t *testing.T) {
	store := setupStore(t)
	store.Set(storage.KeySession, "garbage{{")

	_, ok := Get()
	assert.False(t, ok, "Corrupt session should read as absent")
}

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", Guard("/", models.RoleAdmin, models.RoleMechanic))
	group.GET("/dashboard", func(c *gin.Context) {
		sess, ok := FromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no session in context")
			return
		}
		c.String(http.StatusOK, sess.Role)
	})
	return router
}

func TestGuardRedirectsWithoutSession(t *testing.T) {
	setupStore(t)
	router := guardedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code, "Unauthenticated access must redirect")
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestGuardRedirectsWrongRole(t *testing.T) {
	setupStore(t)
	Set(models.Session{Role: models.RoleCustomer, CustomerID: 3})
	router := guardedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code, "Wrong role must redirect")
}

func TestGuardPassesAllowedRole(t *testing.T) {
	setupStore(t)
	Set(models.Session{Role: models.RoleMechanic, UserID: 2, Username: "marge"})
	router := guardedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleMechanic, w.Body.String(), "Guard should stash the session for the handler")
}
