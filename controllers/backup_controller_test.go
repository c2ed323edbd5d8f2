package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marcus-webb/repair-shop-api/config"
	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/repositories"
	"github.com/marcus-webb/repair-shop-api/services"
	"github.com/marcus-webb/repair-shop-api/session"
	"github.com/marcus-webb/repair-shop-api/storage"
	"github.com/marcus-webb/repair-shop-api/templates"
	"github.com/stretchr/testify/assert"
)

func setupBackupRouter(t *testing.T) (*gin.Engine, *storage.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	config.SetStore(store)
	services.InitBackupService(store, false)

	router := gin.New()
	router.SetHTMLTemplate(templates.Load())
	staff := router.Group("/", session.Guard("/", models.RoleAdmin, models.RoleMechanic))
	{
		staff.GET("/export", ExportBackup)
		staff.POST("/import", ImportBackup)
	}
	return router, store
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("backup", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestExportOffersDownloadableBackup(t *testing.T) {
	router, store := setupBackupRouter(t)
	loginAsAdmin(t)
	repositories.NewUsers(store).Seed()
	repositories.NewCustomers(store).Create(models.Customer{Name: "A", Email: "a@x.com", Phone: "5", Password: "pw"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/export", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), services.BackupFilename)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var doc services.BackupDocument
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Len(t, doc.Users, 1)
	assert.Len(t, doc.Customers, 1)
	assert.Empty(t, doc.Repairs)
}

func TestImportReplacesCollectionsWholesale(t *testing.T) {
	router, store := setupBackupRouter(t)
	loginAsAdmin(t)
	repositories.NewCustomers(store).Create(models.Customer{Name: "Old", Email: "old@x.com", Phone: "5", Password: "pw"})

	backup := services.BackupDocument{
		Users:     []models.User{{ID: 1, Username: "admin", Password: "admin123", Role: models.RoleAdmin}},
		Customers: []models.Customer{{ID: 9, Name: "New", Email: "new@x.com"}},
	}
	content, err := json.Marshal(backup)
	assert.NoError(t, err)
	body, contentType := multipartUpload(t, "backup.json", content)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "notice=Import+complete")

	customers := repositories.NewCustomers(store).List()
	assert.Len(t, customers, 1)
	assert.Equal(t, "New", customers[0].Name)
	assert.Empty(t, repositories.NewRepairs(store).List(), "Missing repairs key defaults to empty")
}

func TestImportMalformedJSONRejectedWithoutStateChange(t *testing.T) {
	router, store := setupBackupRouter(t)
	loginAsAdmin(t)
	repositories.NewCustomers(store).Create(models.Customer{Name: "Kept", Email: "kept@x.com", Phone: "5", Password: "pw"})

	body, contentType := multipartUpload(t, "backup.json", []byte("{broken"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=Invalid+JSON")

	customers := repositories.NewCustomers(store).List()
	assert.Len(t, customers, 1, "Existing data must be left untouched")
	assert.Equal(t, "Kept", customers[0].Name)
}

func TestImportRejectsNonJSONFile(t *testing.T) {
	router, _ := setupBackupRouter(t)
	loginAsAdmin(t)

	body, contentType := multipartUpload(t, "backup.txt", []byte("whatever"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "error=")
}

func TestExportImportRoundTripRestoresCollections(t *testing.T) {
	router, store := setupBackupRouter(t)
	loginAsAdmin(t)
	repositories.NewUsers(store).Seed()
	repositories.NewCustomers(store).Create(models.Customer{Name: "A", Email: "a@x.com", Phone: "5", Password: "pw"})
	repositories.NewRepairs(store).Create(models.Repair{CustomerID: 1, Vehicle: "Civic", Issue: "noise", Status: models.StatusReceived})

	beforeUsers := repositories.NewUsers(store).List()
	beforeCustomers := repositories.NewCustomers(store).List()
	beforeRepairs := repositories.NewRepairs(store).List()

	// Export
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/export", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	exported := w.Body.Bytes()

	// Wipe all three collections
	store.Remove(storage.KeyUsers)
	store.Remove(storage.KeyCustomers)
	store.Remove(storage.KeyRepairs)

	// Import the exported document
	body, contentType := multipartUpload(t, "backup.json", exported)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)

	assert.ElementsMatch(t, beforeUsers, repositories.NewUsers(store).List())
	assert.ElementsMatch(t, beforeCustomers, repositories.NewCustomers(store).List())
	assert.ElementsMatch(t, beforeRepairs, repositories.NewRepairs(store).List())
}
