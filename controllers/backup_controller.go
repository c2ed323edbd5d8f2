package controllers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/marcus-webb/repair-shop-api/logger"
	"github.com/marcus-webb/repair-shop-api/services"
	"github.com/marcus-webb/repair-shop-api/utils"
)

// ExportBackup handles GET /export - bundles all three collections into
// one pretty-printed JSON document and offers it as a download.
func ExportBackup(c *gin.Context) {
	data, err := services.GetBackupService().Export()
	if err != nil {
		logger.Errorf("export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_ERROR",
				"message": "Failed to build backup document",
			},
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.BackupFilename))
	c.Data(http.StatusOK, "application/json", data)
}

// ImportBackup handles POST /import - replaces all three collections
// from an uploaded backup document. Malformed JSON is rejected with no
// state change. The overwrite confirmation lives in the template.
func ImportBackup(c *gin.Context) {
	fileHeader, err := c.FormFile("backup")
	if err != nil {
		redirectDashboard(c, url.Values{"error": {"Select a backup file"}})
		return
	}

	if err := utils.ValidateBackupFile(fileHeader); err != nil {
		redirectDashboard(c, url.Values{"error": {err.Error()}})
		return
	}

	content, err := utils.ReadUploadedFile(fileHeader)
	if err != nil {
		logger.Errorf("failed to read uploaded backup: %v", err)
		redirectDashboard(c, url.Values{"error": {"Failed to read uploaded file"}})
		return
	}

	if err := services.GetBackupService().Import(content); err != nil {
		logger.Warningf("rejected backup import: %v", err)
		redirectDashboard(c, url.Values{"error": {"Invalid JSON"}})
		return
	}

	redirectDashboard(c, url.Values{"notice": {"Import complete."}})
}
