package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/marcus-webb/repair-shop-api/logger"
	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/repositories"
	"github.com/marcus-webb/repair-shop-api/storage"
)

// BackupFilename is the download name offered for exports.
const BackupFilename = "mechanic_system_backup.json"

// BackupDocument is the export file shape. Missing keys on import
// default to empty collections.
type BackupDocument struct {
	Users     []models.User     `json:"users"`
	Customers []models.Customer `json:"customers"`
	Repairs   []models.Repair   `json:"repairs"`
}

// BackupService bundles the three collections into a single document
// and restores them from one.
type BackupService interface {
	// Export returns the pretty-printed backup document.
	Export() ([]byte, error)

	// Import replaces all three collections from a backup document.
	// Malformed JSON is rejected with no state change.
	Import(data []byte) error
}

// StoreBackupService implements BackupService over the document store,
// pushing a best-effort offsite copy through S3 when enabled.
type StoreBackupService struct {
	users     *repositories.Users
	customers *repositories.Customers
	repairs   *repositories.Repairs
	offsite   bool
}

var backupServiceInstance BackupService

// InitBackupService initializes the backup service over the given store.
// When offsite is true, exports also upload a copy through the S3 service.
func InitBackupService(store storage.Store, offsite bool) BackupService {
	backupServiceInstance = &StoreBackupService{
		users:     repositories.NewUsers(store),
		customers: repositories.NewCustomers(store),
		repairs:   repositories.NewRepairs(store),
		offsite:   offsite,
	}
	return backupServiceInstance
}

// GetBackupService returns the initialized backup service instance
func GetBackupService() BackupService {
	return backupServiceInstance
}

// SetBackupService sets the backup service instance (primarily for testing)
func SetBackupService(service BackupService) {
	backupServiceInstance = service
}

// Export bundles users, customers and repairs into one document.
func (s *StoreBackupService) Export() ([]byte, error) {
	doc := BackupDocument{
		Users:     s.users.List(),
		Customers: s.customers.List(),
		Repairs:   s.repairs.List(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	// Offsite copy is best-effort: the download must succeed even when
	// the bucket is unreachable.
	if s.offsite {
		if s3Service := GetS3Service(); s3Service != nil {
			key := fmt.Sprintf("backups/%d_%s", time.Now().Unix(), BackupFilename)
			if err := s3Service.UploadBackup(key, data); err != nil {
				logger.Warningf("offsite backup upload failed: %v", err)
			} else {
				logger.Infof("offsite backup stored as %s", key)
			}
		}
	}

	return data, nil
}

// Import replaces all three collections wholesale. Missing top-level
// keys default to empty collections; malformed JSON leaves the current
// data untouched.
func (s *StoreBackupService) Import(data []byte) error {
	var doc BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid backup document: %w", err)
	}

	if err := s.users.Replace(doc.Users); err != nil {
		return err
	}
	if err := s.customers.Replace(doc.Customers); err != nil {
		return err
	}
	if err := s.repairs.Replace(doc.Repairs); err != nil {
		return err
	}

	logger.Infof("imported backup: %d users, %d customers, %d repairs",
		len(doc.Users), len(doc.Customers), len(doc.Repairs))
	return nil
}
