package storage

import (
	"errors"
	"fmt"

	"github.com/marcus-webb/repair-shop-api/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Document is a single stored JSON blob. The table is a plain key-value
// mapping; all structure lives inside the value.
type Document struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string
}

// TableName specifies the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// GormStore is the production Store, backed by a documents table.
// PostgreSQL is used when a DATABASE_URL is configured, SQLite otherwise.
type GormStore struct {
	db *gorm.DB
}

// OpenPostgres connects a GormStore to a PostgreSQL database.
func OpenPostgres(databaseURL string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormStore(db)
}

// OpenSQLite connects a GormStore to a SQLite database file.
func OpenSQLite(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an existing gorm connection and migrates the
// documents table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get returns the raw document stored under key.
func (s *GormStore) Get(key string) (string, bool) {
	var doc Document
	err := s.db.First(&doc, "key = ?", key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warningf("failed to read document %q: %v", key, err)
		}
		return "", false
	}
	return doc.Value, true
}

// Set stores value under key, replacing any prior document.
func (s *GormStore) Set(key, value string) error {
	doc := Document{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&doc).Error; err != nil {
		return fmt.Errorf("failed to store document %q: %w", key, err)
	}
	return nil
}

// Remove deletes the document under key. Absent keys are a no-op.
func (s *GormStore) Remove(key string) error {
	if err := s.db.Delete(&Document{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to remove document %q: %w", key, err)
	}
	return nil
}

// Ping verifies the underlying database connection.
func (s *GormStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
