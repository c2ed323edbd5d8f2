package config

import (
	"log"
	"os"

	"github.com/marcus-webb/repair-shop-api/storage"
)

var activeStore storage.Store

// ConnectStorage opens the document store. PostgreSQL is used when
// DATABASE_URL is set; otherwise a local SQLite file at DATABASE_PATH.
func ConnectStorage() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL != "" {
		store, err := storage.OpenPostgres(databaseURL)
		if err != nil {
			return err
		}
		activeStore = store
		log.Println("Document store connected (postgres)")
		return nil
	}

	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "./repairshop.db"
		log.Println("DATABASE_PATH not set, using default:", path)
	}

	store, err := storage.OpenSQLite(path)
	if err != nil {
		return err
	}
	activeStore = store
	log.Println("Document store connected (sqlite)")
	return nil
}

// GetStore returns the active document store.
func GetStore() storage.Store {
	return activeStore
}

// SetStore sets the active document store (primarily for testing)
func SetStore(s storage.Store) {
	activeStore = s
}
