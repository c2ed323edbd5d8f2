// Package storage persists application state as JSON documents in a
// key-value store. Every collection is a single document replaced
// wholesale on write.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/marcus-webb/repair-shop-api/logger"
)

// Well-known document keys. One document per collection plus the session.
const (
	KeyUsers     = "mrs_users"
	KeyCustomers = "mrs_customers"
	KeyRepairs   = "mrs_repairs"
	KeySession   = "mrs_session"
)

// Store is a minimal key-value store. Implementations must treat a
// missing key as the empty case, not an error.
type Store interface {
	// Get returns the raw document and whether it was present.
	Get(key string) (string, bool)

	// Set stores the raw document under key, replacing prior content.
	Set(key, value string) error

	// Remove deletes the document for key. Removing an absent key is a no-op.
	Remove(key string) error
}

// ReadJSON decodes the document under key into dest. It returns false
// when the document is absent or does not parse; corrupt data is logged
// and treated as absent so callers always fall back to their zero value.
func ReadJSON(s Store, key string, dest any) bool {
	raw, ok := s.Get(key)
	if !ok || raw == "" {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Warningf("discarding unreadable document under %q: %v", key, err)
		return false
	}
	return true
}

// WriteJSON serializes value and stores it under key.
func WriteJSON(s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %q: %w", key, err)
	}
	return s.Set(key, string(data))
}
