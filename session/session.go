// Package session tracks the current authenticated identity. The
// session lives in the document store under its own key, so a data
// reset wipes it together with the collections.
package session

import (
	"github.com/marcus-webb/repair-shop-api/config"
	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/storage"
)

// Set persists the session document.
func Set(sess models.Session) error {
	return storage.WriteJSON(config.GetStore(), storage.KeySession, sess)
}

// Get returns the current session, if any.
func Get() (models.Session, bool) {
	var sess models.Session
	if !storage.ReadJSON(config.GetStore(), storage.KeySession, &sess) || sess.Role == "" {
		return models.Session{}, false
	}
	return sess, true
}

// Clear removes the session document. Idempotent.
func Clear() error {
	return config.GetStore().Remove(storage.KeySession)
}
