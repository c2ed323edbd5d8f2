// Package repositories implements the three flat collections (users,
// customers, repairs) over the document store. Every mutation is a
// read-modify-write of the whole collection document; ids are assigned
// max+1 and never reused, so gaps appear after deletions.
package repositories

import (
	"strings"

	"github.com/marcus-webb/repair-shop-api/logger"
	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/storage"
	"github.com/marcus-webb/repair-shop-api/utils"
)

// Default admin identity created on first run.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// Users is the staff account collection.
type Users struct {
	store storage.Store
}

// NewUsers creates a Users repository over the given store.
func NewUsers(store storage.Store) *Users {
	return &Users{store: store}
}

// List returns all users in insertion order. Absent or corrupt data
// reads as an empty collection.
func (r *Users) List() []models.User {
	var users []models.User
	if !storage.ReadJSON(r.store, storage.KeyUsers, &users) || users == nil {
		return []models.User{}
	}
	return users
}

// NextID returns 1 for an empty collection, otherwise max id + 1.
// Recomputed on every call so it tolerates imports and external edits.
func (r *Users) NextID() int {
	max := 0
	for _, u := range r.List() {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

// Create assigns an id, appends the user and persists the collection.
func (r *Users) Create(user models.User) (models.User, error) {
	users := r.List()
	user.ID = r.NextID()
	users = append(users, user)
	if err := storage.WriteJSON(r.store, storage.KeyUsers, users); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByID returns the user with the given id.
func (r *Users) FindByID(id int) (models.User, bool) {
	for _, u := range r.List() {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// FindByCredentials matches a username case-insensitively and the
// password verbatim.
func (r *Users) FindByCredentials(username, password string) (models.User, bool) {
	for _, u := range r.List() {
		if strings.EqualFold(u.Username, username) && u.Password == password {
			return u, true
		}
	}
	return models.User{}, false
}

// Replace overwrites the whole collection (used by import).
func (r *Users) Replace(users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return storage.WriteJSON(r.store, storage.KeyUsers, users)
}

// Seed inserts the default admin account when the collection is empty
// and reports whether it did. Safe to call on every page load.
func (r *Users) Seed() bool {
	if len(r.List()) > 0 {
		return false
	}
	_, err := r.Create(models.User{
		Username:  DefaultAdminUsername,
		Password:  DefaultAdminPassword,
		Role:      models.RoleAdmin,
		CreatedAt: utils.NowStamp(),
	})
	if err != nil {
		logger.Errorf("failed to seed default admin: %v", err)
		return false
	}
	logger.Infof("seeded default admin account %q", DefaultAdminUsername)
	return true
}
