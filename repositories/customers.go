package repositories

import (
	"errors"
	"strings"

	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/storage"
)

// ErrDuplicateEmail is returned when creating a customer whose email is
// already taken, compared case-insensitively. The check runs only at
// creation time; imported data is trusted as-is.
var ErrDuplicateEmail = errors.New("a customer with this email already exists")

// Customers is the customer collection.
type Customers struct {
	store storage.Store
}

// NewCustomers creates a Customers repository over the given store.
func NewCustomers(store storage.Store) *Customers {
	return &Customers{store: store}
}

// List returns all customers in insertion order.
func (r *Customers) List() []models.Customer {
	var customers []models.Customer
	if !storage.ReadJSON(r.store, storage.KeyCustomers, &customers) || customers == nil {
		return []models.Customer{}
	}
	return customers
}

// NextID returns 1 for an empty collection, otherwise max id + 1.
func (r *Customers) NextID() int {
	max := 0
	for _, c := range r.List() {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

// Create assigns an id, appends the customer and persists the
// collection. It fails with ErrDuplicateEmail when another customer
// already uses the email, ignoring case.
func (r *Customers) Create(customer models.Customer) (models.Customer, error) {
	customers := r.List()
	for _, existing := range customers {
		if strings.EqualFold(existing.Email, customer.Email) {
			return models.Customer{}, ErrDuplicateEmail
		}
	}

	customer.ID = r.NextID()
	customers = append(customers, customer)
	if err := storage.WriteJSON(r.store, storage.KeyCustomers, customers); err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// FindByID returns the customer with the given id.
func (r *Customers) FindByID(id int) (models.Customer, bool) {
	for _, c := range r.List() {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

// FindByCredentials matches an email case-insensitively and the
// password verbatim.
func (r *Customers) FindByCredentials(email, password string) (models.Customer, bool) {
	for _, c := range r.List() {
		if strings.EqualFold(c.Email, email) && c.Password == password {
			return c, true
		}
	}
	return models.Customer{}, false
}

// Delete removes the customer with the given id and persists the rest.
// Repairs referencing it are left dangling and render as a placeholder.
func (r *Customers) Delete(id int) error {
	customers := r.List()
	remaining := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if c.ID != id {
			remaining = append(remaining, c)
		}
	}
	return storage.WriteJSON(r.store, storage.KeyCustomers, remaining)
}

// Replace overwrites the whole collection (used by import).
func (r *Customers) Replace(customers []models.Customer) error {
	if customers == nil {
		customers = []models.Customer{}
	}
	return storage.WriteJSON(r.store, storage.KeyCustomers, customers)
}
