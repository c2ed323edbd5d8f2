package repositories

import (
	"sort"

	"github.com/marcus-webb/repair-shop-api/models"
	"github.com/marcus-webb/repair-shop-api/storage"
	"github.com/marcus-webb/repair-shop-api/utils"
)

// Repairs is the repair job collection.
type Repairs struct {
	store storage.Store
}

// NewRepairs creates a Repairs repository over the given store.
func NewRepairs(store storage.Store) *Repairs {
	return &Repairs{store: store}
}

// List returns all repairs in insertion order.
func (r *Repairs) List() []models.Repair {
	var repairs []models.Repair
	if !storage.ReadJSON(r.store, storage.KeyRepairs, &repairs) || repairs == nil {
		return []models.Repair{}
	}
	return repairs
}

// NextID returns 1 for an empty collection, otherwise max id + 1.
func (r *Repairs) NextID() int {
	max := 0
	for _, job := range r.List() {
		if job.ID > max {
			max = job.ID
		}
	}
	return max + 1
}

// Create assigns an id, stamps updated_at and persists the collection.
func (r *Repairs) Create(repair models.Repair) (models.Repair, error) {
	repairs := r.List()
	repair.ID = r.NextID()
	if repair.UpdatedAt == "" {
		repair.UpdatedAt = utils.NowStamp()
	}
	repairs = append(repairs, repair)
	if err := storage.WriteJSON(r.store, storage.KeyRepairs, repairs); err != nil {
		return models.Repair{}, err
	}
	return repair, nil
}

// FindByID returns the repair with the given id.
func (r *Repairs) FindByID(id int) (models.Repair, bool) {
	for _, job := range r.List() {
		if job.ID == id {
			return job, true
		}
	}
	return models.Repair{}, false
}

// UpdateStatus sets the status of the repair with the given id and
// refreshes its updated_at stamp. Unknown ids are a silent no-op.
func (r *Repairs) UpdateStatus(id int, status string) error {
	repairs := r.List()
	for i := range repairs {
		if repairs[i].ID == id {
			repairs[i].Status = status
			repairs[i].UpdatedAt = utils.NowStamp()
			return storage.WriteJSON(r.store, storage.KeyRepairs, repairs)
		}
	}
	return nil
}

// Delete removes the repair with the given id and persists the rest.
func (r *Repairs) Delete(id int) error {
	repairs := r.List()
	remaining := make([]models.Repair, 0, len(repairs))
	for _, job := range repairs {
		if job.ID != id {
			remaining = append(remaining, job)
		}
	}
	return storage.WriteJSON(r.store, storage.KeyRepairs, remaining)
}

// ForCustomer returns the repairs belonging to one customer, most
// recent first.
func (r *Repairs) ForCustomer(customerID int) []models.Repair {
	var owned []models.Repair
	for _, job := range r.List() {
		if job.CustomerID == customerID {
			owned = append(owned, job)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID > owned[j].ID })
	return owned
}

// Replace overwrites the whole collection (used by import).
func (r *Repairs) Replace(repairs []models.Repair) error {
	if repairs == nil {
		repairs = []models.Repair{}
	}
	return storage.WriteJSON(r.store, storage.KeyRepairs, repairs)
}
