package models

// Staff roles. Customers authenticate against the customers collection
// and never appear in the users collection.
const (
	RoleAdmin    = "admin"
	RoleMechanic = "mechanic"
	RoleCustomer = "customer"
)

// User represents a staff account (admin or mechanic). Users are created
// only by the first-run seed; the application never edits or deletes them.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"` // plaintext, compared verbatim at login
	Role      string `json:"role"`     // "admin" or "mechanic"
	CreatedAt string `json:"created_at"`
}
