package models

// Customer represents a shop customer. Email is unique (checked
// case-insensitively at creation). Customers are never updated or
// deleted by the application.
type Customer struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"` // plaintext, compared verbatim at login
	CreatedAt string `json:"created_at"`
}
