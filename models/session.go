package models

// Session is the current authenticated identity. Staff sessions carry
// UserID and Username; customer sessions carry CustomerID. It is stored
// as its own document and wiped by logout and by a data reset.
type Session struct {
	Role       string `json:"role"`
	UserID     int    `json:"user_id,omitempty"`
	CustomerID int    `json:"customer_id,omitempty"`
	Username   string `json:"username,omitempty"`
}
