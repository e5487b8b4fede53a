// Package models contains data structures for the application's domain models.
package models

// User represents a registered account in the Quill application.
//
// The Password column always holds a bcrypt hash, never plaintext, and is
// excluded from any serialized form. Users are created by registration and
// never updated or deleted through an exposed flow.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}
