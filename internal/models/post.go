package models

import "time"

// Post represents a blog entry owned by exactly one user.
//
// AuthorID is set once at creation and never reassigned; only Title and Body
// change on update. Posts are hard-deleted.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
