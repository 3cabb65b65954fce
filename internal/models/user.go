// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in the NoteVault application.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:20;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Notes     []Note    `gorm:"foreignKey:AuthorID" json:"notes,omitempty"`
}

// AuthorRef is the reduced author representation embedded in note responses.
// Only the id and username of the owner are ever exposed.
type AuthorRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Ref returns the reduced representation of the user.
func (u *User) Ref() AuthorRef {
	return AuthorRef{ID: u.ID, Username: u.Username}
}
