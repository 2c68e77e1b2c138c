// Package user defines the user record, the credential store contract, and
// the identity-scoped HTTP handlers.
package user

import (
	"strings"
	"time"
)

// User is the persisted user record. PasswordHash never leaves the server:
// it is excluded from JSON and from the View returned to clients.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// View is the client-facing representation of a user.
type View struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View returns the sanitized representation of the user.
func (u *User) View() View {
	return View{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NormalizeEmail canonicalizes an email for lookup and storage. The store
// holds normalized emails, so duplicate checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Patch describes a partial update to a user record. Nil fields are left
// unchanged.
type Patch struct {
	Name         *string
	PasswordHash *string
}
