package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the user domain.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	Phone     string
	Address   string
	Age       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserView is the public projection of a User returned to clients.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Age       int       `json:"age,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View strips the password hash.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Address:   u.Address,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Principal is the verified identity attached to a request by a guard.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PrincipalOf builds the principal for an authenticated user.
func PrincipalOf(u *User) *Principal {
	return &Principal{ID: u.ID, Email: u.Email, Name: u.Name}
}

// NormalizeEmail is the canonical form used as the unique key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
