package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the user domain.
// Username and Email are stored lowercased; Password holds a bcrypt hash.
type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the first and last name with a single space.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Fields returns the user's public representation keyed by API field
// names. signupDate is the alias under which the creation timestamp is
// exposed for sorting and display.
func (u *User) Fields() map[string]any {
	return map[string]any{
		"id":       u.ID,
		"username": u.Username,
		"name": map[string]any{
			"first": u.FirstName,
			"last":  u.LastName,
		},
		"fullname":   u.FullName(),
		"email":      u.Email,
		"signupDate": u.CreatedAt,
	}
}
