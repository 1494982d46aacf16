package models

import "strings"

// User is one row of the admin table.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	State     string `json:"state,omitempty"`
}

// Sanitize trims whitespace from every editable field.
func (u *User) Sanitize() {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.TrimSpace(u.Email)
	u.State = strings.TrimSpace(u.State)
}

// Collection is the whole ordered set of users stored under one key.
// Version is the store version the users were read at.
type Collection struct {
	Users   []User `json:"users"`
	Version int64  `json:"version"`
}

func (c Collection) Len() int { return len(c.Users) }

func (c Collection) IndexOf(id string) int {
	for i, u := range c.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (c Collection) Find(id string) (User, bool) {
	if i := c.IndexOf(id); i >= 0 {
		return c.Users[i], true
	}
	return User{}, false
}

// Clone returns a copy whose Users slice does not alias c.
func (c Collection) Clone() Collection {
	out := Collection{Version: c.Version, Users: make([]User, len(c.Users))}
	copy(out.Users, c.Users)
	return out
}
