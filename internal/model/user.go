// Package model contains domain entities and DTOs used across layers.
package model

import "time"

// User is a person known to the directory. Email is stored lower-cased and is
// unique across all users.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch carries the optional fields of a partial update; nil means "leave as is".
type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	Disabled *bool   `json:"disabled,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Disabled == nil
}

// Apply returns u with every supplied field of the patch written over it.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Disabled != nil {
		u.Disabled = *p.Disabled
	}
	return u
}
