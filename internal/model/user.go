package model

import "time"

// User is a server-side account. The Member persona derived from it is what
// shows up in posts, reactions, and family member lists.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Avatar         string    `json:"avatar"`
	Age            int       `json:"age,omitempty"`
	ActiveFamilyID *string   `json:"active_family_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Member is the display persona attached to posts, reactions, assignees, and
// family member lists. Identity matching across a family is by Name.
type Member struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Age    int    `json:"age,omitempty"`
}

// Persona returns the user's member persona.
func (u *User) Persona() Member {
	return Member{Name: u.DisplayName, Avatar: u.Avatar, Age: u.Age}
}
