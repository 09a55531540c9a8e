package model

import "time"

type Session struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by login, register, and session-check calls. It
// carries everything a client needs to rehydrate its session state.
type AuthResponse struct {
	AccessToken    string   `json:"access_token"`
	User           Member   `json:"user"`
	Families       []Family `json:"families"`
	ActiveFamilyID *string  `json:"active_family_id"`
}
