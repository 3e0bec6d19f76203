// Package models defines the client-side data model for the Odyssey travel
// journal: users, journal entries, locations, comments and reactions, plus
// the draft/patch shapes sent to the remote API and their validation rules.
package models

import "time"

// User is the authenticated principal (or another user's public profile).
// It is owned by the session store: replaced wholesale on login/refresh,
// cleared on logout. No other component mutates it.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
