package users

import "time"

type User struct {
	ID         string    `json:"userId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

// SyncInput is the sign-in payload from the client.
type SyncInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is a synced user plus its bearer token.
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}
