package domain

import "time"

// User es una identidad autenticable, por contraseña o por login social.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PhotoURL     string     `json:"photoUrl,omitempty"`
	PasswordHash string     `json:"-"`
	IsAdmin      bool       `json:"isAdmin"`
	Provider     string     `json:"provider,omitempty"`
	ProviderID   string     `json:"providerId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}
