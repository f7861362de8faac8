// Package models contains the server-side persistence records.
package models

import "time"

// User is an identity account.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	DisplayName  string
	PhotoURL     string
	Disabled     bool
	CreatedAt    time.Time
}
