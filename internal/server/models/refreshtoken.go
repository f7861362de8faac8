package models

import "time"

// RefreshToken is a server-stored opaque refresh token.
type RefreshToken struct {
	Token   string
	UserID  string
	Expires time.Time
}
