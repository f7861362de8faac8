// Package models contains client-side domain records.
package models

// AppEvent is an event card shown in the feed: a post combined with the
// photo at the same index.
type AppEvent struct {
	ID           int
	Title        string
	Body         string
	ThumbnailURL string
	URL          string
}

// Organizer is an event organizer profile combined with an avatar photo.
type Organizer struct {
	ID        int
	Name      string
	Email     string
	AvatarURL string
}
