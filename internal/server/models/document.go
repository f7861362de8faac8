package models

import "time"

// Document is the per-user onboarding/profile document. Field names on the
// wire match the client's document schema exactly.
type Document struct {
	UserID                   string
	Email                    string
	FirstName                string
	LastName                 string
	Phone                    string
	Address                  string
	ProfileImageURL          string
	ProfileImagePath         string
	RegistrationStep         int
	HasCompletedRegistration bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// DocumentPatch is a partial document update; nil fields are untouched.
type DocumentPatch struct {
	Email                    *string
	FirstName                *string
	LastName                 *string
	Phone                    *string
	Address                  *string
	ProfileImageURL          *string
	ProfileImagePath         *string
	RegistrationStep         *int
	HasCompletedRegistration *bool
}
