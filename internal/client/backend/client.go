// Package backend defines the client's boundary toward the hosted
// identity/document/blob service, and its HTTP implementation.
package backend

import (
	"context"
	"time"
)

// User is the identity record returned by the backend.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
}

// Document is the per-user document stored by the backend. All fields are
// optional server-side; readers must default missing values, so legacy
// documents written before newer fields existed keep working.
type Document struct {
	Email                    string    `json:"email"`
	FirstName                string    `json:"firstName"`
	LastName                 string    `json:"lastName"`
	Phone                    string    `json:"phone"`
	Address                  string    `json:"address"`
	ProfileImageURL          string    `json:"profileImageUrl"`
	ProfileImagePath         string    `json:"profileImagePath"`
	RegistrationStep         int       `json:"registrationStep"`
	HasCompletedRegistration bool      `json:"hasCompletedRegistration"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

// NewDocument carries the fields written when a user document is first
// created. Timestamps are set server-side.
type NewDocument struct {
	Email                    string `json:"email"`
	RegistrationStep         int    `json:"registrationStep"`
	HasCompletedRegistration bool   `json:"hasCompletedRegistration"`
}

// DocumentPatch is a partial document update. Nil fields are left untouched;
// the server refreshes updatedAt on every patch.
type DocumentPatch struct {
	Email                    *string `json:"email,omitempty"`
	FirstName                *string `json:"firstName,omitempty"`
	LastName                 *string `json:"lastName,omitempty"`
	Phone                    *string `json:"phone,omitempty"`
	Address                  *string `json:"address,omitempty"`
	ProfileImageURL          *string `json:"profileImageUrl,omitempty"`
	ProfileImagePath         *string `json:"profileImagePath,omitempty"`
	RegistrationStep         *int    `json:"registrationStep,omitempty"`
	HasCompletedRegistration *bool   `json:"hasCompletedRegistration,omitempty"`
}

// ProfileUpdate is a partial update of the identity record itself.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
}

// Client is the backend collaborator used by the orchestration layer.
//
// Contract:
//   - CurrentUser returns (nil, nil) when no cached session exists.
//   - GetDocument returns common.ErrorNotFound when the document is absent.
//   - All failures surface as *APIError where the backend reported a coded
//     error envelope.
type Client interface {
	CurrentUser(ctx context.Context) (*User, error)
	SignIn(ctx context.Context, email, password string) (*User, error)
	SignUp(ctx context.Context, email, password string) (*User, error)
	SignOut(ctx context.Context) error

	GetDocument(ctx context.Context, userID string) (*Document, error)
	CreateDocument(ctx context.Context, userID string, doc NewDocument) error
	UpdateDocument(ctx context.Context, userID string, patch DocumentPatch) error

	UpdateProfile(ctx context.Context, update ProfileUpdate) error

	UploadObject(ctx context.Context, path string, data []byte) (string, error)
	DeleteObject(ctx context.Context, path string) error

	Close() error
}

// TokenStore persists the session token pair across process restarts, the
// analogue of the mobile SDK's cached current user.
type TokenStore interface {
	LoadTokens(ctx context.Context) (access, refresh string, err error)
	SaveTokens(ctx context.Context, access, refresh string) error
	ClearTokens(ctx context.Context) error
}
