// Package prefs is the on-device key-value store used by the client: the
// registration-completed mirror flag and the cached session token pair.
package prefs

import "context"

// Keys stored by the client. HasCompletedRegistrationKey is a cache hint
// only; the backend user document stays the source of truth.
const (
	HasCompletedRegistrationKey = "hasCompletedRegistration"
	AccessTokenKey              = "accessToken"
	RefreshTokenKey             = "refreshToken"
)

// Repository is a durable string key-value store. Get returns
// common.ErrorNotFound for absent keys; Delete of an absent key is a no-op.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
