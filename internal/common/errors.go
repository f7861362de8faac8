// Package common defines shared constants and sentinel errors used across
// the client and server layers of eventkeeper. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Identity errors surfaced by the auth service.
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmailExists   = errors.New("email already in use")
	ErrUserDisabled  = errors.New("account disabled")
	ErrWrongPassword = errors.New("wrong password")
	ErrTooManyLogins = errors.New("too many login attempts")
	ErrWeakPassword  = errors.New("password too short")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
