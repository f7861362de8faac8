package http

import (
	"errors"
	"net/http"

	"github.com/eventkeeper/eventkeeper/internal/common"
	"github.com/gofiber/fiber/v2"
)

// writeError emits the coded error envelope the client keys its message
// table on.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{"code": code, "message": message},
	})
}

// respondError translates service sentinel errors into coded envelopes.
// common.ErrorNotFound is deliberately absent: its meaning depends on the
// endpoint, so handlers translate it themselves before falling back here.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidEmail):
		return writeError(c, http.StatusBadRequest, common.CodeInvalidEmail, "invalid email address")
	case errors.Is(err, common.ErrWeakPassword):
		return writeError(c, http.StatusBadRequest, common.CodeWeakPassword, "password is too weak")
	case errors.Is(err, common.ErrEmailExists):
		return writeError(c, http.StatusConflict, common.CodeEmailExists, "email is already in use")
	case errors.Is(err, common.ErrUserDisabled):
		return writeError(c, http.StatusForbidden, common.CodeUserDisabled, "account is disabled")
	case errors.Is(err, common.ErrWrongPassword):
		return writeError(c, http.StatusUnauthorized, common.CodeWrongPassword, "wrong password")
	case errors.Is(err, common.ErrTooManyLogins):
		return writeError(c, http.StatusTooManyRequests, common.CodeTooManyRequests, "too many attempts, try again later")
	case errors.Is(err, common.ErrTokenExpired):
		return writeError(c, http.StatusUnauthorized, common.CodeTokenExpired, "access token expired")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrRefreshTokenExpired), errors.Is(err, common.ErrorUnauthorized):
		return writeError(c, http.StatusUnauthorized, common.CodeInvalidCredential, "invalid credentials")
	default:
		return writeError(c, http.StatusInternalServerError, common.CodeInternal, "internal server error")
	}
}
