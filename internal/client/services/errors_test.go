package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/eventkeeper/eventkeeper/internal/client/backend"
	"github.com/eventkeeper/eventkeeper/internal/common"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageKnownCodes(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{common.CodeInvalidEmail, "Please enter a valid email address."},
		{common.CodeUserDisabled, "This account has been disabled. Please contact support."},
		{common.CodeUserNotFound, "No account found with this email. Please check your email or sign up."},
		{common.CodeWrongPassword, "Incorrect password. Please try again."},
		{common.CodeTooManyRequests, "Too many failed login attempts. Please try again later or reset your password."},
		{common.CodeNetworkFailed, "Network error. Please check your internet connection."},
		{common.CodeInvalidCredential, "Invalid login credentials. Please try again."},
		{common.CodeOperationNotAllowed, "Email/password login is not enabled. Please contact support."},
		{common.CodePopupClosed, "Login popup was closed before completion."},
		{common.CodeCancelledPopup, "Login operation cancelled due to another pending login."},
		{common.CodeUnauthorizedDomain, "Login not allowed from this domain."},
		{common.CodeUnknown, "An unknown error occurred. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := &backend.APIError{Code: tt.code, Message: "raw backend text"}
			require.Equal(t, tt.want, ErrorMessage(err))
		})
	}
}

func TestErrorMessageUnknownCodeUsesRawMessage(t *testing.T) {
	err := &backend.APIError{Code: "auth/some-new-code", Message: "backend says no"}
	require.Equal(t, "backend says no", ErrorMessage(err))
}

func TestErrorMessageUnknownCodeWithoutMessage(t *testing.T) {
	err := &backend.APIError{Code: "auth/some-new-code"}
	require.Equal(t, "An unexpected error occurred. Please try again.", ErrorMessage(err))
}

func TestErrorMessageUncodedError(t *testing.T) {
	require.Equal(t, "plain failure", ErrorMessage(errors.New("plain failure")))
}

func TestErrorMessageWrappedAPIError(t *testing.T) {
	inner := &backend.APIError{Code: common.CodeWrongPassword, Message: "x"}
	wrapped := fmt.Errorf("signing in: %w", inner)
	require.Equal(t, "Incorrect password. Please try again.", ErrorMessage(wrapped))
}

func TestErrorMessageEmptyMessage(t *testing.T) {
	require.Equal(t, "An error occurred. Please try again.", ErrorMessage(errors.New("")))
}

func TestErrorMessageNil(t *testing.T) {
	require.Equal(t, "", ErrorMessage(nil))
}
