package services

import (
	"errors"

	"github.com/eventkeeper/eventkeeper/internal/client/backend"
	"github.com/eventkeeper/eventkeeper/internal/common"
)

const (
	genericErrorMessage    = "An error occurred. Please try again."
	unexpectedErrorMessage = "An unexpected error occurred. Please try again."
)

// errorMessages maps backend error codes to the user-facing text rendered
// next to the relevant form.
var errorMessages = map[string]string{
	common.CodeInvalidEmail:        "Please enter a valid email address.",
	common.CodeUserDisabled:        "This account has been disabled. Please contact support.",
	common.CodeUserNotFound:        "No account found with this email. Please check your email or sign up.",
	common.CodeWrongPassword:       "Incorrect password. Please try again.",
	common.CodeTooManyRequests:     "Too many failed login attempts. Please try again later or reset your password.",
	common.CodeNetworkFailed:       "Network error. Please check your internet connection.",
	common.CodeInvalidCredential:   "Invalid login credentials. Please try again.",
	common.CodeOperationNotAllowed: "Email/password login is not enabled. Please contact support.",
	common.CodePopupClosed:         "Login popup was closed before completion.",
	common.CodeCancelledPopup:      "Login operation cancelled due to another pending login.",
	common.CodeUnauthorizedDomain:  "Login not allowed from this domain.",
	common.CodeUnknown:             "An unknown error occurred. Please try again later.",
}

// ErrorMessage translates a failure into user-facing text. The fallback
// chain: known code -> table entry; unknown code -> the backend's raw
// message (or a generic "unexpected" string when that is empty too); no code
// -> the raw error message; no message at all -> a generic "try again"
// string.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		if msg, ok := errorMessages[apiErr.Code]; ok {
			return msg
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return unexpectedErrorMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericErrorMessage
}
