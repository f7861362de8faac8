package common

// Error code strings carried in API error envelopes. The client keys its
// user-facing message table on these values, so they are shared constants
// rather than literals scattered over both layers.
const (
	CodeInvalidEmail        = "auth/invalid-email"
	CodeUserDisabled        = "auth/user-disabled"
	CodeUserNotFound        = "auth/user-not-found"
	CodeWrongPassword       = "auth/wrong-password"
	CodeTooManyRequests     = "auth/too-many-requests"
	CodeNetworkFailed       = "auth/network-request-failed"
	CodeInvalidCredential   = "auth/invalid-credential"
	CodeOperationNotAllowed = "auth/operation-not-allowed"
	CodePopupClosed         = "auth/popup-closed-by-user"
	CodeCancelledPopup      = "auth/cancelled-popup-request"
	CodeUnauthorizedDomain  = "auth/unauthorized-domain"
	CodeUnknown             = "auth/unknown"

	CodeEmailExists      = "auth/email-already-in-use"
	CodeWeakPassword     = "auth/weak-password"
	CodeTokenExpired     = "auth/token-expired"
	CodePermissionDenied = "permission-denied"
	CodeDocumentNotFound = "document/not-found"
	CodeInternal         = "internal"
)
