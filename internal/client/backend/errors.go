package backend

import "fmt"

// APIError is a coded failure reported by the backend. Code carries the
// stable error-code string from the response envelope ("auth/wrong-password"
// and friends); transport failures are reported with the network code.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}
