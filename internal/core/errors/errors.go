package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidJsonError       = "invalid_json"
	HttpInvalidArgumentError   = "invalid_argument"
	HttpStoreUnavailableError  = "store_unavailable"
	HttpResolutionFailureError = "resolution_failure"
)

// ErrorResponse is the error response body shared by every HTTP endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
