package models

// APIError represents a standardized simulator error payload.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Response is the uniform envelope returned by every simulator operation.
// Successful responses carry Data and no Error; failed responses carry Error
// and no Data.
type Response struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *APIError              `json:"error,omitempty"`
}

// SuccessResponse builds a successful envelope around the given payload.
func SuccessResponse(data map[string]interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// ErrorResponse builds a failed envelope with the given code and message.
func ErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	}
}

// ErrorResponseDetails builds a failed envelope carrying machine-readable
// context for test assertions.
func ErrorResponseDetails(code, message string, details map[string]interface{}) Response {
	return Response{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
