package dto

import "time"

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Count     *int         `json:"count,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewDataResponse wraps a payload in the standard envelope.
func NewDataResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewListResponse wraps a list payload and its length in the envelope.
func NewListResponse(data interface{}, count int) APIResponse {
	return APIResponse{
		Success:   true,
		Count:     &count,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewMessageResponse wraps a bare confirmation message.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Timestamp: time.Now(),
	}
}
