package dto

// SuccessResponse represents a standard success response for write endpoints
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response with a message
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
	}
}
