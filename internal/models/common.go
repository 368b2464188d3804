package models

// ErrorResponse is a standardized error response for API
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse acknowledges a state change on a friend request.
type StatusResponse struct {
	Status string `json:"status"`
}
