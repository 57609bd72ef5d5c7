package dto

import "PROFILEHUB_BACK-END/internal/models"

// ProfileRequest is the body for POST /profiles and PUT /profiles/{id}.
type ProfileRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"` // "YYYY-MM-DD" or RFC3339
	Gender      string `json:"gender"`
}

// ProfileMutationResponse is returned by create, update and delete.
type ProfileMutationResponse struct {
	Message string         `json:"message"`
	Data    models.Profile `json:"data"`
}

// ProfileListResponse is the paginated envelope for GET /profiles.
type ProfileListResponse struct {
	Profiles    []models.Profile `json:"profiles"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
	Total       int              `json:"total"`
	HasNext     bool             `json:"hasNext"`
	HasPrev     bool             `json:"hasPrev"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
