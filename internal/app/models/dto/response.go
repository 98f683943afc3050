package dto

import (
	"time"

	"github.com/yigit/unicampus/internal/app/models"
)

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// MutationResponse reports a write. ID is only present after an add.
type MutationResponse struct {
	ID      int64 `json:"id,omitempty" example:"1"`
	Changes int64 `json:"changes" example:"1"`
}

// NewMutationResponse converts a repository result
func NewMutationResponse(res models.MutationResult) MutationResponse {
	return MutationResponse{ID: res.ID, Changes: res.Changes}
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"sqlite"`
}
