package client

import "github.com/42tr/venus/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
// Requests
type (
	RegisterRequest      = types.RegisterRequest
	LoginRequest         = types.LoginRequest
	CreateProjectRequest = types.CreateProjectRequest
	UpdateProjectRequest = types.UpdateProjectRequest
	ImageUpload          = types.ImageUpload

	// Domain entities
	User    = types.User
	Project = types.Project
	Image   = types.Image

	// Responses
	AuthResponse          = types.AuthResponse
	UpdateProjectResponse = types.UpdateProjectResponse
)
