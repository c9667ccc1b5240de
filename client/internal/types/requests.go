package types

import (
	"encoding/json"
	"io"
)

// ------------------------------
// Request Types
// ------------------------------

// RegisterRequest holds parameters for a new account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest holds account credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateProjectRequest holds parameters for a new project
type CreateProjectRequest struct {
	Name    string          `json:"name"`
	Content json.RawMessage `json:"content,omitempty"`
}

// UpdateProjectRequest holds the fields sent on update. Content replaces the
// stored scene as a whole.
type UpdateProjectRequest struct {
	Name    string          `json:"name,omitempty"`
	Content json.RawMessage `json:"content"`
}

// ImageUpload describes one file sent as multipart form data.
// ProjectID is optional; an empty value omits the project_id field.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
	ProjectID   string
}
