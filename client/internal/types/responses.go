package types

// ------------------------------
// Response Types
// ------------------------------

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateProjectResponse carries whatever the backend acknowledges on update:
// either a bare {"status": "..."} or the updated project itself.
type UpdateProjectResponse struct {
	Status string `json:"status,omitempty"`
	Project
}
