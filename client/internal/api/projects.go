package api

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/42tr/venus/client/internal/types"
)

// ListProjects returns the caller's projects in the order the backend sends
// them. Listings carry only ID and Name.
func ListProjects(ctx context.Context, rc *resty.Client) ([]types.Project, error) {
	const op = "list projects"
	r, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	resp, err := r.Get("/projects")
	if err := finish(op, resp, err); err != nil {
		return nil, err
	}
	var out []types.Project
	if err := decode(op, resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject retrieves a project including its scene content.
func GetProject(ctx context.Context, rc *resty.Client, id string) (*types.Project, error) {
	const op = "get project"
	r, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	resp, err := r.Get("/projects/" + segment(id))
	if err := finish(op, resp, err); err != nil {
		return nil, err
	}
	var p types.Project
	if err := decode(op, resp, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject creates a project and returns it as stored by the backend.
func CreateProject(ctx context.Context, rc *resty.Client, req types.CreateProjectRequest) (*types.Project, error) {
	const op = "create project"
	r, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	resp, err := r.SetBody(req).Post("/projects")
	if err := finish(op, resp, err); err != nil {
		return nil, err
	}
	var p types.Project
	if err := decode(op, resp, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject sends data as the new state of project id.
func UpdateProject(ctx context.Context, rc *resty.Client, id string, data types.UpdateProjectRequest) (*types.UpdateProjectResponse, error) {
	const op = "update project"
	r, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	resp, err := r.SetBody(data).Put("/projects/" + segment(id))
	if err := finish(op, resp, err); err != nil {
		return nil, err
	}
	var out types.UpdateProjectResponse
	if len(resp.Body()) == 0 {
		return &out, nil
	}
	if err := decode(op, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject removes a project. Backend returns 204 No Content on success.
func DeleteProject(ctx context.Context, rc *resty.Client, id string) error {
	const op = "delete project"
	r, err := newRequest(ctx, rc)
	if err != nil {
		return err
	}
	resp, err := r.Delete("/projects/" + segment(id))
	return finish(op, resp, err)
}
