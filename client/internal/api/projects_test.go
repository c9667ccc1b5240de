package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	apierrors "github.com/42tr/venus/client/internal/errors"
	"github.com/42tr/venus/client/internal/types"
)

func TestListProjects_PreservesOrder(t *testing.T) {
	t.Parallel()
	rc, _ := newTestRC(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/projects" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"id":"3","name":"c"},{"id":"1","name":"a"},{"id":"2","name":"b"}]`))
	}))
	got, err := ListProjects(context.Background(), rc)
	if err != nil || len(got) != 3 {
		t.Fatalf("ListProjects unexpected: got=%+v err=%v", got, err)
	}
	for i, id := range []string{"3", "1", "2"} {
		if got[i].ID != id {
			t.Fatalf("position %d: got id %s want %s", i, got[i].ID, id)
		}
	}
}

func TestGetProject_Success(t *testing.T) {
	t.Parallel()
	rc, _ := newTestRC(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/p1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"p1","name":"n","content":{"elements":[]},"uid":9}`))
	}))
	got, err := GetProject(context.Background(), rc, "p1")
	if err != nil || got.ID != "p1" || got.UID != 9 || string(got.Content) != `{"elements":[]}` {
		t.Fatalf("GetProject unexpected: got=%+v err=%v", got, err)
	}
}

func TestGetProject_EscapesID(t *testing.T) {
	t.Parallel()
	rc, _ := newTestRC(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/projects/a%2Fb" {
			t.Errorf("unexpected escaped path %s", r.URL.EscapedPath())
		}
		_, _ = w.Write([]byte(`{"id":"a/b"}`))
	}))
	if _, err := GetProject(context.Background(), rc, "a/b"); err != nil {
		t.Fatalf("GetProject: %v", err)
	}
}

func TestCreateProject_SendsJSON(t *testing.T) {
	t.Parallel()
	rc, _ := newTestRC(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/projects" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		if err := json.Unmarshal(body, &req); err != nil || req["name"] != "sketch" {
			t.Errorf("unexpected body %s", body)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"p9","name":"sketch"}`))
	}))
	got, err := CreateProject(context.Background(), rc, types.CreateProjectRequest{Name: "sketch"})
	if err != nil || got.ID != "p9" || got.Name != "sketch" {
		t.Fatalf("CreateProject unexpected: got=%+v err=%v", got, err)
	}
}

func TestUpdateProject_StatusAck(t *testing.T) {
	t.Parallel()
	rc, _ := newTestRC(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/projects/p1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req types.UpdateProjectRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if string(req.Content) != `{"elements":[1]}` {
			t.Errorf("unexpected content %s", req.Content)
		}
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	got, err := UpdateProject(context.Background(), rc, "p1", types.UpdateProjectRequest{Content: json.RawMessage(`{"elements":[1]}`)})
	if err != nil || got.Status != "success" || got.ID != "" {
		t.Fatalf("UpdateProject unexpected: got=%+v err=%v", got, err)
	}
}

func TestUpdateProject_ReturnsProject(t *testing.T) {
	t.Parallel()
	rc, _ := newTestRC(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"p1","name":"renamed","content":{}}`))
	}))
	got, err := UpdateProject(context.Background(), rc, "p1", types.UpdateProjectRequest{Name: "renamed", Content: json.RawMessage(`{}`)})
	if err != nil || got.ID != "p1" || got.Name != "renamed" {
		t.Fatalf("UpdateProject unexpected: got=%+v err=%v", got, err)
	}
}

func TestDeleteProject_Success(t *testing.T) {
	t.Parallel()
	rc, _ := newTestRC(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/projects/p1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	if err := DeleteProject(context.Background(), rc, "p1"); err != nil {
		t.Fatalf("DeleteProject error: %v", err)
	}
}

func TestProjects_NonOKStatuses(t *testing.T) {
	t.Parallel()
	rc, _ := newTestRC(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
		case http.MethodGet:
			w.WriteHeader(http.StatusInternalServerError)
		case http.MethodPut:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodDelete:
			w.WriteHeader(http.StatusUnauthorized)
		}
		_, _ = w.Write([]byte("payload"))
	}))
	ctx := context.Background()
	check := func(name string, err error, want int) {
		t.Helper()
		var apiErr *apierrors.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != want || string(apiErr.Body) != "payload" {
			t.Fatalf("%s: expected status %d with intact body, got %v", name, want, err)
		}
	}
	_, err := CreateProject(ctx, rc, types.CreateProjectRequest{Name: "x"})
	check("CreateProject", err, http.StatusBadRequest)
	_, err = ListProjects(ctx, rc)
	check("ListProjects", err, http.StatusInternalServerError)
	_, err = GetProject(ctx, rc, "p1")
	check("GetProject", err, http.StatusInternalServerError)
	_, err = UpdateProject(ctx, rc, "p1", types.UpdateProjectRequest{})
	check("UpdateProject", err, http.StatusNotFound)
	check("DeleteProject", DeleteProject(ctx, rc, "p1"), http.StatusUnauthorized)
}

func TestProjects_NetworkErrorPropagates(t *testing.T) {
	t.Parallel()
	rc := newFailingRC()
	ctx := context.Background()
	if _, err := ListProjects(ctx, rc); !errors.Is(err, errBoom) {
		t.Fatalf("ListProjects: %v", err)
	}
	if _, err := GetProject(ctx, rc, "p"); !errors.Is(err, errBoom) {
		t.Fatalf("GetProject: %v", err)
	}
	if _, err := CreateProject(ctx, rc, types.CreateProjectRequest{}); !errors.Is(err, errBoom) {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := UpdateProject(ctx, rc, "p", types.UpdateProjectRequest{}); !errors.Is(err, errBoom) {
		t.Fatalf("UpdateProject: %v", err)
	}
	if err := DeleteProject(ctx, rc, "p"); !errors.Is(err, errBoom) {
		t.Fatalf("DeleteProject: %v", err)
	}
}
