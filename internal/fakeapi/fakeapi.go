// Package fakeapi is an in-memory stand-in for the venus backend, used by
// the SDK and CLI tests. It implements the same routes and status codes as
// the real service but keeps everything in process.
package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// RecordedRequest is what the backend saw for one call.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
}

type user struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	password  string
}

type project struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Content   json.RawMessage `json:"content"`
	UID       int64           `json:"uid"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type image struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	ProjectID    *string   `json:"project_id,omitempty"`
	UploadedBy   int64     `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	data         []byte
}

const defaultContent = `{"elements":[],"appState":{"collaborators":[]},"files":{}}`

// Backend holds the in-memory state.
type Backend struct {
	mu       sync.Mutex
	users    map[string]*user // by username
	tokens   map[string]int64 // token -> user id
	projects []*project       // insertion order
	images   []*image
	nextUser int64
	nextProj int
	requests []RecordedRequest
	now      func() time.Time
}

// New returns an empty Backend.
func New() *Backend {
	return &Backend{
		users:  make(map[string]*user),
		tokens: make(map[string]int64),
		now:    time.Now,
	}
}

// Handler returns the router serving the API under /api.
func (b *Backend) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(b.record)

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", b.register).Methods(http.MethodPost)
	auth.HandleFunc("/login", b.login).Methods(http.MethodPost)
	auth.HandleFunc("/user", b.currentUser).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/projects", b.listProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", b.createProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}", b.getProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", b.updateProject).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id}", b.deleteProject).Methods(http.MethodDelete)
	api.HandleFunc("/images", b.listImages).Methods(http.MethodGet)
	api.HandleFunc("/images", b.uploadImage).Methods(http.MethodPost)
	api.HandleFunc("/images/{id}", b.getImage).Methods(http.MethodGet)
	api.HandleFunc("/images/{id}", b.deleteImage).Methods(http.MethodDelete)
	return r
}

// Requests returns a copy of every request seen so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// AddUser registers an account directly and returns its token.
func (b *Backend) AddUser(username, password string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.addUserLocked(username, username+"@example.com", password)
	return b.issueTokenLocked(u.ID)
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
		})
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) addUserLocked(username, email, password string) *user {
	b.nextUser++
	now := b.now().UTC()
	u := &user{ID: b.nextUser, Username: username, Email: email, CreatedAt: now, UpdatedAt: now, password: password}
	b.users[username] = u
	return u
}

func (b *Backend) issueTokenLocked(uid int64) string {
	tok := "tok-" + uuid.NewString()
	b.tokens[tok] = uid
	return tok
}

// uidLocked resolves the bearer token to a user id.
func (b *Backend) uidLocked(r *http.Request) (int64, bool) {
	h := r.Header.Get("Authorization")
	tok, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return 0, false
	}
	uid, ok := b.tokens[tok]
	return uid, ok
}

// ------------------------------
// Auth
// ------------------------------

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[req.Username]; exists {
		writeError(w, http.StatusConflict, "user already exists")
		return
	}
	for _, u := range b.users {
		if req.Email != "" && u.Email == req.Email {
			writeError(w, http.StatusConflict, "user already exists")
			return
		}
	}
	u := b.addUserLocked(req.Username, req.Email, req.Password)
	writeJSON(w, http.StatusOK, map[string]any{"user": u, "token": b.issueTokenLocked(u.ID)})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[req.Username]
	if !ok || u.password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u, "token": b.issueTokenLocked(u.ID)})
}

func (b *Backend) currentUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	uid, ok := b.uidLocked(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	for _, u := range b.users {
		if u.ID == uid {
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeError(w, http.StatusNotFound, "user not found")
}

// ------------------------------
// Projects
// ------------------------------

func (b *Backend) findProjectLocked(id string, uid int64) (int, *project) {
	for i, p := range b.projects {
		if p.ID == id && p.UID == uid {
			return i, p
		}
	}
	return -1, nil
}

func (b *Backend) listProjects(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	uid, ok := b.uidLocked(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	type summary struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	out := make([]summary, 0, len(b.projects))
	// newest first
	for i := len(b.projects) - 1; i >= 0; i-- {
		if p := b.projects[i]; p.UID == uid {
			out = append(out, summary{ID: p.ID, Name: p.Name})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string          `json:"name"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	uid, ok := b.uidLocked(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	content := req.Content
	if len(content) == 0 || string(content) == "null" {
		content = json.RawMessage(defaultContent)
	}
	b.nextProj++
	now := b.now().UTC()
	p := &project{ID: strconv.Itoa(b.nextProj), Name: req.Name, Content: content, UID: uid, CreatedAt: now, UpdatedAt: now}
	b.projects = append(b.projects, p)
	writeJSON(w, http.StatusCreated, p)
}

func (b *Backend) getProject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	uid, ok := b.uidLocked(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	_, p := b.findProjectLocked(mux.Vars(r)["id"], uid)
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) updateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string          `json:"name"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	uid, ok := b.uidLocked(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	_, p := b.findProjectLocked(mux.Vars(r)["id"], uid)
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if len(req.Content) > 0 {
		p.Content = req.Content
	}
	p.UpdatedAt = b.now().UTC()
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (b *Backend) deleteProject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	uid, ok := b.uidLocked(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	i, p := b.findProjectLocked(mux.Vars(r)["id"], uid)
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	b.projects = append(b.projects[:i], b.projects[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------------
// Images
// ------------------------------

func (b *Backend) uploadImage(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	uid, ok := b.uidLocked(r)
	b.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, hdr, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image field")
		return
	}
	defer func() { _ = file.Close() }()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable image")
		return
	}

	id := uuid.NewString()
	ext := "bin"
	if dot := strings.LastIndex(hdr.Filename, "."); dot >= 0 && dot < len(hdr.Filename)-1 {
		ext = hdr.Filename[dot+1:]
	}
	mime := hdr.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}
	img := &image{
		ID:           id,
		Filename:     id + "." + ext,
		OriginalName: hdr.Filename,
		MimeType:     mime,
		Size:         int64(len(data)),
		UploadedBy:   uid,
		CreatedAt:    b.now().UTC(),
		data:         data,
	}
	if vals := r.MultipartForm.Value["project_id"]; len(vals) > 0 {
		pid := vals[0]
		img.ProjectID = &pid
	}

	b.mu.Lock()
	b.images = append(b.images, img)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, img)
}

func (b *Backend) listImages(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	uid, ok := b.uidLocked(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	out := make([]*image, 0, len(b.images))
	for i := len(b.images) - 1; i >= 0; i-- {
		if img := b.images[i]; img.UploadedBy == uid {
			out = append(out, img)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// getImage serves the binary without authentication, like the real backend.
func (b *Backend) getImage(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := mux.Vars(r)["id"]
	for _, img := range b.images {
		if img.ID == id {
			w.Header().Set("Content-Type", img.MimeType)
			w.Header().Set("Cache-Control", "public, max-age=31536000")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(img.data)
			return
		}
	}
	writeError(w, http.StatusNotFound, "image not found")
}

func (b *Backend) deleteImage(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	uid, ok := b.uidLocked(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id := mux.Vars(r)["id"]
	for i, img := range b.images {
		if img.ID == id && img.UploadedBy == uid {
			b.images = append(b.images[:i], b.images[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "image not found")
}
