// Package client is the Go SDK for the venus backend: authentication,
// projects and images.
//
// A Client owns one transport, built once from the resolved Endpoints and
// shared by every resource group. Each method maps to exactly one HTTP call
// (Logout and ImageURL perform none). Failures are returned unchanged: a
// transport error as produced by the HTTP client, or an *APIError carrying
// the status and body of a non-2xx response. Nothing is retried.
package client

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/42tr/venus/client/config"
	"github.com/42tr/venus/client/internal/api"
	"github.com/42tr/venus/client/internal/transport"
	"github.com/42tr/venus/client/session"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	endpoints config.Endpoints
	http      *http.Client
	rest      *resty.Client
	session   *session.Session
	log       zerolog.Logger
	debug     bool
	timeout   time.Duration // from WithHTTPTimeout; zero keeps the http.Client's own
}

// New constructs a Client bound to endpoints. Without WithSessionStore the
// session lives in memory for the lifetime of the Client.
func New(endpoints config.Endpoints, opts ...Option) (*Client, error) {
	c := &Client{
		endpoints: endpoints,
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       log.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.session == nil {
		c.session = session.New(nil)
	}
	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}

	c.wrapTransport()
	c.rest = transport.New(transport.Config{
		Endpoints:  c.endpoints,
		Session:    c.session,
		HTTPClient: c.http,
		Logger:     c.log,
	})
	return c, nil
}

// NewFromEnv resolves Endpoints from VENUS_API_URL and VENUS_MODE and
// constructs a Client from them.
func NewFromEnv(opts ...Option) (*Client, error) {
	src, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	return New(config.Resolve(src), opts...)
}

// wrapTransport installs the round-tripper stack beneath resty:
// metrics, then debug logging when enabled, then the base transport.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base, log: c.log}
	}
	c.http.Transport = &metricsTransport{base: base}
}

// Endpoints returns the configuration the client was built with.
func (c *Client) Endpoints() config.Endpoints { return c.endpoints }

// Session exposes the persisted token and user.
func (c *Client) Session() *session.Session { return c.session }

// --------------------------------------------------------------------
// Auth operations - delegated to internal/api
// --------------------------------------------------------------------

// Register creates an account and persists the returned token and user.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	resp, err := api.Register(ctx, c.rest, req)
	if err != nil {
		return nil, err
	}
	if err := c.session.SetAuth(*resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Login authenticates and persists the returned token and user. The token
// is attached to every later request.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	resp, err := api.Login(ctx, c.rest, req)
	if err != nil {
		return nil, err
	}
	if err := c.session.SetAuth(*resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CurrentUser returns the user owning the persisted token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	return api.CurrentUser(ctx, c.rest)
}

// Logout forgets the persisted token and user. It makes no network call and
// is safe to call when already logged out. Errors come only from a store
// that cannot be written.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// --------------------------------------------------------------------
// Project operations - delegated to internal/api
// --------------------------------------------------------------------

// ListProjects returns the caller's projects in backend order.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	return api.ListProjects(ctx, c.rest)
}

// GetProject retrieves a project by ID.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	return api.GetProject(ctx, c.rest, id)
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	return api.CreateProject(ctx, c.rest, req)
}

// UpdateProject replaces the state of project id with data.
func (c *Client) UpdateProject(ctx context.Context, id string, data UpdateProjectRequest) (*UpdateProjectResponse, error) {
	return api.UpdateProject(ctx, c.rest, id, data)
}

// DeleteProject deletes a project. Backend returns 204 No Content on success.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return api.DeleteProject(ctx, c.rest, id)
}

// --------------------------------------------------------------------
// Image operations - delegated to internal/api
// --------------------------------------------------------------------

// UploadImage uploads one image, optionally attached to a project.
func (c *Client) UploadImage(ctx context.Context, up ImageUpload) (*Image, error) {
	return api.UploadImage(ctx, c.rest, up)
}

// ImageURL returns the direct URL of image id. No request is made.
func (c *Client) ImageURL(id string) string {
	return api.ImageURL(c.endpoints.ImageBaseURL, id)
}

// ListImages returns the caller's image metadata in backend order.
func (c *Client) ListImages(ctx context.Context) ([]Image, error) {
	return api.ListImages(ctx, c.rest)
}

// DeleteImage deletes an image. Backend returns 204 No Content on success.
func (c *Client) DeleteImage(ctx context.Context, id string) error {
	return api.DeleteImage(ctx, c.rest, id)
}
