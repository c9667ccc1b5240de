package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/42tr/venus/client/config"
	"github.com/42tr/venus/client/internal/transport"
	"github.com/42tr/venus/client/session"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, errBoom }

var errBoom = fmt.Errorf("boom")

// newTestRC starts srv with handler and returns a transport bound to it.
func newTestRC(t *testing.T, handler http.Handler) (*resty.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rc := transport.New(transport.Config{
		Endpoints:  config.Resolve(config.Source{Override: srv.URL}),
		Session:    session.New(nil),
		HTTPClient: srv.Client(),
		Logger:     zerolog.Nop(),
	})
	return rc, srv
}

// newFailingRC returns a transport whose every request fails before reaching a server.
func newFailingRC() *resty.Client {
	return transport.New(transport.Config{
		Endpoints:  config.Resolve(config.Source{Override: "http://unreachable.invalid"}),
		Session:    session.New(nil),
		HTTPClient: &http.Client{Transport: &errRT{}},
		Logger:     zerolog.Nop(),
	})
}
