package client

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/42tr/venus/client/config"
	"github.com/42tr/venus/client/session"
)

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("VENUS_DEBUG", "true")
	c, err := New(config.Endpoints{BaseURL: "http://example.com/api"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mt := c.http.Transport.(*metricsTransport)
	if _, ok := mt.base.(*debugTransport); !ok {
		t.Fatalf("expected debugTransport to be installed when VENUS_DEBUG=true")
	}
}

func TestNew_NoDebugByDefault(t *testing.T) {
	t.Setenv("VENUS_DEBUG", "")
	t.Setenv("DEBUG", "")
	c, err := New(config.Endpoints{BaseURL: "http://example.com/api"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mt := c.http.Transport.(*metricsTransport)
	if _, ok := mt.base.(*debugTransport); ok {
		t.Fatalf("debugTransport installed without request")
	}
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	// base transport returns error
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	c, err := New(config.Endpoints{BaseURL: "http://example.com/api"}, WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := c.http.Do(req); err == nil {
		t.Fatalf("expected error from underlying transport")
	}
}

func TestDebugTransport_RedactsToken(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	store := session.NewMemoryStore()
	_ = store.Set(session.TokenKey, "super-secret-token")
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return okResponse(r), nil
	})
	c, err := New(config.Endpoints{BaseURL: "http://example.com/api"},
		WithHTTPClient(&http.Client{Transport: rt}),
		WithSessionStore(store),
		WithDebugLogging(true),
		WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = c.DeleteProject(context.Background(), "p1")

	out := buf.String()
	if !strings.Contains(out, "HTTP request") {
		t.Fatalf("expected request dump in logs, got %q", out)
	}
	if strings.Contains(out, "super-secret-token") {
		t.Fatalf("token leaked into debug logs: %q", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Fatalf("expected redaction marker, got %q", out)
	}
}

func TestRedactAuthorization(t *testing.T) {
	in := []byte("GET /api/user HTTP/1.1\r\nHost: x\r\nAuthorization: Bearer abc.def\r\nAccept: */*\r\n\r\n")
	out := redactAuthorization(in)
	if strings.Contains(out, "abc.def") || !strings.Contains(out, "Authorization: Bearer [REDACTED]\r\n") {
		t.Fatalf("unexpected redaction: %q", out)
	}
	if !strings.Contains(out, "Accept: */*") {
		t.Fatalf("other headers altered: %q", out)
	}
}
