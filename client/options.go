package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/42tr/venus/client/session"
)

// Option configures a Client during construction in New.
//
// Options are applied in order before the transport is built; the
// round-tripper wrappers (metrics, debug logging) are installed afterwards,
// so their position does not depend on option order.
type Option func(*Client) error

// WithHTTPClient uses a copy of hc as the underlying HTTP client. Its
// Transport becomes the base of the SDK's round-tripper stack.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse bound on a single HTTP request. The value must be greater than zero.
// It is applied after all options, so it also overrides the Timeout of a
// client passed to WithHTTPClient regardless of order.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithSessionStore persists the token and user in store instead of memory.
func WithSessionStore(store session.Store) Option {
	return func(c *Client) error {
		if store == nil {
			return fmt.Errorf("session store must not be nil")
		}
		c.session = session.New(store)
		return nil
	}
}

// WithLogger sets the logger used for debug dumps and transport diagnostics.
// The default is zerolog's global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// WithDebugLogging logs every request and response at debug level when
// enabled is true. Authorization headers are redacted, bodies are not; do
// not enable this in production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.debug = true
		}
		return nil
	}
}
