// Package transport builds the single HTTP transport shared by every
// resource group (auth, projects, images).
package transport

import (
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/42tr/venus/client/config"
	"github.com/42tr/venus/client/session"
)

// Config holds everything the transport is bound to at construction.
type Config struct {
	Endpoints  config.Endpoints
	Session    *session.Session
	HTTPClient *http.Client // nil uses a zero http.Client
	Logger     zerolog.Logger
}

// New returns a resty client bound to cfg. The client is not reconfigured
// after this call.
func New(cfg Config) *resty.Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	c := resty.NewWithClient(hc).
		SetBaseURL(cfg.Endpoints.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetLogger(restyLogger{log: cfg.Logger.With().Str("component", "transport").Logger()})

	c.OnBeforeRequest(AuthInterceptor(cfg.Session))
	return c
}

// AuthInterceptor returns a hook that attaches the session token as a bearer
// credential on every outgoing request. Without a token the request is sent
// unchanged; rejecting it is the backend's call.
func AuthInterceptor(sess *session.Session) resty.RequestMiddleware {
	return func(_ *resty.Client, r *resty.Request) error {
		if sess == nil {
			return nil
		}
		if tok, ok := sess.Token(); ok {
			r.SetAuthToken(tok)
		}
		return nil
	}
}

// restyLogger routes resty's internal diagnostics to zerolog.
type restyLogger struct{ log zerolog.Logger }

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
