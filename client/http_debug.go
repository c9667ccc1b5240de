package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"

	"github.com/rs/zerolog"
)

// debugTransport logs each request and response dump at debug level.
//
// Enable with WithDebugLogging(true), or set VENUS_DEBUG=true or DEBUG=true.
// Dumps include full bodies (project scenes, uploaded images); only the
// Authorization header is redacted. The logger's level still applies, so
// nothing is written unless debug level is enabled.
type debugTransport struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", redactAuthorization(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.log.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

var authorizationLine = regexp.MustCompile(`(?mi)^(Authorization:\s*\S+)\s+\S+`)

func redactAuthorization(dump []byte) string {
	return authorizationLine.ReplaceAllString(string(dump), "$1 [REDACTED]")
}

// debugLoggingRequested checks if HTTP debug logging should be enabled.
//
// Either VENUS_DEBUG=true (client-specific) or DEBUG=true (general) turns it
// on. Values are case-sensitive.
func debugLoggingRequested() bool {
	return os.Getenv("VENUS_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
