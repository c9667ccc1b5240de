package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"

	apierrors "github.com/42tr/venus/client/internal/errors"
)

// Every function in this package maps one domain call onto one HTTP call
// through the shared resty client. The base URL, default headers and bearer
// token are the transport's concern; nothing here retries or interprets a
// failure status.

// segment escapes a single path element such as a project or image ID.
func segment(id string) string { return url.PathEscape(id) }

// newRequest returns a request bound to ctx, or ctx's error when it is
// already done.
func newRequest(ctx context.Context, rc *resty.Client) (*resty.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rc.R().SetContext(ctx), nil
}

// finish turns a resty result into either a transport error (returned as is),
// an *APIError for non-2xx statuses, or nil.
func finish(op string, resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	return apierrors.FromResponse(op, resp)
}

// decode unmarshals a success body into out.
func decode(op string, resp *resty.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
