package errors

import (
	"github.com/go-resty/resty/v2"
)

// FromResponse builds an *APIError from a completed resty response.
// It returns nil for 2xx responses.
func FromResponse(op string, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	apiErr := &APIError{
		Op:         op,
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       resp.Body(),
	}
	if req := resp.Request; req != nil {
		apiErr.Method = req.Method
		apiErr.URL = req.URL
		if req.RawRequest != nil && req.RawRequest.URL != nil {
			apiErr.URL = req.RawRequest.URL.String()
		}
	}
	return apiErr
}
