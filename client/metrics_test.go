package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/42tr/venus/client/config"
)

func TestMetricsTransport_CountsByMethodAndCode(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		resp := okResponse(r)
		resp.StatusCode = http.StatusNoContent
		return resp, nil
	})
	c, err := New(config.Endpoints{BaseURL: "http://example.com/api"}, WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodDelete, "204"))
	if err := c.DeleteImage(context.Background(), "i1"); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
	after := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodDelete, "204"))
	if after-before != 1 {
		t.Fatalf("expected one DELETE/204 observation, got %v", after-before)
	}
}

func TestMetricsTransport_CountsTransportErrors(t *testing.T) {
	boom := errors.New("boom")
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) { return nil, boom })
	c, err := New(config.Endpoints{BaseURL: "http://example.com/api"}, WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "error"))
	if _, err := c.ListImages(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected transport error to propagate, got %v", err)
	}
	after := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "error"))
	if after-before != 1 {
		t.Fatalf("expected one GET/error observation, got %v", after-before)
	}
}
