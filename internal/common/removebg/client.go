// Package removebg strips the background from brand logos.
package removebg

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"juriscontent-workers/internal/assets"
	"juriscontent-workers/internal/common/errors"
	httpclient "juriscontent-workers/internal/common/http"
	"juriscontent-workers/internal/common/metrics"
)

const Service = "background-removal"

// Result holds the cut-out logo as a bare base64 PNG.
type Result struct {
	Logo     string
	MIMEType string
}

type Client struct {
	http     *httpclient.Client
	endpoint string
	apiKey   string
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		http:     httpclient.NewClient(Service, timeout).WithHeader("X-Api-Key", apiKey),
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// Remove sends logo (bare base64 or data URI) to the service and returns
// the transparent PNG it produced.
func (c *Client) Remove(ctx context.Context, logo string) (*Result, error) {
	if c.apiKey == "" {
		return nil, &errors.UpstreamError{Service: Service, Status: http.StatusUnauthorized, Message: "api key not configured"}
	}

	payload := strings.TrimSpace(assets.StripDataPrefix(logo))
	if payload == "" {
		return nil, errors.NewInvalidInputError("logo is empty")
	}

	form := url.Values{}
	form.Set("image_file_b64", payload)
	form.Set("size", "auto")
	form.Set("format", "png")

	body, err := c.http.PostForm(ctx, c.endpoint, form)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(Service, "error").Inc()
		return nil, err
	}
	if len(body) == 0 {
		metrics.UpstreamRequests.WithLabelValues(Service, "rejected").Inc()
		return nil, &errors.UpstreamError{Service: Service, Status: http.StatusBadGateway, Message: "empty image"}
	}

	metrics.UpstreamRequests.WithLabelValues(Service, "ok").Inc()
	return &Result{
		Logo:     base64.StdEncoding.EncodeToString(body),
		MIMEType: "image/png",
	}, nil
}
