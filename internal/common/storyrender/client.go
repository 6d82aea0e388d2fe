// Package storyrender calls the headless story renderer, which turns a
// template id and a resolved field set into a finished image.
package storyrender

import (
	"context"
	"net/http"
	"strings"
	"time"

	"juriscontent-workers/internal/assets"
	"juriscontent-workers/internal/common/errors"
	httpclient "juriscontent-workers/internal/common/http"
	"juriscontent-workers/internal/common/metrics"
)

const Service = "story-renderer"

type Request struct {
	Template string                 `json:"template"`
	Data     map[string]interface{} `json:"data"`
}

type response struct {
	Success      bool   `json:"success"`
	Image        string `json:"image"`
	RenderTimeMs int64  `json:"renderTimeMs"`
	Error        string `json:"error"`
}

// Image is a rendered story ready for upload.
type Image struct {
	Data       []byte
	MIMEType   string
	RenderTime time.Duration
}

type Client struct {
	http     *httpclient.Client
	endpoint string
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		http:     httpclient.NewClient(Service, timeout),
		endpoint: endpoint,
	}
}

// Render posts req and decodes the returned image. A response without
// success or without an image is reported as an UpstreamError.
func (c *Client) Render(ctx context.Context, req Request) (*Image, error) {
	var resp response
	if err := c.http.PostJSON(ctx, c.endpoint, req, &resp); err != nil {
		metrics.UpstreamRequests.WithLabelValues(Service, "error").Inc()
		return nil, err
	}

	if !resp.Success || strings.TrimSpace(resp.Image) == "" {
		metrics.UpstreamRequests.WithLabelValues(Service, "rejected").Inc()
		msg := resp.Error
		if msg == "" {
			msg = "renderer returned no image"
		}
		return nil, &errors.UpstreamError{Service: Service, Status: http.StatusBadGateway, Message: msg}
	}

	img, err := DecodeImage(resp.Image)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(Service, "rejected").Inc()
		return nil, err
	}
	img.RenderTime = time.Duration(resp.RenderTimeMs) * time.Millisecond

	metrics.UpstreamRequests.WithLabelValues(Service, "ok").Inc()
	return img, nil
}

// DecodeImage accepts a base64 data URI or a bare base64 PNG payload.
func DecodeImage(payload string) (*Image, error) {
	mime, data, err := assets.ParseDataURI(assets.NormalizeLogo(payload))
	if err != nil {
		return nil, err
	}
	return &Image{Data: data, MIMEType: mime}, nil
}
