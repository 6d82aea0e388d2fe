// Package automation calls named webhooks on the low-code automation host
// that generates post copy and AI stories.
package automation

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"juriscontent-workers/internal/common/errors"
	httpclient "juriscontent-workers/internal/common/http"
	"juriscontent-workers/internal/common/metrics"
)

const Service = "automation"

type Client struct {
	http           *httpclient.Client
	baseURL        string
	contentWebhook string
	storyWebhook   string
}

type Options struct {
	BaseURL        string
	ContentWebhook string
	StoryWebhook   string
	Timeout        time.Duration
}

func NewClient(opts Options) *Client {
	return &Client{
		http:           httpclient.NewClient(Service, opts.Timeout),
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		contentWebhook: opts.ContentWebhook,
		storyWebhook:   opts.StoryWebhook,
	}
}

// WebhookURL returns the endpoint for a named webhook.
func (c *Client) WebhookURL(name string) string {
	return c.baseURL + "/webhook/" + url.PathEscape(strings.Trim(name, "/"))
}

// Call posts payload to the named webhook and decodes the reply into out.
func (c *Client) Call(ctx context.Context, webhook string, payload, out interface{}) error {
	if c.baseURL == "" {
		return &errors.UpstreamError{Service: Service, Status: http.StatusServiceUnavailable, Message: "automation base url not configured"}
	}

	if err := c.http.PostJSON(ctx, c.WebhookURL(webhook), payload, out); err != nil {
		metrics.UpstreamRequests.WithLabelValues(Service, "error").Inc()
		return err
	}
	metrics.UpstreamRequests.WithLabelValues(Service, "ok").Inc()
	return nil
}

type contentReply struct {
	Content string `json:"content"`
	Text    string `json:"texto"`
}

// GenerateContent asks the content webhook to write copy for prompt. An
// empty reply yields an empty string.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	var reply contentReply
	if err := c.Call(ctx, c.contentWebhook, map[string]string{"prompt": prompt}, &reply); err != nil {
		return "", err
	}
	if reply.Content != "" {
		return reply.Content, nil
	}
	return reply.Text, nil
}

// StoryRequest is the payload the story webhook expects.
type StoryRequest struct {
	Text          string                 `json:"texto"`
	Theme         string                 `json:"tema"`
	Area          string                 `json:"area"`
	Template      string                 `json:"template"`
	VisualProfile map[string]interface{} `json:"perfil_visual,omitempty"`
	LawyerName    string                 `json:"nome_advogado"`
	Registration  string                 `json:"oab"`
	Phone         string                 `json:"telefone"`
	Instagram     string                 `json:"instagram"`
}

type storyReply struct {
	Success bool   `json:"success"`
	Image   string `json:"image"`
	Error   string `json:"error"`
}

// GenerateStory returns the image the story webhook produced, as a data URI
// or bare base64 payload.
func (c *Client) GenerateStory(ctx context.Context, req StoryRequest) (string, error) {
	var reply storyReply
	if err := c.Call(ctx, c.storyWebhook, req, &reply); err != nil {
		return "", err
	}
	if !reply.Success || strings.TrimSpace(reply.Image) == "" {
		msg := reply.Error
		if msg == "" {
			msg = "story webhook returned no image"
		}
		return "", &errors.UpstreamError{Service: Service, Status: http.StatusBadGateway, Message: msg}
	}
	return reply.Image, nil
}
