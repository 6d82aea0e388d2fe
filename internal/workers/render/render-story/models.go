package renderstory

import (
	"context"

	"juriscontent-workers/internal/common/storyrender"
	"juriscontent-workers/internal/models"
)

// Colors applied when the visual profile leaves them out.
const (
	DefaultPrimaryColor    = "#1e3a5f"
	DefaultSecondaryColor  = "#d4af37"
	DefaultBackgroundColor = "#0d1b2a"
)

type VisualProfile struct {
	PrimaryColor    string `json:"primaryColor,omitempty"`
	SecondaryColor  string `json:"secondaryColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

type Input struct {
	Template      string         `json:"template"`
	Content       interface{}    `json:"content,omitempty"`
	Text          string         `json:"text,omitempty"`
	Theme         string         `json:"theme,omitempty"`
	Area          string         `json:"area,omitempty"`
	VisualProfile *VisualProfile `json:"visualProfile,omitempty"`
	LawyerName    string         `json:"lawyerName,omitempty"`
	Registration  string         `json:"registration,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Instagram     string         `json:"instagram,omitempty"`
	Logo          string         `json:"logo,omitempty"`

	ProcessKey int64 `json:"-"`
}

type Output struct {
	Success      bool   `json:"success"`
	ImageURL     string `json:"imageUrl"`
	RecordID     string `json:"renderRecordId,omitempty"`
	Template     string `json:"template"`
	RenderTimeMs int64  `json:"renderTimeMs"`
}

type StoryRenderer interface {
	Render(ctx context.Context, req storyrender.Request) (*storyrender.Image, error)
}

type Publisher interface {
	Publish(ctx context.Context, folder string, data []byte, contentType string, record models.RenderRecord) (models.RenderRecord, error)
}

type Dependencies struct {
	Renderer  StoryRenderer
	Publisher Publisher
}
