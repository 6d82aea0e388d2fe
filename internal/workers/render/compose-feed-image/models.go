package composefeedimage

import (
	"context"

	"juriscontent-workers/internal/models"
	"juriscontent-workers/internal/render"
)

type Input struct {
	ImageURL     string        `json:"imageUrl"`
	Theme        string        `json:"theme,omitempty"`
	Area         string        `json:"area,omitempty"`
	Template     string        `json:"template,omitempty"`
	Content      interface{}   `json:"content,omitempty"`
	Text         string        `json:"text,omitempty"`
	Bullets      []interface{} `json:"bullets,omitempty"`
	Format       string        `json:"format,omitempty"`
	Style        string        `json:"style,omitempty"`
	LawyerName   string        `json:"lawyerName,omitempty"`
	Registration string        `json:"registration,omitempty"`
	Logo         string        `json:"logo,omitempty"`

	ProcessKey int64 `json:"-"`
}

type Output struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	RecordID string `json:"renderRecordId,omitempty"`
	Template string `json:"template"`
	Format   string `json:"format"`
	Palette  string `json:"palette"`
}

type AssetFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

type Composer interface {
	Compose(ctx context.Context, req render.Request) ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, folder string, data []byte, contentType string, record models.RenderRecord) (models.RenderRecord, error)
}

type Dependencies struct {
	Fetcher   AssetFetcher
	Composer  Composer
	Publisher Publisher
}
