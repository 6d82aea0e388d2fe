package generateaistory

import (
	"context"

	"juriscontent-workers/internal/common/automation"
	"juriscontent-workers/internal/models"
)

type Input struct {
	Text          string                 `json:"text,omitempty"`
	Theme         string                 `json:"theme,omitempty"`
	Area          string                 `json:"area,omitempty"`
	Template      string                 `json:"template,omitempty"`
	VisualProfile map[string]interface{} `json:"visualProfile,omitempty"`
	LawyerName    string                 `json:"lawyerName,omitempty"`
	Registration  string                 `json:"registration,omitempty"`
	Phone         string                 `json:"phone,omitempty"`
	Instagram     string                 `json:"instagram,omitempty"`

	ProcessKey int64 `json:"-"`
}

type Output struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	RecordID string `json:"renderRecordId,omitempty"`
	Template string `json:"template"`
}

type StoryGenerator interface {
	GenerateStory(ctx context.Context, req automation.StoryRequest) (string, error)
}

// AssetFetcher resolves the generated image, which may come back inline
// or as a URL.
type AssetFetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, folder string, data []byte, contentType string, record models.RenderRecord) (models.RenderRecord, error)
}

type Dependencies struct {
	Generator StoryGenerator
	Fetcher   AssetFetcher
	Publisher Publisher
}
