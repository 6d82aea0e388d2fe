package storetrendingtopics

import (
	"context"
	"time"

	"juriscontent-workers/internal/models"
)

// Input mirrors the producer payload. Topic objects are kept raw so both
// the Portuguese and English keys can be read.
type Input struct {
	Trending   []map[string]interface{} `json:"trending"`
	SourceDate string                   `json:"dataAtualizacao"`
}

type Output struct {
	Success   bool                   `json:"success"`
	Topics    []models.TrendingTopic `json:"topics"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type TopicStore interface {
	Save(ctx context.Context, topics []models.TrendingTopic, sourceDate string) (models.TrendingTopics, error)
}
