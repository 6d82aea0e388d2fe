package gettrendingtopics

import (
	"context"
	"time"

	"juriscontent-workers/internal/models"
)

type Output struct {
	Success    bool                   `json:"success"`
	Topics     []models.TrendingTopic `json:"topics"`
	UpdatedAt  time.Time              `json:"updatedAt"`
	IsFallback bool                   `json:"isFallback"`
}

type TopicReader interface {
	Current(ctx context.Context) (models.TrendingTopics, error)
}
