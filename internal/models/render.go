package models

import "time"

type RenderKind string

const (
	RenderKindFeed    RenderKind = "feed"
	RenderKindStory   RenderKind = "story"
	RenderKindAIStory RenderKind = "ai-story"
)

// RenderRecord is one hosted image, as kept in render_records.
type RenderRecord struct {
	ID         string     `json:"id"`
	Kind       RenderKind `json:"kind"`
	Template   string     `json:"template"`
	Format     string     `json:"format,omitempty"`
	Palette    string     `json:"palette,omitempty"`
	ImageURL   string     `json:"imageUrl"`
	ProcessKey int64      `json:"processInstanceKey,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// RenderEvent is published once an image has been hosted.
type RenderEvent struct {
	Type       string     `json:"type"`
	RecordID   string     `json:"recordId"`
	Kind       RenderKind `json:"kind"`
	Template   string     `json:"template"`
	ImageURL   string     `json:"imageUrl"`
	OccurredAt time.Time  `json:"occurredAt"`
}

const RenderCompletedEvent = "render.completed"

func NewRenderEvent(r RenderRecord) RenderEvent {
	return RenderEvent{
		Type:       RenderCompletedEvent,
		RecordID:   r.ID,
		Kind:       r.Kind,
		Template:   r.Template,
		ImageURL:   r.ImageURL,
		OccurredAt: r.CreatedAt,
	}
}

// TrendingTopic is one suggested theme for the day's content.
type TrendingTopic struct {
	Theme       string `json:"theme"`
	Description string `json:"description,omitempty"`
	Area        string `json:"area,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// TrendingTopics is the daily trending record. SourceDate is whatever date
// the producer attached; UpdatedAt is when the record was stored.
type TrendingTopics struct {
	Topics     []TrendingTopic `json:"topics"`
	SourceDate string          `json:"sourceDate,omitempty"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	IsFallback bool            `json:"isFallback"`
}
