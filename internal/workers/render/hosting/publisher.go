// Package hosting uploads finished renders and records where they went.
package hosting

import (
	"context"

	"juriscontent-workers/internal/common/logger"
	"juriscontent-workers/internal/models"
)

type Uploader interface {
	Upload(ctx context.Context, folder string, data []byte, contentType string) (string, error)
}

type HistoryRecorder interface {
	Record(ctx context.Context, r models.RenderRecord) (models.RenderRecord, error)
}

type EventPublisher interface {
	PublishRenderCompleted(ctx context.Context, event models.RenderEvent) error
}

// Publisher uploads an image, then records it and announces it. Only the
// upload can fail the caller; history and events are best effort and may
// be nil.
type Publisher struct {
	uploader Uploader
	history  HistoryRecorder
	events   EventPublisher
	logger   logger.Logger
}

func NewPublisher(uploader Uploader, history HistoryRecorder, events EventPublisher, log logger.Logger) *Publisher {
	return &Publisher{
		uploader: uploader,
		history:  history,
		events:   events,
		logger:   log,
	}
}

func (p *Publisher) Publish(ctx context.Context, folder string, data []byte, contentType string, record models.RenderRecord) (models.RenderRecord, error) {
	url, err := p.uploader.Upload(ctx, folder, data, contentType)
	if err != nil {
		return record, err
	}
	record.ImageURL = url

	if p.history != nil {
		stored, err := p.history.Record(ctx, record)
		if err != nil {
			p.logger.Warn("render history not recorded", map[string]interface{}{
				"imageUrl": url,
				"error":    err.Error(),
			})
		} else {
			record = stored
		}
	}

	if p.events != nil {
		if err := p.events.PublishRenderCompleted(ctx, models.NewRenderEvent(record)); err != nil {
			p.logger.Warn("render event not published", map[string]interface{}{
				"imageUrl": url,
				"error":    err.Error(),
			})
		}
	}

	return record, nil
}
