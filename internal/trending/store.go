// Package trending keeps the daily list of suggested legal topics.
package trending

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"juriscontent-workers/internal/common/errors"
	"juriscontent-workers/internal/common/validation"
	"juriscontent-workers/internal/models"
)

const (
	DefaultKey       = "trending:topics"
	DefaultMaxTopics = 3

	// records older than a day are ignored on read anyway
	recordTTL = 48 * time.Hour
)

// PayloadSchema describes the variables a producer sends when storing
// topics. Both the Portuguese and English topic keys are accepted.
var PayloadSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"trending"},
	"properties": map[string]interface{}{
		"trending": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type": "object",
				"anyOf": []interface{}{
					map[string]interface{}{"required": []interface{}{"tema"}},
					map[string]interface{}{"required": []interface{}{"theme"}},
				},
				"properties": map[string]interface{}{
					"tema":      map[string]interface{}{"type": "string", "minLength": 1},
					"theme":     map[string]interface{}{"type": "string", "minLength": 1},
					"descricao": map[string]interface{}{"type": "string"},
					"area":      map[string]interface{}{"type": "string"},
					"icone":     map[string]interface{}{"type": "string"},
				},
			},
		},
		"dataAtualizacao": map[string]interface{}{"type": "string"},
	},
}

var fallbackTopics = []models.TrendingTopic{
	{Theme: "Consumer Rights in 2025", Description: "New rules for online shopping", Area: "Consumer Law", Icon: "🛒"},
	{Theme: "Labor Reform", Description: "Impacts on employment relationships", Area: "Labor Law", Icon: "💼"},
	{Theme: "LGPD and Data Protection", Description: "Fines and corporate compliance", Area: "Digital Law", Icon: "🔐"},
}

type Store struct {
	client    redis.Cmdable
	key       string
	maxTopics int
	now       func() time.Time
}

func NewStore(client redis.Cmdable, key string, maxTopics int) *Store {
	if key == "" {
		key = DefaultKey
	}
	if maxTopics <= 0 {
		maxTopics = DefaultMaxTopics
	}
	return &Store{
		client:    client,
		key:       key,
		maxTopics: maxTopics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ValidatePayload checks raw job variables against PayloadSchema.
func ValidatePayload(vars map[string]interface{}) error {
	result, err := validation.ValidateDocument(vars, PayloadSchema)
	if err != nil {
		return errors.NewInvalidInputError(err.Error())
	}
	if !result.Valid {
		return errors.NewInvalidInputError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}

// ParseTopics converts producer objects into topics, skipping entries
// without a theme.
func ParseTopics(raw []map[string]interface{}) []models.TrendingTopic {
	topics := make([]models.TrendingTopic, 0, len(raw))
	for _, item := range raw {
		topic := models.TrendingTopic{
			Theme:       firstString(item, "tema", "theme"),
			Description: firstString(item, "descricao", "description"),
			Area:        firstString(item, "area"),
			Icon:        firstString(item, "icone", "icon"),
		}
		if topic.Theme == "" {
			continue
		}
		topics = append(topics, topic)
	}
	return topics
}

// Save keeps the first maxTopics topics and stamps the record with the
// current time.
func (s *Store) Save(ctx context.Context, topics []models.TrendingTopic, sourceDate string) (models.TrendingTopics, error) {
	if len(topics) > s.maxTopics {
		topics = topics[:s.maxTopics]
	}

	record := models.TrendingTopics{
		Topics:     topics,
		SourceDate: sourceDate,
		UpdatedAt:  s.now(),
	}

	body, err := json.Marshal(record)
	if err != nil {
		return record, errors.NewTrendingStoreError(fmt.Errorf("marshal record: %w", err))
	}

	if err := s.client.Set(ctx, s.key, body, recordTTL).Err(); err != nil {
		return record, errors.NewTrendingStoreError(err)
	}
	return record, nil
}

// Current returns the stored record when it was updated today (UTC).
// Otherwise it returns the fallback list with IsFallback set.
func (s *Store) Current(ctx context.Context) (models.TrendingTopics, error) {
	now := s.now()

	body, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return Fallback(now), nil
		}
		return Fallback(now), errors.NewCacheUnavailableError(err)
	}

	var record models.TrendingTopics
	if err := json.Unmarshal(body, &record); err != nil {
		return Fallback(now), nil
	}

	if !sameDay(record.UpdatedAt, now) || len(record.Topics) == 0 {
		return Fallback(now), nil
	}
	return record, nil
}

// Fallback is the static topic list served when no fresh record exists.
func Fallback(now time.Time) models.TrendingTopics {
	topics := make([]models.TrendingTopic, len(fallbackTopics))
	copy(topics, fallbackTopics)
	return models.TrendingTopics{
		Topics:     topics,
		UpdatedAt:  now,
		IsFallback: true,
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
