package trending

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"juriscontent-workers/internal/common/errors"
	"juriscontent-workers/internal/models"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, "", 0), mr
}

func topics(n int) []models.TrendingTopic {
	out := make([]models.TrendingTopic, n)
	for i := range out {
		out[i] = models.TrendingTopic{Theme: string(rune('A' + i))}
	}
	return out
}

func TestStore_SaveKeepsThreeTopics(t *testing.T) {
	store, mr := newTestStore(t)
	fixed := time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	record, err := store.Save(context.Background(), topics(5), "2025-05-02")
	require.NoError(t, err)
	assert.Len(t, record.Topics, 3)
	assert.Equal(t, "C", record.Topics[2].Theme)
	assert.Equal(t, fixed, record.UpdatedAt)
	assert.True(t, mr.Exists(DefaultKey))

	current, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.False(t, current.IsFallback)
	assert.Equal(t, "2025-05-02", current.SourceDate)
	assert.Len(t, current.Topics, 3)
}

func TestStore_CurrentFallbacks(t *testing.T) {
	t.Run("nothing stored", func(t *testing.T) {
		store, _ := newTestStore(t)

		current, err := store.Current(context.Background())
		require.NoError(t, err)
		assert.True(t, current.IsFallback)
		require.Len(t, current.Topics, 3)
		assert.Equal(t, "Consumer Rights in 2025", current.Topics[0].Theme)
		assert.Equal(t, "Digital Law", current.Topics[2].Area)
	})

	t.Run("stored yesterday", func(t *testing.T) {
		store, _ := newTestStore(t)
		yesterday := time.Date(2025, 5, 1, 23, 59, 0, 0, time.UTC)
		store.now = func() time.Time { return yesterday }
		_, err := store.Save(context.Background(), topics(2), "")
		require.NoError(t, err)

		store.now = func() time.Time { return yesterday.Add(2 * time.Minute) }
		current, err := store.Current(context.Background())
		require.NoError(t, err)
		assert.True(t, current.IsFallback)
	})

	t.Run("corrupt record", func(t *testing.T) {
		store, mr := newTestStore(t)
		require.NoError(t, mr.Set(DefaultKey, "not json"))

		current, err := store.Current(context.Background())
		require.NoError(t, err)
		assert.True(t, current.IsFallback)
	})
}

func TestStore_RedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewStore(client, "", 0)
	mr.Close()

	_, err = store.Save(context.Background(), topics(1), "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTrendingStoreError, errors.AsStandardError(err).Code)

	current, err := store.Current(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCacheUnavailable, errors.AsStandardError(err).Code)
	assert.True(t, current.IsFallback)
}

func TestStore_CommandErrors(t *testing.T) {
	fixed := time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)

	t.Run("set rejected", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		store := NewStore(client, "", 0)
		store.now = func() time.Time { return fixed }

		body, err := json.Marshal(models.TrendingTopics{Topics: topics(1), SourceDate: "2025-05-02", UpdatedAt: fixed})
		require.NoError(t, err)
		redisMock.ExpectSet(DefaultKey, body, recordTTL).SetErr(stderrors.New("READONLY You can't write against a read only replica"))

		_, err = store.Save(context.Background(), topics(1), "2025-05-02")
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeTrendingStoreError, errors.AsStandardError(err).Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("get fails", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		store := NewStore(client, "", 0)
		store.now = func() time.Time { return fixed }

		redisMock.ExpectGet(DefaultKey).SetErr(stderrors.New("LOADING Redis is loading the dataset in memory"))

		current, err := store.Current(context.Background())
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeCacheUnavailable, errors.AsStandardError(err).Code)
		assert.True(t, current.IsFallback)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("get hit", func(t *testing.T) {
		client, redisMock := redismock.NewClientMock()
		store := NewStore(client, "custom:key", 0)
		store.now = func() time.Time { return fixed.Add(time.Hour) }

		body, err := json.Marshal(models.TrendingTopics{Topics: topics(2), UpdatedAt: fixed})
		require.NoError(t, err)
		redisMock.ExpectGet("custom:key").SetVal(string(body))

		current, err := store.Current(context.Background())
		require.NoError(t, err)
		assert.False(t, current.IsFallback)
		assert.Len(t, current.Topics, 2)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestFallbackIsACopy(t *testing.T) {
	first := Fallback(time.Now())
	first.Topics[0].Theme = "changed"
	assert.Equal(t, "Consumer Rights in 2025", Fallback(time.Now()).Topics[0].Theme)
}

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name  string
		vars  map[string]interface{}
		valid bool
	}{
		{
			name: "portuguese keys",
			vars: map[string]interface{}{
				"trending": []interface{}{
					map[string]interface{}{"tema": "Reforma", "area": "Trabalhista"},
				},
				"dataAtualizacao": "2025-05-02",
			},
			valid: true,
		},
		{
			name: "english keys",
			vars: map[string]interface{}{
				"trending": []interface{}{map[string]interface{}{"theme": "Tenant rights"}},
			},
			valid: true,
		},
		{
			name:  "missing list",
			vars:  map[string]interface{}{},
			valid: false,
		},
		{
			name:  "empty list",
			vars:  map[string]interface{}{"trending": []interface{}{}},
			valid: false,
		},
		{
			name: "topic without theme",
			vars: map[string]interface{}{
				"trending": []interface{}{map[string]interface{}{"area": "Civil"}},
			},
			valid: false,
		},
		{
			name:  "strings instead of objects",
			vars:  map[string]interface{}{"trending": []interface{}{"Reforma"}},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(tt.vars)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidInput, errors.AsStandardError(err).Code)
		})
	}
}

func TestParseTopics(t *testing.T) {
	parsed := ParseTopics([]map[string]interface{}{
		{"tema": "Reforma Trabalhista", "descricao": "Impactos", "area": "Trabalhista", "icone": "💼"},
		{"theme": "Tenant rights", "description": "Deposits"},
		{"area": "no theme"},
		{"tema": "   "},
	})

	require.Len(t, parsed, 2)
	assert.Equal(t, models.TrendingTopic{Theme: "Reforma Trabalhista", Description: "Impactos", Area: "Trabalhista", Icon: "💼"}, parsed[0])
	assert.Equal(t, "Deposits", parsed[1].Description)
}
