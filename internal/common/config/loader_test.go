package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
app:
  name: juriscontent-workers
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: juriscontent
    user: worker
  redis:
    address: localhost:6379
storage:
  s3:
    bucket: ${TEST_ASSETS_BUCKET}
render:
  default_palette: modern
workers:
  compose-feed-image:
    enabled: true
    max_jobs_active: 2
  render-story:
    enabled: false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_ASSETS_BUCKET", "legal-assets")
	t.Setenv("STORY_RENDERER_URL", "http://renderer:3000/render")

	cfg, err := LoadFromFile(writeConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, "legal-assets", cfg.Storage.S3.Bucket)
	assert.Equal(t, "http://renderer:3000/render", cfg.Collaborators.StoryRenderer.URL)

	assert.Equal(t, "modern", cfg.Render.DefaultPalette)
	assert.Equal(t, "square", cfg.Render.DefaultFormat)
	assert.Equal(t, 95, cfg.Render.JPEGQuality)
	assert.Equal(t, "legal-feed", cfg.Render.FeedFolder)
	assert.Equal(t, "legal-stories", cfg.Render.StoryFolder)
	assert.Equal(t, 3, cfg.Trending.MaxTopics)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, 8080, cfg.Server.Port)

	compose := GetWorkerConfig(cfg, "compose-feed-image")
	assert.Equal(t, 2, compose.MaxJobsActive)
	assert.Equal(t, 30000, compose.Timeout)

	assert.False(t, IsWorkerEnabled(cfg, "render-story"))
	assert.True(t, IsWorkerEnabled(cfg, "get-trending-topics"))
	assert.Equal(t, 5, GetWorkerConfig(cfg, "get-trending-topics").MaxJobsActive)
}

func TestLoadFromFile_MissingBucket(t *testing.T) {
	t.Setenv("TEST_ASSETS_BUCKET", "")
	t.Setenv("ASSETS_BUCKET", "")

	_, err := LoadFromFile(writeConfig(t, baseYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.s3.bucket")
}

func TestLoadFromFile_BucketFromEnvFallback(t *testing.T) {
	t.Setenv("TEST_ASSETS_BUCKET", "")
	t.Setenv("ASSETS_BUCKET", "fallback-bucket")

	cfg, err := LoadFromFile(writeConfig(t, baseYAML))
	require.NoError(t, err)
	assert.Equal(t, "fallback-bucket", cfg.Storage.S3.Bucket)
}

func TestValidateConfig_SNSNeedsTopic(t *testing.T) {
	cfg := &Config{}
	cfg.Camunda.BrokerAddress = "x"
	cfg.Database.Postgres.Host = "x"
	cfg.Database.Postgres.Database = "x"
	cfg.Database.Postgres.User = "x"
	cfg.Database.Redis.Address = "x"
	cfg.Storage.S3.Bucket = "x"
	cfg.Render.JPEGQuality = 95
	cfg.Notifications.SNS.Enabled = true

	assert.Error(t, validateConfig(cfg))

	cfg.Notifications.SNS.TopicARN = "arn:aws:sns:us-east-1:000000000000:render-events"
	assert.NoError(t, validateConfig(cfg))
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "1.5s", GetDuration(1500).String())
}
