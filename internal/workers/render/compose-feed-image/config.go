package composefeedimage

import (
	"fmt"
	"time"

	"juriscontent-workers/internal/common/config"
)

type Config struct {
	Enabled        bool
	MaxJobsActive  int
	Timeout        time.Duration
	Folder         string
	DefaultFormat  string
	DefaultPalette string
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		MaxJobsActive:  4,
		Timeout:        60 * time.Second,
		Folder:         "legal-feed",
		DefaultFormat:  "square",
		DefaultPalette: "classic",
	}
}

func NewConfig(app *config.Config) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	if w, ok := app.Workers[TaskType]; ok {
		cfg.Enabled = w.Enabled
		if w.MaxJobsActive > 0 {
			cfg.MaxJobsActive = w.MaxJobsActive
		}
		if w.Timeout > 0 {
			cfg.Timeout = config.GetDuration(w.Timeout)
		}
	}
	if app.Render.FeedFolder != "" {
		cfg.Folder = app.Render.FeedFolder
	}
	if app.Render.DefaultFormat != "" {
		cfg.DefaultFormat = app.Render.DefaultFormat
	}
	if app.Render.DefaultPalette != "" {
		cfg.DefaultPalette = app.Render.DefaultPalette
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Folder == "" {
		return fmt.Errorf("folder is required")
	}
	return nil
}
