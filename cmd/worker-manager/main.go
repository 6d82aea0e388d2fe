package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"juriscontent-workers/internal/assets"
	"juriscontent-workers/internal/common/automation"
	"juriscontent-workers/internal/common/aws"
	"juriscontent-workers/internal/common/camunda"
	"juriscontent-workers/internal/common/config"
	"juriscontent-workers/internal/common/database"
	httpclient "juriscontent-workers/internal/common/http"
	"juriscontent-workers/internal/common/logger"
	"juriscontent-workers/internal/common/observability"
	"juriscontent-workers/internal/common/removebg"
	"juriscontent-workers/internal/common/storyrender"
	"juriscontent-workers/internal/history"
	"juriscontent-workers/internal/render"
	"juriscontent-workers/internal/trending"
	"juriscontent-workers/pkg/registry"

	rb "juriscontent-workers/internal/workers/branding/remove-background"
	gc "juriscontent-workers/internal/workers/content/generate-content"
	nc "juriscontent-workers/internal/workers/content/normalize-content"
	cfi "juriscontent-workers/internal/workers/render/compose-feed-image"
	gas "juriscontent-workers/internal/workers/render/generate-ai-story"
	"juriscontent-workers/internal/workers/render/hosting"
	rs "juriscontent-workers/internal/workers/render/render-story"
	gtt "juriscontent-workers/internal/workers/trending/get-trending-topics"
	stt "juriscontent-workers/internal/workers/trending/store-trending-topics"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

type validator interface {
	Validate() error
}

func mustValid(taskType string, cfg validator, log *zap.Logger) {
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid worker configuration", zap.String("taskType", taskType), zap.Error(err))
	}
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	bootLog.Sync()

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting worker manager",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL (render history) ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()

	historyStore := history.NewStore(pg.GetDB())
	if err := historyStore.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("render history schema failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis (trending topics) ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Asset host and render events ---
	uploader, err := aws.NewS3Uploader(ctx, cfg.Storage.S3)
	if err != nil {
		zapLog.Fatal("s3 uploader failed", zap.Error(err))
	}

	var events hosting.EventPublisher
	if cfg.Notifications.SNS.Enabled {
		sns, err := aws.NewSNSPublisher(ctx, cfg.Notifications.SNS.Region, cfg.Notifications.SNS.TopicARN)
		if err != nil {
			zapLog.Fatal("sns publisher failed", zap.Error(err))
		}
		events = sns
	}
	publisher := hosting.NewPublisher(uploader, historyStore, events, log.WithFields(map[string]interface{}{"component": "hosting"}))

	// --- Collaborators ---
	engine, err := render.NewEngine(cfg.Render.JPEGQuality, log.WithFields(map[string]interface{}{"component": "render"}))
	if err != nil {
		zapLog.Fatal("render engine failed", zap.Error(err))
	}

	fetcher := assets.NewFetcher(
		httpclient.NewClient("asset-source", config.GetDuration(cfg.Render.FetchTimeout)),
		cfg.Render.MaxAssetBytes,
	)

	collab := cfg.Collaborators
	storyRenderer := storyrender.NewClient(collab.StoryRenderer.URL, config.GetDuration(collab.StoryRenderer.Timeout))
	bgRemover := removebg.NewClient(collab.BackgroundRemoval.URL, collab.BackgroundRemoval.APIKey, config.GetDuration(collab.BackgroundRemoval.Timeout))
	automationClient := automation.NewClient(automation.Options{
		BaseURL:        collab.Automation.BaseURL,
		ContentWebhook: collab.Automation.ContentWebhook,
		StoryWebhook:   collab.Automation.StoryWebhook,
		Timeout:        config.GetDuration(collab.Automation.Timeout),
	})

	topics := trending.NewStore(rdb.GetClient(), cfg.Trending.RedisKey, cfg.Trending.MaxTopics)

	zapLog.Info("all collaborator clients initialized")

	// --- Workers ---
	client := zeebe.GetClient()
	var workers []*camunda.CamundaWorker
	start := func(taskType string, handler camunda.JobHandlerFunc) {
		if w := camunda.NewWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, zapLog); w != nil {
			workers = append(workers, w)
		}
	}

	ncCfg := nc.NewConfig(cfg)
	mustValid(nc.TaskType, ncCfg, zapLog)
	start(nc.TaskType, nc.NewHandler(ncCfg, log).Handle)

	gcCfg := gc.NewConfig(cfg)
	mustValid(gc.TaskType, gcCfg, zapLog)
	start(gc.TaskType, gc.NewHandler(gcCfg, automationClient, log).Handle)

	cfiCfg := cfi.NewConfig(cfg)
	mustValid(cfi.TaskType, cfiCfg, zapLog)
	start(cfi.TaskType, cfi.NewHandler(cfiCfg, cfi.Dependencies{
		Fetcher:   fetcher,
		Composer:  engine,
		Publisher: publisher,
	}, log).Handle)

	rsCfg := rs.NewConfig(cfg)
	mustValid(rs.TaskType, rsCfg, zapLog)
	start(rs.TaskType, rs.NewHandler(rsCfg, rs.Dependencies{
		Renderer:  storyRenderer,
		Publisher: publisher,
	}, log).Handle)

	gasCfg := gas.NewConfig(cfg)
	mustValid(gas.TaskType, gasCfg, zapLog)
	start(gas.TaskType, gas.NewHandler(gasCfg, gas.Dependencies{
		Generator: automationClient,
		Fetcher:   fetcher,
		Publisher: publisher,
	}, log).Handle)

	rbCfg := rb.NewConfig(cfg)
	mustValid(rb.TaskType, rbCfg, zapLog)
	start(rb.TaskType, rb.NewHandler(rbCfg, bgRemover, log).Handle)

	sttCfg := stt.NewConfig(cfg)
	mustValid(stt.TaskType, sttCfg, zapLog)
	start(stt.TaskType, stt.NewHandler(sttCfg, topics, log).Handle)

	gttCfg := gtt.NewConfig(cfg)
	mustValid(gtt.TaskType, gttCfg, zapLog)
	start(gtt.TaskType, gtt.NewHandler(gttCfg, topics, log).Handle)

	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	checkRegistry(cfg.Registry.Path, workers, zapLog)

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"zeebe": "ok", "postgres": "ok", "redis": "ok"}
		status := http.StatusOK
		if err := zeebe.HealthCheck(ctx); err != nil {
			checks["zeebe"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := pg.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := rdb.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if status != http.StatusOK {
			writeStatus(w, status, "not ready", checks)
			return
		}
		writeStatus(w, status, "ready", checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("health/metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("health/metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, stopping workers")
	for _, w := range workers {
		w.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error stopping health server", zap.Error(err))
	}

	if err := zeebe.Close(); err != nil {
		zapLog.Error("error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("worker manager stopped")
}

// checkRegistry warns about running task types the activity registry does
// not describe. A missing registry file is not fatal.
func checkRegistry(path string, workers []*camunda.CamundaWorker, log *zap.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := reg.Validate(); err != nil {
		log.Warn("activity registry invalid", zap.String("path", path), zap.Error(err))
	}

	taskTypes := make([]string, 0, len(workers))
	for _, w := range workers {
		taskTypes = append(taskTypes, w.TaskType())
	}
	if missing := reg.MissingTaskTypes(taskTypes); len(missing) > 0 {
		log.Warn("task types missing from activity registry", zap.Strings("taskTypes", missing))
	}
}

func writeStatus(w http.ResponseWriter, code int, status string, checks map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	body := map[string]interface{}{"status": status}
	if checks != nil {
		body["checks"] = checks
	}
	json.NewEncoder(w).Encode(body)
}
