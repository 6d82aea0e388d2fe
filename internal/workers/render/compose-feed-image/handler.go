package composefeedimage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"juriscontent-workers/internal/assets"
	"juriscontent-workers/internal/common/errors"
	"juriscontent-workers/internal/common/logger"
	"juriscontent-workers/internal/common/metrics"
	"juriscontent-workers/internal/common/validation"
	"juriscontent-workers/internal/content"
	"juriscontent-workers/internal/models"
	"juriscontent-workers/internal/render"
)

const TaskType = "compose-feed-image"

// plainTemplate labels feed renders requested without a template.
const plainTemplate = "plain"

type Handler struct {
	config *Config
	deps   Dependencies
	logger logger.Logger
	errors *errors.ErrorHandler
}

func NewHandler(cfg *Config, deps Dependencies, log logger.Logger) *Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: cfg,
		deps:   deps,
		logger: l,
		errors: errors.NewErrorHandler(l),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"workflowKey": job.GetProcessInstanceKey(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(client, job, err)
		return
	}
	input.ProcessKey = job.GetProcessInstanceKey()

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	vars, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("parse variables: %v", err))
	}

	if result := validation.ValidateInput(vars, GetInputSchema()); !result.Valid {
		return nil, errors.NewInvalidInputError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(job.GetVariables()), &input); err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("decode input: %v", err))
	}
	return &input, nil
}

// Execute fetches the base photo, composes the feed image and hosts it.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.ImageURL) == "" {
		return nil, errors.NewInvalidInputError("imageUrl is required")
	}

	base, err := h.deps.Fetcher.Fetch(ctx, input.ImageURL)
	if err != nil {
		return nil, err
	}

	req, template := h.buildRequest(ctx, input, base)

	jpeg, err := h.deps.Composer.Compose(ctx, req)
	if err != nil {
		return nil, err
	}

	record, err := h.deps.Publisher.Publish(ctx, h.config.Folder, jpeg, "image/jpeg", models.RenderRecord{
		Kind:       models.RenderKindFeed,
		Template:   template,
		Format:     req.Format.Name,
		Palette:    req.Palette.Name,
		ProcessKey: input.ProcessKey,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("feed image hosted", map[string]interface{}{
		"imageUrl": record.ImageURL,
		"template": template,
		"format":   req.Format.Name,
		"bytes":    len(jpeg),
	})

	return &Output{
		Success:  true,
		ImageURL: record.ImageURL,
		RecordID: record.ID,
		Template: template,
		Format:   req.Format.Name,
		Palette:  req.Palette.Name,
	}, nil
}

// buildRequest maps the job input onto a render request. Without a
// template the header shows the theme as given.
func (h *Handler) buildRequest(ctx context.Context, input *Input, base []byte) (render.Request, string) {
	req := render.Request{
		BaseImage: base,
		AreaLabel: input.Area,
		Format:    render.ResolveFormat(firstNonEmpty(input.Format, h.config.DefaultFormat)),
		Palette:   render.ResolvePalette(firstNonEmpty(input.Style, h.config.DefaultPalette)),
		Branding: content.Branding{
			Name:         input.LawyerName,
			Registration: input.Registration,
			Logo:         h.resolveLogo(ctx, input.Logo),
		},
	}

	raw := content.DecodeRaw(input.Content)

	template := plainTemplate
	if strings.TrimSpace(input.Template) == "" {
		req.Headline = input.Theme
	} else {
		id := content.ParseTemplate(input.Template)
		req.Fields = content.Normalize(id, raw, input.Text, input.Theme).Fields()
		template = id.String()
	}

	switch {
	case input.Bullets != nil:
		req.Bullets = content.ResolveBullets(input.Bullets)
	case len(req.Fields.Bullets) == 0:
		req.Bullets = contentBullets(raw)
	}
	return req, template
}

// contentBullets reads the bullets sequence carried inside content, or
// nil when there is none.
func contentBullets(raw interface{}) []string {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	seq, ok := m["bullets"].([]interface{})
	if !ok {
		return nil
	}
	return content.ResolveBullets(seq)
}

// resolveLogo turns a logo URL into a data URI so the engine only ever
// sees inline payloads. A logo that cannot be fetched is dropped.
func (h *Handler) resolveLogo(ctx context.Context, logo string) string {
	logo = strings.TrimSpace(logo)
	if !strings.HasPrefix(logo, "http://") && !strings.HasPrefix(logo, "https://") {
		return logo
	}

	data, err := h.deps.Fetcher.Fetch(ctx, logo)
	if err != nil {
		metrics.LogoFailures.Inc()
		h.logger.Warn("logo could not be fetched, rendering without badge", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	return assets.EncodeDataURI(http.DetectContentType(data), data)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	stdErr := h.errors.HandleJobError(context.Background(), client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
