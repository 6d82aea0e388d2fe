package renderstory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"juriscontent-workers/internal/common/errors"
	"juriscontent-workers/internal/common/logger"
	"juriscontent-workers/internal/common/metrics"
	"juriscontent-workers/internal/common/storyrender"
	"juriscontent-workers/internal/common/validation"
	"juriscontent-workers/internal/content"
	"juriscontent-workers/internal/models"
)

const TaskType = "render-story"

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

// Execute normalizes the content, has the story renderer draw it and hosts
// the result.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.Template) == "" {
		return nil, errors.NewInvalidInputError("template is required")
	}

	template := storyTemplate(input.Template)
	fs := content.Normalize(content.ParseTemplate(input.Template), content.DecodeRaw(input.Content), input.Text, input.Theme)

	img, err := h.deps.Renderer.Render(ctx, storyrender.Request{
		Template: template,
		Data:     BuildStoryData(input, fs),
	})
	if err != nil {
		return nil, err
	}

	record, err := h.deps.Publisher.Publish(ctx, h.config.Folder, img.Data, img.MIMEType, models.RenderRecord{
		Kind:       models.RenderKindStory,
		Template:   template,
		Format:     "story",
		ProcessKey: input.ProcessKey,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("story hosted", map[string]interface{}{
		"imageUrl":     record.ImageURL,
		"template":     template,
		"renderTimeMs": img.RenderTime.Milliseconds(),
	})

	return &Output{
		Success:      true,
		ImageURL:     record.ImageURL,
		RecordID:     record.ID,
		Template:     template,
		RenderTimeMs: img.RenderTime.Milliseconds(),
	}, nil
}

// BuildStoryData merges branding, colors and the normalized fields into
// the renderer's data object. Normalized fields win on key clashes.
func BuildStoryData(input *Input, fs content.FieldSet) map[string]interface{} {
	profile := VisualProfile{}
	if input.VisualProfile != nil {
		profile = *input.VisualProfile
	}

	data := map[string]interface{}{
		"primaryColor":    orDefault(profile.PrimaryColor, DefaultPrimaryColor),
		"secondaryColor":  orDefault(profile.SecondaryColor, DefaultSecondaryColor),
		"backgroundColor": orDefault(profile.BackgroundColor, DefaultBackgroundColor),
		"lawyerName":      input.LawyerName,
		"registration":    input.Registration,
		"phone":           input.Phone,
		"instagram":       input.Instagram,
		"initials":        content.Initials(input.LawyerName),
		"area":            input.Area,
		"theme":           input.Theme,
		"logo":            input.Logo,
	}
	for k, v := range fs.Payload() {
		data[k] = v
	}
	return data
}

// storyTemplate sends known templates under their canonical id and passes
// anything else through for the renderer to resolve.
func storyTemplate(raw string) string {
	if id := content.ParseTemplate(raw); id.Known() {
		return string(id)
	}
	return strings.TrimSpace(raw)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
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
