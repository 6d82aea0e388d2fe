package generateaistory

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"juriscontent-workers/internal/assets"
	"juriscontent-workers/internal/common/automation"
	"juriscontent-workers/internal/common/errors"
	httpclient "juriscontent-workers/internal/common/http"
	"juriscontent-workers/internal/common/logger"
	"juriscontent-workers/internal/common/validation"
	"juriscontent-workers/internal/models"
)

type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) GenerateStory(ctx context.Context, req automation.StoryRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, folder string, data []byte, contentType string, record models.RenderRecord) (models.RenderRecord, error) {
	args := m.Called(ctx, folder, data, contentType, record)
	return args.Get(0).(models.RenderRecord), args.Error(1)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(4, 4, color.NRGBA{255, 255, 255, 255}), imaging.PNG))
	return buf.Bytes()
}

func newFetcher() *assets.Fetcher {
	return assets.NewFetcher(httpclient.NewClient("asset-source", time.Second), 0)
}

func TestHandler_Execute(t *testing.T) {
	png := pngBytes(t)

	generator := new(MockGenerator)
	publisher := new(MockPublisher)

	generator.On("GenerateStory", mock.Anything, mock.MatchedBy(func(req automation.StoryRequest) bool {
		return req.Text == "Overtime rules" && req.Area == "Labor Law" && req.VisualProfile["style"] == "bold"
	})).Return(assets.EncodeDataURI("image/png", png), nil)
	publisher.On("Publish", mock.Anything, "legal-stories", png, "image/png", mock.MatchedBy(func(r models.RenderRecord) bool {
		return r.Kind == models.RenderKindAIStory && r.Template == "statistic" && r.ProcessKey == 3
	})).Return(models.RenderRecord{ID: "rec-3", ImageURL: "https://cdn/legal-stories/3.png"}, nil)

	h := NewHandler(DefaultConfig(), Dependencies{Generator: generator, Fetcher: newFetcher(), Publisher: publisher}, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{
		Text:          "Overtime rules",
		Area:          "Labor Law",
		Template:      "statistic",
		VisualProfile: map[string]interface{}{"style": "bold"},
		ProcessKey:    3,
	})

	require.NoError(t, err)
	assert.Equal(t, &Output{Success: true, ImageURL: "https://cdn/legal-stories/3.png", RecordID: "rec-3", Template: "statistic"}, output)
	generator.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestHandler_ExecuteImageURL(t *testing.T) {
	png := pngBytes(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(png)
	}))
	defer server.Close()

	generator := new(MockGenerator)
	publisher := new(MockPublisher)
	generator.On("GenerateStory", mock.Anything, mock.Anything).Return(server.URL+"/story.png", nil)
	publisher.On("Publish", mock.Anything, "legal-stories", png, "image/png", mock.Anything).
		Return(models.RenderRecord{ImageURL: "https://cdn/s.png"}, nil)

	h := NewHandler(nil, Dependencies{Generator: generator, Fetcher: newFetcher(), Publisher: publisher}, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{Text: "x"})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/s.png", output.ImageURL)
}

func TestHandler_ExecuteFailures(t *testing.T) {
	t.Run("webhook fails", func(t *testing.T) {
		generator := new(MockGenerator)
		publisher := new(MockPublisher)
		generator.On("GenerateStory", mock.Anything, mock.Anything).
			Return("", &errors.UpstreamError{Service: automation.Service, Status: http.StatusBadGateway, Message: "story webhook returned no image"})

		h := NewHandler(nil, Dependencies{Generator: generator, Fetcher: newFetcher(), Publisher: publisher}, logger.NewTestLogger(t))
		_, err := h.Execute(context.Background(), &Input{Text: "x"})

		assert.Equal(t, errors.ErrCodeUpstreamError, errors.AsStandardError(err).Code)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("garbage image", func(t *testing.T) {
		generator := new(MockGenerator)
		generator.On("GenerateStory", mock.Anything, mock.Anything).Return("data:image/png;base64,***", nil)

		h := NewHandler(nil, Dependencies{Generator: generator, Fetcher: newFetcher(), Publisher: new(MockPublisher)}, logger.NewTestLogger(t))
		_, err := h.Execute(context.Background(), &Input{Text: "x"})

		assert.Equal(t, errors.ErrCodeAssetDecodeFailed, errors.AsStandardError(err).Code)
	})
}

func TestGetInputSchema(t *testing.T) {
	tests := []struct {
		name  string
		vars  string
		valid bool
	}{
		{"profile object", `{"text":"x","visualProfile":{"cor_primaria":"#000"}}`, true},
		{"profile string", `{"text":"x","visualProfile":"bold"}`, false},
		{"extra process variables", `{"requestId":"r-1"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vars map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(tt.vars), &vars))
			assert.Equal(t, tt.valid, validation.ValidateInput(vars, GetInputSchema()).Valid)
		})
	}
}
