package composefeedimage

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"juriscontent-workers/internal/assets"
	"juriscontent-workers/internal/common/errors"
	httpclient "juriscontent-workers/internal/common/http"
	"juriscontent-workers/internal/common/logger"
	"juriscontent-workers/internal/models"
	"juriscontent-workers/internal/render"
)

// ==========================
// Mocks
// ==========================

type MockFetcher struct{ mock.Mock }

func (m *MockFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockComposer struct{ mock.Mock }

func (m *MockComposer) Compose(ctx context.Context, req render.Request) ([]byte, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, folder string, data []byte, contentType string, record models.RenderRecord) (models.RenderRecord, error) {
	args := m.Called(ctx, folder, data, contentType, record)
	return args.Get(0).(models.RenderRecord), args.Error(1)
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		Retries:            3,
		Variables:          string(variablesJSON),
	}}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(w, h, color.NRGBA{40, 60, 90, 255}), imaging.PNG))
	return buf.Bytes()
}

// ==========================
// Execute
// ==========================

func TestHandler_ExecuteWithTemplate(t *testing.T) {
	fetcher := new(MockFetcher)
	composer := new(MockComposer)
	publisher := new(MockPublisher)

	fetcher.On("Fetch", mock.Anything, "https://photos.example.com/office.jpg").Return([]byte("base"), nil)
	composer.On("Compose", mock.Anything, mock.MatchedBy(func(req render.Request) bool {
		return req.Fields.Primary == "45% of renters" &&
			req.Headline == "" &&
			req.Format.Name == render.FormatStory &&
			req.Palette.Name == render.PaletteModern &&
			req.AreaLabel == "Real Estate" &&
			req.Branding.Name == "Maria Silva" &&
			req.Bullets == nil
	})).Return([]byte("jpeg"), nil)
	publisher.On("Publish", mock.Anything, "legal-feed", []byte("jpeg"), "image/jpeg", mock.MatchedBy(func(r models.RenderRecord) bool {
		return r.Kind == models.RenderKindFeed && r.Template == "statistic" && r.Format == "story" && r.Palette == "modern" && r.ProcessKey == 77
	})).Return(models.RenderRecord{ID: "rec-9", ImageURL: "https://cdn/legal-feed/9.jpg"}, nil)

	h := NewHandler(DefaultConfig(), Dependencies{Fetcher: fetcher, Composer: composer, Publisher: publisher}, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{
		ImageURL:   "https://photos.example.com/office.jpg",
		Template:   "estatistica",
		Content:    map[string]interface{}{"numero": "45%", "contexto": "of renters"},
		Area:       "Real Estate",
		Format:     "stories",
		Style:      "moderno",
		LawyerName: "Maria Silva",
		ProcessKey: 77,
	})

	require.NoError(t, err)
	assert.Equal(t, &Output{
		Success:  true,
		ImageURL: "https://cdn/legal-feed/9.jpg",
		RecordID: "rec-9",
		Template: "statistic",
		Format:   "story",
		Palette:  "modern",
	}, output)
	fetcher.AssertExpectations(t)
	composer.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestHandler_ExecutePlainFeed(t *testing.T) {
	fetcher := new(MockFetcher)
	composer := new(MockComposer)
	publisher := new(MockPublisher)

	fetcher.On("Fetch", mock.Anything, "data:image/png;base64,AAAA").Return([]byte("base"), nil)
	composer.On("Compose", mock.Anything, mock.MatchedBy(func(req render.Request) bool {
		return req.Headline == "Consumer rights online" &&
			req.Format.Name == render.FormatSquare &&
			req.Palette.Name == render.PaletteClassic &&
			assert.ObjectsAreEqual([]string{"Right to return", "Clear pricing"}, req.Bullets)
	})).Return([]byte("jpeg"), nil)
	publisher.On("Publish", mock.Anything, "legal-feed", mock.Anything, "image/jpeg", mock.MatchedBy(func(r models.RenderRecord) bool {
		return r.Template == plainTemplate
	})).Return(models.RenderRecord{ImageURL: "https://cdn/x.jpg"}, nil)

	h := NewHandler(nil, Dependencies{Fetcher: fetcher, Composer: composer, Publisher: publisher}, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{
		ImageURL: "data:image/png;base64,AAAA",
		Theme:    "Consumer rights online",
		Bullets: []interface{}{
			"Right to return",
			map[string]interface{}{"texto": "Clear pricing"},
			"   ",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, plainTemplate, output.Template)
	composer.AssertExpectations(t)
}

func TestHandler_ExecuteBulletsFromContent(t *testing.T) {
	tests := []struct {
		name     string
		template string
		content  interface{}
		want     []string
	}{
		{
			name:    "no template",
			content: map[string]interface{}{"bullets": []interface{}{"Keep receipts", map[string]interface{}{"texto": "Ask for a refund"}}},
			want:    []string{"Keep receipts", "Ask for a refund"},
		},
		{
			name:    "no template with json string content",
			content: `{"bullets":["Keep receipts"]}`,
			want:    []string{"Keep receipts"},
		},
		{
			name:     "non bullet template",
			template: "estatistica",
			content:  map[string]interface{}{"numero": "45%", "bullets": []interface{}{"Check the fine print"}},
			want:     []string{"Check the fine print"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(MockFetcher)
			composer := new(MockComposer)
			publisher := new(MockPublisher)

			fetcher.On("Fetch", mock.Anything, "data:image/png;base64,AAAA").Return([]byte("base"), nil)
			composer.On("Compose", mock.Anything, mock.MatchedBy(func(req render.Request) bool {
				return assert.ObjectsAreEqual(tt.want, req.Bullets)
			})).Return([]byte("jpeg"), nil)
			publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(models.RenderRecord{ImageURL: "https://cdn/x.jpg"}, nil)

			h := NewHandler(nil, Dependencies{Fetcher: fetcher, Composer: composer, Publisher: publisher}, logger.NewTestLogger(t))
			_, err := h.Execute(context.Background(), &Input{
				ImageURL: "data:image/png;base64,AAAA",
				Theme:    "Consumer rights online",
				Template: tt.template,
				Content:  tt.content,
			})

			require.NoError(t, err)
			composer.AssertExpectations(t)
		})
	}
}

func TestHandler_ExecuteLogoURL(t *testing.T) {
	logo := pngBytes(t, 8, 8)

	fetcher := new(MockFetcher)
	composer := new(MockComposer)
	publisher := new(MockPublisher)

	fetcher.On("Fetch", mock.Anything, "https://photos/base.jpg").Return([]byte("base"), nil)
	fetcher.On("Fetch", mock.Anything, "https://brand/logo.png").Return(logo, nil)
	composer.On("Compose", mock.Anything, mock.MatchedBy(func(req render.Request) bool {
		return req.Branding.Logo == assets.EncodeDataURI("image/png", logo)
	})).Return([]byte("jpeg"), nil)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(models.RenderRecord{ImageURL: "https://cdn/x.jpg"}, nil)

	h := NewHandler(nil, Dependencies{Fetcher: fetcher, Composer: composer, Publisher: publisher}, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{ImageURL: "https://photos/base.jpg", Logo: "https://brand/logo.png"})

	require.NoError(t, err)
	composer.AssertExpectations(t)
}

func TestHandler_ExecuteLogoFetchFailureIsNotFatal(t *testing.T) {
	fetcher := new(MockFetcher)
	composer := new(MockComposer)
	publisher := new(MockPublisher)

	fetcher.On("Fetch", mock.Anything, "https://photos/base.jpg").Return([]byte("base"), nil)
	fetcher.On("Fetch", mock.Anything, "https://brand/missing.png").
		Return(nil, &errors.UpstreamError{Service: "asset-source", Status: http.StatusNotFound, Message: "not found"})
	composer.On("Compose", mock.Anything, mock.MatchedBy(func(req render.Request) bool {
		return req.Branding.Logo == ""
	})).Return([]byte("jpeg"), nil)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(models.RenderRecord{ImageURL: "https://cdn/x.jpg"}, nil)

	h := NewHandler(nil, Dependencies{Fetcher: fetcher, Composer: composer, Publisher: publisher}, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{ImageURL: "https://photos/base.jpg", Logo: "https://brand/missing.png"})

	require.NoError(t, err)
	assert.True(t, output.Success)
}

func TestHandler_ExecuteFailures(t *testing.T) {
	t.Run("missing image", func(t *testing.T) {
		h := NewHandler(nil, Dependencies{}, logger.NewTestLogger(t))
		_, err := h.Execute(context.Background(), &Input{ImageURL: "  "})
		assert.Equal(t, errors.ErrCodeInvalidInput, errors.AsStandardError(err).Code)
	})

	t.Run("base image fetch fails", func(t *testing.T) {
		fetcher := new(MockFetcher)
		composer := new(MockComposer)
		fetcher.On("Fetch", mock.Anything, mock.Anything).
			Return(nil, errors.NewAssetFetchFailedError("https://photos/base.jpg", context.DeadlineExceeded))

		h := NewHandler(nil, Dependencies{Fetcher: fetcher, Composer: composer}, logger.NewTestLogger(t))
		_, err := h.Execute(context.Background(), &Input{ImageURL: "https://photos/base.jpg"})

		assert.Equal(t, errors.ErrCodeAssetFetchFailed, errors.AsStandardError(err).Code)
		composer.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything)
	})

	t.Run("base image undecodable", func(t *testing.T) {
		fetcher := new(MockFetcher)
		composer := new(MockComposer)
		publisher := new(MockPublisher)
		fetcher.On("Fetch", mock.Anything, mock.Anything).Return([]byte("nope"), nil)
		composer.On("Compose", mock.Anything, mock.Anything).
			Return(nil, &errors.AssetDecodeError{Asset: "base image", Err: image.ErrFormat})

		h := NewHandler(nil, Dependencies{Fetcher: fetcher, Composer: composer, Publisher: publisher}, logger.NewTestLogger(t))
		_, err := h.Execute(context.Background(), &Input{ImageURL: "https://photos/base.jpg"})

		stdErr := errors.AsStandardError(err)
		assert.Equal(t, errors.ErrCodeAssetDecodeFailed, stdErr.Code)
		assert.False(t, stdErr.Retryable)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// ==========================
// End to end with the real engine
// ==========================

type capturePublisher struct {
	data []byte
}

func (c *capturePublisher) Publish(_ context.Context, _ string, data []byte, _ string, r models.RenderRecord) (models.RenderRecord, error) {
	c.data = data
	r.ImageURL = "https://cdn/legal-feed/out.jpg"
	return r, nil
}

func TestHandler_ExecuteRendersJPEG(t *testing.T) {
	engine, err := render.NewEngine(render.DefaultJPEGQuality, logger.NewTestLogger(t))
	require.NoError(t, err)

	fetcher := assets.NewFetcher(httpclient.NewClient("asset-source", time.Second), 0)
	pub := &capturePublisher{}

	h := NewHandler(nil, Dependencies{Fetcher: fetcher, Composer: engine, Publisher: pub}, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{
		ImageURL:     assets.EncodeDataURI("image/png", pngBytes(t, 300, 200)),
		Template:     "bullet-list",
		Content:      map[string]interface{}{"titulo": "Your rights", "bullets": []interface{}{"One", "Two"}},
		Format:       "landscape",
		LawyerName:   "Maria Silva",
		Registration: "OAB/SP 123.456",
		Logo:         "not base64 at all",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/legal-feed/out.jpg", output.ImageURL)

	img, err := imaging.Decode(bytes.NewReader(pub.data))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 628, img.Bounds().Dy())
}

// ==========================
// Input parsing and config
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	h := NewHandler(nil, Dependencies{}, logger.NewTestLogger(t))

	input, err := h.parseInput(createMockJob(1, map[string]interface{}{
		"imageUrl": "https://photos/base.jpg",
		"bullets":  []interface{}{"a", map[string]interface{}{"titulo": "b"}},
		"format":   "quadrado",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://photos/base.jpg", input.ImageURL)
	assert.Len(t, input.Bullets, 2)

	tests := []struct {
		name string
		vars map[string]interface{}
	}{
		{"missing image", map[string]interface{}{"theme": "x"}},
		{"bullets not a list", map[string]interface{}{"imageUrl": "x", "bullets": "a, b"}},
		{"theme too long", map[string]interface{}{"imageUrl": "x", "theme": string(make([]byte, 201))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.parseInput(createMockJob(2, tt.vars))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidInput, errors.AsStandardError(err).Code)
		})
	}
}
