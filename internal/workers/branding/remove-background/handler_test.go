package removebackground

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"juriscontent-workers/internal/common/errors"
	"juriscontent-workers/internal/common/logger"
	"juriscontent-workers/internal/common/removebg"
)

type MockRemover struct {
	mock.Mock
}

func (m *MockRemover) Remove(ctx context.Context, logo string) (*removebg.Result, error) {
	args := m.Called(ctx, logo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*removebg.Result), args.Error(1)
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

func TestHandler_Execute(t *testing.T) {
	remover := new(MockRemover)
	remover.On("Remove", mock.Anything, "data:image/jpeg;base64,QUJD").
		Return(&removebg.Result{Logo: "UE5H", MIMEType: "image/png"}, nil)

	h := NewHandler(DefaultConfig(), remover, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), &Input{Logo: "data:image/jpeg;base64,QUJD"})

	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, "UE5H", output.Logo)
	assert.Equal(t, "image/png", output.MIMEType)
	remover.AssertExpectations(t)
}

func TestHandler_ExecuteEmptyLogo(t *testing.T) {
	remover := new(MockRemover)
	h := NewHandler(nil, remover, logger.NewTestLogger(t))

	for _, logo := range []string{"", "   ", "data:image/png;base64,"} {
		_, err := h.Execute(context.Background(), &Input{Logo: logo})
		require.Error(t, err, logo)
		assert.Equal(t, errors.ErrCodeInvalidInput, errors.AsStandardError(err).Code)
	}
	remover.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestHandler_ExecuteUpstreamFailure(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		code      errors.ErrorCode
		retryable bool
	}{
		{"missing api key", http.StatusUnauthorized, errors.ErrCodeUpstreamRejected, false},
		{"service down", http.StatusServiceUnavailable, errors.ErrCodeUpstreamError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remover := new(MockRemover)
			remover.On("Remove", mock.Anything, mock.Anything).
				Return(nil, &errors.UpstreamError{Service: removebg.Service, Status: tt.status, Message: "failed"})

			_, err := NewHandler(nil, remover, logger.NewTestLogger(t)).Execute(context.Background(), &Input{Logo: "QUJD"})

			require.Error(t, err)
			stdErr := errors.AsStandardError(err)
			assert.Equal(t, tt.code, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
		})
	}
}

func TestHandler_ParseInput(t *testing.T) {
	h := NewHandler(nil, new(MockRemover), logger.NewTestLogger(t))

	input, err := h.parseInput(createMockJob(1, map[string]interface{}{"logo": "QUJD", "lawyerName": "Ana"}))
	require.NoError(t, err)
	assert.Equal(t, "QUJD", input.Logo)

	_, err = h.parseInput(createMockJob(2, map[string]interface{}{"logo": ""}))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.AsStandardError(err).Code)
}
