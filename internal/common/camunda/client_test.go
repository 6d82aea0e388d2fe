package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"juriscontent-workers/internal/common/errors"
)

var fastRetry = &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}

func TestExecuteWithRetry_RecoversFromTransientError(t *testing.T) {
	calls := 0
	result, err := executeWithRetry(context.Background(), fastRetry, func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, stderrors.New("rpc error: code = Unavailable desc = connection refused")
		}
		return "ok", nil
	}, "create-instance")

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := executeWithRetry(context.Background(), fastRetry, func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("rpc error: code = NotFound desc = process not found")
	}, "create-instance")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, errors.ErrCodeUpstreamRejected, errors.AsStandardError(err).Code)
}

func TestNewClientWithConfig_UnreachableGateway(t *testing.T) {
	_, err := NewClientWithConfig(&ClientConfig{
		GatewayAddress:         "127.0.0.1:1",
		UsePlaintextConnection: true,
		ConnectionTimeout:      500 * time.Millisecond,
		RetryConfig:            fastRetry,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		code errors.ErrorCode
	}{
		{msg: "context deadline exceeded", code: errors.ErrCodeUpstreamTimeout},
		{msg: "process definition not found", code: errors.ErrCodeUpstreamRejected},
		{msg: "resource already exists", code: errors.ErrCodeUpstreamRejected},
		{msg: "permission denied", code: errors.ErrCodeUpstreamRejected},
		{msg: "connection refused", code: errors.ErrCodeUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := mapZeebeError(stderrors.New(tt.msg), "deploy", 0)
			assert.Equal(t, tt.code, errors.AsStandardError(err).Code)
		})
	}
}

func TestInstrument_CallsHandler(t *testing.T) {
	var got int64
	wrapped := Instrument("normalize-content", func(_ worker.JobClient, job entities.Job) {
		got = job.Key
	}, nil)

	wrapped(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42}})
	assert.Equal(t, int64(42), got)
}
