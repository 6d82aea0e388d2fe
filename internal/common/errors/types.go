package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// AssetDecodeError reports an image that could not be read. For the base
// photo of a feed render it is fatal.
type AssetDecodeError struct {
	Asset string
	Err   error
}

func (e *AssetDecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Asset, e.Err)
}

func (e *AssetDecodeError) Unwrap() error { return e.Err }

func (e *AssetDecodeError) ToStandardError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAssetDecodeFailed,
		Message:   fmt.Sprintf("Could not decode %s", e.Asset),
		Details:   errString(e.Err),
		Retryable: false,
		Metadata:  map[string]interface{}{"asset": e.Asset},
		Timestamp: time.Now().UTC(),
	}
}

type AssetEncodeError struct {
	Format string
	Err    error
}

func (e *AssetEncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *AssetEncodeError) Unwrap() error { return e.Err }

func (e *AssetEncodeError) ToStandardError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAssetEncodeFailed,
		Message:   fmt.Sprintf("Could not encode %s output", e.Format),
		Details:   errString(e.Err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// UpstreamError carries the status and message of a failed collaborator
// call. Status is zero when no response was received.
type UpstreamError struct {
	Service string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Service, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Service, e.Status, e.Message)
}

// Temporary reports whether the collaborator may succeed on a later attempt.
func (e *UpstreamError) Temporary() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= 500
}

func (e *UpstreamError) ToStandardError() *StandardError {
	code := ErrCodeUpstreamError
	if !e.Temporary() {
		code = ErrCodeUpstreamRejected
	}
	return &StandardError{
		Code:      code,
		Message:   fmt.Sprintf("External service '%s' error", e.Service),
		Details:   e.Error(),
		Retryable: e.Temporary(),
		Metadata: map[string]interface{}{
			"service":        e.Service,
			"upstreamStatus": e.Status,
		},
		Timestamp: time.Now().UTC(),
	}
}

// AsStandardError unwraps err to the first StandardError or typed error in
// its chain. Anything else becomes a non-retryable INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}

	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	var converter interface{ ToStandardError() *StandardError }
	if stderrors.As(err, &converter) {
		return converter.ToStandardError()
	}

	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
