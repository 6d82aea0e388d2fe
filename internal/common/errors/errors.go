package errors

import (
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	ErrCodeAssetFetchFailed  ErrorCode = "ASSET_FETCH_FAILED"
	ErrCodeAssetDecodeFailed ErrorCode = "ASSET_DECODE_FAILED"
	ErrCodeAssetEncodeFailed ErrorCode = "ASSET_ENCODE_FAILED"
	ErrCodeAssetUploadFailed ErrorCode = "ASSET_UPLOAD_FAILED"

	ErrCodeUpstreamError      ErrorCode = "UPSTREAM_ERROR"
	ErrCodeUpstreamRejected   ErrorCode = "UPSTREAM_REJECTED"
	ErrCodeUpstreamTimeout    ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeRenderTimeout      ErrorCode = "RENDER_TIMEOUT"
	ErrCodeTrendingStoreError ErrorCode = "TRENDING_STORE_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeCacheUnavailable         ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Job input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAssetFetchFailedError(ref string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssetFetchFailed,
		Message:   "Could not fetch image asset",
		Details:   fmt.Sprintf("ref: %s, error: %s", shortRef(ref), err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewAssetUploadFailedError(folder string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssetUploadFailed,
		Message:   "Image upload to asset host failed",
		Details:   fmt.Sprintf("folder: %s, error: %s", folder, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewRenderTimeoutError(stage string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRenderTimeout,
		Message:   "Render exceeded job timeout",
		Details:   fmt.Sprintf("stage: %s", stage),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTrendingStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTrendingStoreError,
		Message:   "Trending topics could not be stored",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamTimeout,
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
	}
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:             "INVALID_INPUT",
	ErrCodeAssetFetchFailed:         "ASSET_FETCH_FAILED",
	ErrCodeAssetDecodeFailed:        "ASSET_DECODE_FAILED",
	ErrCodeAssetEncodeFailed:        "ASSET_ENCODE_FAILED",
	ErrCodeAssetUploadFailed:        "ASSET_UPLOAD_FAILED",
	ErrCodeUpstreamError:            "UPSTREAM_ERROR",
	ErrCodeUpstreamRejected:         "UPSTREAM_ERROR",
	ErrCodeUpstreamTimeout:          "UPSTREAM_ERROR",
	ErrCodeRenderTimeout:            "RENDER_TIMEOUT",
	ErrCodeTrendingStoreError:       "TRENDING_STORE_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeDatabaseInsertFailed:     "DATABASE_INSERT_FAILED",
	ErrCodeCacheUnavailable:         "CACHE_UNAVAILABLE",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAssetFetchFailed,
		ErrCodeAssetUploadFailed,
		ErrCodeUpstreamError,
		ErrCodeTrendingStoreError,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeCacheUnavailable:
		return 3

	case ErrCodeUpstreamTimeout,
		ErrCodeRenderTimeout:
		return 2

	default:
		// decode, encode, validation and 4xx rejections do not improve on retry
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "ASSET"):
		return "ASSET"
	case strings.HasPrefix(codeStr, "UPSTREAM"):
		return "UPSTREAM"
	case strings.HasPrefix(codeStr, "RENDER"):
		return "RENDER"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "STORE"):
		return "STORAGE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

func shortRef(ref string) string {
	if strings.HasPrefix(ref, "data:") {
		if i := strings.IndexByte(ref, ','); i > 0 {
			return ref[:i] + ",..."
		}
	}
	if len(ref) > 120 {
		return ref[:120] + "..."
	}
	return ref
}
