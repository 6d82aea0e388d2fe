package removebackground

import (
	"context"

	"juriscontent-workers/internal/common/removebg"
)

type Input struct {
	Logo string `json:"logo"`
}

type Output struct {
	Success  bool   `json:"success"`
	Logo     string `json:"logo"`
	MIMEType string `json:"mimeType"`
}

type BackgroundRemover interface {
	Remove(ctx context.Context, logo string) (*removebg.Result, error)
}
