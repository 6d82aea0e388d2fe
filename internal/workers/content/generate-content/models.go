package generatecontent

import "context"

type Input struct {
	Prompt string `json:"prompt"`
}

type Output struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
}

// ContentGenerator writes post copy for a prompt.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
