package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRaw(t *testing.T) {
	structured := map[string]interface{}{"numero": "45%"}

	tests := []struct {
		name     string
		input    interface{}
		expected interface{}
	}{
		{"object passes through", structured, structured},
		{"json string", `{"numero":"45%"}`, structured},
		{"fenced json", "```json\n{\"numero\":\"45%\"}\n```", structured},
		{"plain text", "just some text", "just some text"},
		{"broken json", `{"numero":`, `{"numero":`},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeRaw(tt.input))
		})
	}
}

func TestDecodeRawFeedsNormalize(t *testing.T) {
	fs := Normalize(TemplateStatistic, DecodeRaw(`{"numero":"45%","contexto":"of workers"}`), "", "labor")
	assert.Equal(t, "45% of workers", fs.Fields().Primary)
}
