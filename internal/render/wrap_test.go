package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// fixedMeasurer gives every rune the same advance.
type fixedMeasurer struct {
	advance float64
}

func (m fixedMeasurer) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * m.advance, 10
}

func TestWrap(t *testing.T) {
	m := fixedMeasurer{advance: 10}

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{name: "empty", text: "", maxWidth: 100, want: nil},
		{name: "whitespace only", text: "  \n\t ", maxWidth: 100, want: nil},
		{name: "fits on one line", text: "know your rights", maxWidth: 200, want: []string{"know your rights"}},
		{name: "exact fit stays on line", text: "abcd efgh", maxWidth: 90, want: []string{"abcd efgh"}},
		{name: "breaks greedily", text: "one two three four", maxWidth: 80, want: []string{"one two", "three", "four"}},
		{name: "long word keeps own line", text: "a unconstitutional b", maxWidth: 50, want: []string{"a", "unconstitutional", "b"}},
		{name: "collapses spacing", text: "  deadline   is   near ", maxWidth: 1000, want: []string{"deadline is near"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(m, tt.text, tt.maxWidth))
		})
	}
}

func TestWrap_DeterministicAndBounded(t *testing.T) {
	m := fixedMeasurer{advance: 7}
	text := "Consumers who bought a defective product have ninety days to file a complaint against the supplier"

	for _, width := range []float64{60, 120, 250, 400} {
		first := Wrap(m, text, width)
		second := Wrap(m, text, width)
		assert.Equal(t, first, second)
		assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(first, " ")))

		for _, line := range first {
			w, _ := m.MeasureString(line)
			if w > width {
				assert.NotContains(t, line, " ", "only a single word may overflow, width %v", width)
			}
		}
	}
}
