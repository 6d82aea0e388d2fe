package render

import "strings"

type Format struct {
	Name   string
	Width  int
	Height int
}

const (
	FormatSquare    = "square"
	FormatStory     = "story"
	FormatLandscape = "landscape"
)

var formats = map[string]Format{
	FormatSquare:    {Name: FormatSquare, Width: 1080, Height: 1080},
	FormatStory:     {Name: FormatStory, Width: 1080, Height: 1920},
	FormatLandscape: {Name: FormatLandscape, Width: 1200, Height: 628},
}

var formatAliases = map[string]string{
	"quadrado": FormatSquare,
	"stories":  FormatStory,
}

// ResolveFormat returns the output dimensions for key. Unknown keys render
// square.
func ResolveFormat(key string) Format {
	key = strings.ToLower(strings.TrimSpace(key))
	if alias, ok := formatAliases[key]; ok {
		key = alias
	}
	if f, ok := formats[key]; ok {
		return f
	}
	return formats[FormatSquare]
}

func FormatKeys() []string {
	return []string{FormatSquare, FormatStory, FormatLandscape}
}
