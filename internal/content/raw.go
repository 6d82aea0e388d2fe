package content

import (
	"encoding/json"
	"strings"
)

// DecodeRaw unwraps content that arrives as a JSON object encoded in a
// string, which is how the content generator usually returns it. Any
// other value is returned unchanged.
func DecodeRaw(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return v
	}

	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return v
	}
	return m
}
