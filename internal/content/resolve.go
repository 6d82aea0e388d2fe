package content

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Raw content keys. The content generator writes Portuguese keys; the
// English ones are accepted for callers that build content by hand.
var (
	keyQuestion    = []string{"pergunta", "question"}
	keyAnswer      = []string{"resposta", "answer"}
	keyHighlight   = []string{"destaque", "highlight"}
	keyTitle       = []string{"titulo", "title"}
	keyBullets     = []string{"bullets"}
	keyCTA         = []string{"cta"}
	keyNumber      = []string{"numero", "number"}
	keyContext     = []string{"contexto", "context"}
	keyExplanation = []string{"explicacao", "explanation"}
	keySource      = []string{"fonte", "source"}
	keyAlert       = []string{"alerta", "alert"}
	keyDeadline    = []string{"prazo", "deadline"}
	keyRisk        = []string{"risco", "risk"}
	keyAction      = []string{"acao", "action"}
	keyHeadline    = []string{"headline"}
	keyInsight     = []string{"insight"}
	keyConclusion  = []string{"conclusao", "conclusion"}

	// keys tried on structured bullet entries
	keyBulletText = []string{"texto", "text", "titulo", "title"}
)

const (
	MaxBullets         = 4
	fallbackTextLength = 150
)

// resolveString returns the first key whose value resolves to non-blank
// text, else the first non-blank default, else "".
func resolveString(raw map[string]interface{}, keys []string, defaults ...string) string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, ok := textValue(v); ok {
				return s
			}
		}
	}
	for _, d := range defaults {
		if s := strings.TrimSpace(d); s != "" {
			return s
		}
	}
	return ""
}

// textValue reports whether v carries usable text. Absent, blank and
// non-scalar values are missing; numbers are formatted.
func textValue(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// resolveStrings returns the entries of the first key holding a sequence.
// Structured entries resolve to their text or title field; entries that
// resolve to nothing are dropped.
func resolveStrings(raw map[string]interface{}, keys []string) []string {
	for _, k := range keys {
		if seq, ok := sequenceValue(raw[k]); ok {
			return ResolveBullets(seq)
		}
	}
	return nil
}

func sequenceValue(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// ResolveBullets converts a loosely typed bullet sequence into display
// strings, preserving order.
func ResolveBullets(entries []interface{}) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if m, ok := e.(map[string]interface{}); ok {
			if s := resolveString(m, keyBulletText); s != "" {
				out = append(out, s)
			}
			continue
		}
		if s, ok := textValue(e); ok {
			out = append(out, s)
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func withTheme(prefix, theme, bare string) string {
	if theme == "" {
		return bare
	}
	return prefix + theme
}
