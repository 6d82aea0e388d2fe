package content

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Branding identifies the professional a graphic is produced for. Every
// field is optional.
type Branding struct {
	Name         string
	Registration string
	Phone        string
	Instagram    string
	// Logo is a base64 payload, with or without a data URI prefix.
	Logo string
}

func (b Branding) Initials() string {
	return Initials(b.Name)
}

// Initials takes the first letter of each whitespace separated token,
// uppercased, keeping at most two.
func Initials(name string) string {
	var sb strings.Builder
	count := 0
	for _, token := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(token)
		sb.WriteRune(unicode.ToUpper(r))
		count++
		if count == 2 {
			break
		}
	}
	return sb.String()
}
