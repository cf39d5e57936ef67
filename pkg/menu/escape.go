package menu

import "strings"

// EscapeAmpersands replaces every bare "&" with "&amp;". Named references
// ("&amp;", "&nbsp;"), "&#" sequences and "&&" are left as they are.
func EscapeAmpersands(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			b.WriteByte(s[i])
			continue
		}
		rest := s[i+1:]
		switch {
		case strings.HasPrefix(rest, "&"), strings.HasPrefix(rest, "#"):
			b.WriteByte('&')
			b.WriteByte(rest[0])
			i++
		case isNamedRef(rest):
			b.WriteByte('&')
		default:
			b.WriteString("&amp;")
		}
	}
	return b.String()
}

// isNamedRef reports whether s (the text after an ampersand) begins with
// "name;".
func isNamedRef(s string) bool {
	i := 0
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	return i > 0 && i < len(s) && s[i] == ';'
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
