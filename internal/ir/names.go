package ir

import (
	"strings"
	"unicode"
)

// ToSnakeCase puts an underscore before every ASCII upper case letter except
// the first and lower cases the result. Acronyms are not collapsed: "ID"
// becomes "i_d". Non-ASCII capitals are lower cased without a separator.
func ToSnakeCase(name string) string {
	if name == "" {
		return ""
	}

	var out strings.Builder
	out.Grow(len(name) + 4)
	for i, r := range name {
		if i > 0 && 'A' <= r && r <= 'Z' {
			out.WriteByte('_')
		}
		out.WriteRune(unicode.ToLower(r))
	}
	return out.String()
}
