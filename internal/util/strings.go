package util

import (
	"regexp"
	"strings"
)

var validIDRegex = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

func IsASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

// IsValidID reports whether s can be used as a player or track identifier.
func IsValidID(s string) bool {
	if len(s) > 64 {
		return false
	}

	return validIDRegex.MatchString(s)
}

// AddSpace Adds a space, if not present, between ASCII Characters and Non-ASCII Characters.
// Notice that Non-ASCII characters could be multi-byte unicode sequence.
// For example, "한국어english" -> "한국어 english"
func AddSpace(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && IsASCII(s[i:i+1]) != IsASCII(s[i-1:i]) && s[i-1] != ' ' && s[i] != ' ' {
			b.WriteByte(' ')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
