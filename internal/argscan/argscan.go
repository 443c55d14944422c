// Package argscan extracts flag values from a raw kubectl argument vector
// without knowing kubectl's full flag grammar.
package argscan

import "strings"

// Value reports the value carried by token for flag.
//
// Two spellings are understood: "--flag value", where the value is the next
// token (rest[0]) and consumed is 1, and "--flag=value", where the value is
// the text after "=" with surrounding whitespace trimmed and consumed is 0.
//
// ok is false when token is not flag, or when token is flag but rest is
// empty. A trailing value flag is treated as absent, not as an error;
// kubectl reports its own usage errors.
func Value(token, flag string, rest []string) (value string, consumed int, ok bool) {
	if token == flag {
		if len(rest) == 0 {
			return "", 0, false
		}
		return rest[0], 1, true
	}

	if v, found := strings.CutPrefix(token, flag+"="); found {
		return strings.TrimSpace(v), 0, true
	}

	return "", 0, false
}

// IsFlag reports whether token looks like a flag.
func IsFlag(token string) bool {
	return strings.HasPrefix(token, "-")
}
