package redact

import (
	"regexp"
	"strings"

	"github.com/gzhole/kubeguard/internal/argscan"
)

var sensitivePatterns = []*regexp.Regexp{
	// AWS
	regexp.MustCompile(`(?i)(aws_access_key_id|aws_secret_access_key|aws_session_token)\s*[=:]\s*['"]?[A-Za-z0-9/+=]{20,}['"]?`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),

	// GitHub
	regexp.MustCompile(`ghp_[A-Za-z0-9]{36}`),

	// Generic API keys
	regexp.MustCompile(`(?i)(api_key|apikey|api-key|secret_key|secretkey|secret-key|access_token|auth_token)\s*[=:]\s*['"]?[A-Za-z0-9_-]{16,}['"]?`),

	// Private keys
	regexp.MustCompile(`-----BEGIN (RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY-----`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_.-]{20,}`),

	// Service account JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),

	// Basic auth in URLs
	regexp.MustCompile(`https?://[^:/\s]+:[^@\s]+@`),

	regexp.MustCompile(`(?i)(password|passwd|pwd|secret)\s*[=:]\s*['"]?[^\s'"]{8,}['"]?`),
}

// credentialFlags carry a secret as their whole value.
var credentialFlags = []string{"--token", "--password"}

// literalFlags carry key=value pairs whose value may be secret.
var literalFlags = []string{"--from-literal"}

const redactedPlaceholder = "[REDACTED]"

func Redact(input string) string {
	result := input
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, redactedPlaceholder)
	}
	return result
}

// RedactArgs returns a copy of a kubectl argument vector with credential
// flag values replaced, in both "--flag value" and "--flag=value" form, and
// generic secret patterns masked in every other token.
func RedactArgs(args []string) []string {
	result := make([]string, len(args))

	for i := 0; i < len(args); i++ {
		token := args[i]
		result[i] = Redact(token)

		if !argscan.IsFlag(token) {
			continue
		}

		rest := args[i+1:]
		matched := false
		for _, flag := range credentialFlags {
			if _, n, ok := argscan.Value(token, flag, rest); ok {
				if n == 0 {
					result[i] = flag + "=" + redactedPlaceholder
				} else {
					result[i+1] = redactedPlaceholder
					i++
				}
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		for _, flag := range literalFlags {
			if v, n, ok := argscan.Value(token, flag, rest); ok {
				if n == 0 {
					result[i] = flag + "=" + redactLiteral(v)
				} else {
					result[i+1] = redactLiteral(v)
					i++
				}
				break
			}
		}
	}

	return result
}

func redactLiteral(v string) string {
	key, _, found := strings.Cut(v, "=")
	if !found {
		return redactedPlaceholder
	}
	return key + "=" + redactedPlaceholder
}
