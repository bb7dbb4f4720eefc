package logging

import (
	"fmt"
	"strings"
)

// secretKeyParts mark an attribute key as sensitive when found anywhere in
// the upper-cased key.
var secretKeyParts = []string{
	"TOKEN", "SECRET", "PASSWORD", "PASSWD",
	"API_KEY", "APIKEY", "PRIVATE", "CREDENTIAL",
}

// tokenPrefixes identify credentials by shape, whatever key they sit under.
var tokenPrefixes = []string{
	"ghp_", "gho_", "ghs_", // GitHub
	"sk-",                 // OpenAI, Anthropic
	"AKIA",                // AWS access key id
	"xoxb-", "xoxp-",      // Slack
}

// IsSecretKey reports whether key names a value that must not be logged.
func IsSecretKey(key string) bool {
	upper := strings.ToUpper(key)
	for _, part := range secretKeyParts {
		if strings.Contains(upper, part) {
			return true
		}
	}
	return false
}

func looksLikeToken(s string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// Mask keeps the last four characters of s. Shorter values are hidden
// completely.
func Mask(s string) string {
	if len(s) <= 4 {
		return "********"
	}
	return "****" + s[len(s)-4:]
}

// Redact returns value masked when key or value looks like a secret, and
// unchanged otherwise. Handler applies it to every attribute.
func Redact(key string, value any) any {
	if IsSecretKey(key) {
		return Mask(fmt.Sprint(value))
	}
	if s, ok := value.(string); ok && looksLikeToken(s) {
		return Mask(s)
	}
	return value
}
