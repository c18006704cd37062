package logging

import (
	"net/url"
	"regexp"
	"strings"
)

// Query parameter and field names whose values never reach the logs.
var sensitiveFields = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"apikey",
	"api-key",
	"authorization",
	"auth",
	"credential",
	"session",
}

var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+([a-zA-Z0-9._-]{20,})`),
	regexp.MustCompile(`(?i)(key|token|secret|password|auth)[=:]["']?([a-zA-Z0-9+/=_-]{16,})["']?`),
}

// RedactedValue is the replacement for sensitive values.
const RedactedValue = "[REDACTED]"

// Redact replaces secret-looking substrings in s.
func Redact(s string) string {
	result := s
	for _, pattern := range secretPatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// RedactURL hides URL passwords and sensitive query values.
// Unparseable input falls back to Redact.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return Redact(raw)
	}
	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), RedactedValue)
		}
	}
	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if IsSensitiveField(key) {
				q.Set(key, RedactedValue)
			}
		}
		u.RawQuery = q.Encode()
	}
	out := u.String()
	// url.String escapes the brackets of the placeholder.
	out = strings.ReplaceAll(out, url.QueryEscape(RedactedValue), RedactedValue)
	out = strings.ReplaceAll(out, url.PathEscape(RedactedValue), RedactedValue)
	return out
}

// IsSensitiveField checks if a field name is considered sensitive.
func IsSensitiveField(name string) bool {
	lowerName := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lowerName, field) {
			return true
		}
	}
	return false
}
