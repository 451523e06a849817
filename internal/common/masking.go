package common

import (
	"log/slog"
	"regexp"
	"strings"
	"sync/atomic"
)

const maskedValue = "***MASKED***"

// SensitivePattern represents a pattern to detect and mask sensitive information
type SensitivePattern struct {
	Name        string         // Pattern name (e.g., "token", "authorization")
	Regex       *regexp.Regexp // Regular expression to match sensitive data inside free text
	Replacement string         // Replacement for Regex matches
	Keys        []string       // Attribute or header keys whose whole value is masked (case-insensitive)
}

// DefaultSensitivePatterns covers the credentials this tool handles: bearer
// tokens in headers and token-like fields in config dumps or API bodies.
var DefaultSensitivePatterns = []SensitivePattern{
	{
		Name:        "bearer_token",
		Regex:       regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]+=*`),
		Replacement: "Bearer " + maskedValue,
	},
	{
		Name: "authorization",
		Keys: []string{"authorization"},
	},
	{
		Name:        "token",
		Regex:       regexp.MustCompile(`(?i)("?(?:access[_-]?|auth[_-]?|vercel[_-]?)?token"?\s*[:=]\s*"?)[^"',}\]\s]+`),
		Replacement: "${1}" + maskedValue,
		Keys:        []string{"token", "access_token", "auth_token", "vercel_token"},
	},
	{
		Name:        "secret",
		Regex:       regexp.MustCompile(`(?i)("?(?:client[_-]?)?secret"?\s*[:=]\s*"?)[^"',}\]\s]+`),
		Replacement: "${1}" + maskedValue,
		Keys:        []string{"secret", "client_secret"},
	},
	{
		Name:        "password",
		Regex:       regexp.MustCompile(`(?i)("?(?:password|passwd|pwd)"?\s*[:=]\s*"?)[^"',}\]\s]+`),
		Replacement: "${1}" + maskedValue,
		Keys:        []string{"password", "passwd", "pwd"},
	},
}

// Masker handles masking of sensitive information in logs and dry-run output.
// It is safe for concurrent use.
type Masker struct {
	patterns []SensitivePattern
	enabled  atomic.Bool
}

// NewMasker creates a new masker with default patterns
func NewMasker() *Masker {
	return NewMaskerWithPatterns(DefaultSensitivePatterns)
}

// NewMaskerWithPatterns creates a new masker with custom patterns
func NewMaskerWithPatterns(patterns []SensitivePattern) *Masker {
	m := &Masker{patterns: patterns}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables masking
func (m *Masker) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether masking is enabled
func (m *Masker) IsEnabled() bool {
	return m.enabled.Load()
}

// MaskString masks sensitive information in a string
func (m *Masker) MaskString(input string) string {
	if !m.IsEnabled() || input == "" {
		return input
	}
	result := input
	for _, p := range m.patterns {
		if p.Regex != nil {
			result = p.Regex.ReplaceAllString(result, p.Replacement)
		}
	}
	return result
}

// IsSensitiveKey reports whether values stored under key are always masked.
func (m *Masker) IsSensitiveKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, p := range m.patterns {
		for _, sk := range p.Keys {
			if k == sk {
				return true
			}
		}
	}
	return false
}

// MaskValue masks value based on its key first and its content second.
func (m *Masker) MaskValue(key, value string) string {
	if !m.IsEnabled() {
		return value
	}
	if m.IsSensitiveKey(key) {
		return maskedValue
	}
	return m.MaskString(value)
}

// MaskHeaders returns a copy of headers with sensitive values masked.
func (m *Masker) MaskHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[k] = m.MaskValue(k, v)
	}
	return out
}

// MaskAttr masks a slog attribute. Groups are masked recursively and
// non-string values are left untouched unless the key itself is sensitive.
func (m *Masker) MaskAttr(a slog.Attr) slog.Attr {
	if !m.IsEnabled() {
		return a
	}
	v := a.Value.Resolve()
	switch {
	case v.Kind() == slog.KindGroup:
		group := v.Group()
		masked := make([]any, len(group))
		for i, ga := range group {
			masked[i] = m.MaskAttr(ga)
		}
		return slog.Group(a.Key, masked...)
	case m.IsSensitiveKey(a.Key):
		return slog.String(a.Key, maskedValue)
	case v.Kind() == slog.KindString:
		return slog.String(a.Key, m.MaskString(v.String()))
	case v.Kind() == slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, m.MaskString(err.Error()))
		}
	}
	return a
}
