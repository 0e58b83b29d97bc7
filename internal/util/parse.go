package util

import (
	"strconv"
	"strings"
)

// ParseBoolDefaultFalse interprets loose HTTP query booleans: only explicit
// truthy values count, everything else (including absent) is false.
func ParseBoolDefaultFalse(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// ParseBoolDefaultTrue is the inverse: only explicit falsy values count.
func ParseBoolDefaultTrue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "false", "0", "no":
		return false
	default:
		return true
	}
}

// ParseIntDefault returns the parsed value, or the default when the input
// is absent, non-numeric, or negative.
func ParseIntDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return defaultValue
	}
	return v
}
