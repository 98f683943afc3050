package helpers

import (
	"strings"
	"time"

	"github.com/yigit/unicampus/internal/pkg/logger"
)

// ParseDuration reads a configured duration such as a cache TTL. Blank input
// quietly yields fallback; unparsable or non-positive values are logged and
// also yield fallback.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str("value", value).Dur("fallback", fallback).Msg("Invalid duration, using fallback")
		return fallback
	}
	return d
}
