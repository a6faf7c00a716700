package config

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Validate checks a loaded configuration.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendRedis:
		if strings.TrimSpace(c.Store.Host) == "" {
			return newFieldError("Store.Host", "required for redis backend")
		}
		if c.Store.Port <= 0 || c.Store.Port > 65535 {
			return newFieldError("Store.Port", "must be within 1-65535")
		}
	case BackendBigCache, BackendRistretto:
	default:
		return newFieldError("Store.Backend", "must be one of redis, bigcache, ristretto")
	}
	if c.Store.Timeout.DurationValue() <= 0 {
		return newFieldError("Store.Timeout", "must be positive")
	}
	if c.Store.DB < 0 {
		return newFieldError("Store.DB", "must not be negative")
	}
	if c.Memory.MaxCost < 0 {
		return newFieldError("Memory.MaxCost", "must not be negative")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return newFieldError("LogLevel", err.Error())
	}
	return nil
}
