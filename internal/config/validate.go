package config

import (
	"fmt"
	"slices"
	"strings"
)

// MaxBatchOperations is the hard ceiling for batch.max_operations.
const MaxBatchOperations = 1000

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if c.Server.BatchRateLimit < 0 {
		return fmt.Errorf("server.batch_rate_limit must be >= 0 (got %d)", c.Server.BatchRateLimit)
	}

	if err := c.Batch.validate(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	if c.Redis.Enabled() && strings.TrimSpace(c.Redis.Channel) == "" {
		return fmt.Errorf("redis.channel is required when redis.url is set")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	if !slices.Contains([]string{"json", "text"}, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (b *BatchConfig) validate() error {
	if b.MaxOperations < 1 || b.MaxOperations > MaxBatchOperations {
		return fmt.Errorf("max_operations must be between 1 and %d (got %d)", MaxBatchOperations, b.MaxOperations)
	}
	return nil
}

// SplitList splits a comma-separated setting, trimming blanks.
func SplitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
