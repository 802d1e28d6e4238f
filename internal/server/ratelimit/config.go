package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultEndpointConfigs returns the per-endpoint limits for the API.
// Expensive endpoints (assessment submission triggers LLM report generation)
// get tight limits; cheap reads are generous.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Auth endpoints: strict, to slow credential stuffing.
		{Path: "/auth/register", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/auth/login", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/v1/auth/password", Method: "PUT", Limit: 5, Window: time.Hour, Burst: 2},

		// Assessment submission fans out LLM calls; hold it down hard.
		{Path: "/v1/assessments", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},

		// Read endpoints.
		{Path: "/v1/assessments/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 30},
		{Path: "/v1/reports/", Method: "GET", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/v1/notifications", Method: "GET", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/v1/notifications/", Method: "GET", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/v1/notifications/preferences", Method: "PUT", Limit: 30, Window: time.Minute, Burst: 10},
	}
}

// LoadConfigFromEnv builds a limiter Config from environment variables,
// falling back to sensible defaults.
//
//	RATE_LIMIT_ENABLED           (default true)
//	RATE_LIMIT_DEFAULT_LIMIT     (default 300)
//	RATE_LIMIT_DEFAULT_WINDOW    (default 1m)
//	RATE_LIMIT_CLEANUP_INTERVAL  (default 5m)
//	RATE_LIMIT_WHITELIST         comma-separated client IDs
//	RATE_LIMIT_BLACKLIST         comma-separated client IDs
func LoadConfigFromEnv() *Config {
	return &Config{
		Enabled:         getEnvBool("RATE_LIMIT_ENABLED", true),
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseIPList(value string) map[string]bool {
	list := make(map[string]bool)
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			list[entry] = true
		}
	}
	return list
}
