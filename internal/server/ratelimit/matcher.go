package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig holds endpoint-specific rate limiting configuration.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per window; <= 0 means unlimited
	Window time.Duration
	Burst  int // burst capacity; defaults to Limit when <= 0
}

// MatchEndpoint finds the most specific config for a path and method. Exact
// path matches win over prefix matches; a config Path ending in "/" matches
// as a prefix. Returns nil when nothing matches.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are never limited.
	if path == "/health" {
		return &EndpointConfig{Path: path, Method: method, Limit: 0}
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != "" && cfg.Method != method {
			continue
		}
		if cfg.Path == path {
			return cfg
		}
		if strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) {
			if prefixMatch == nil || len(cfg.Path) > len(prefixMatch.Path) {
				prefixMatch = cfg
			}
		}
	}
	return prefixMatch
}
