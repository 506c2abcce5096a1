package ratelimit

import (
	"net/http"
	"time"
)

// EndpointConfig is the limit applied to one route.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per window; 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig is a permissive global limit with a strict narrative endpoint.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(10, time.Hour, 3),
	}
}

// DefaultEndpointConfigs limits the routes that call the language model.
// /api/analyze always reaches the model; /api/diagnosis may when a narrative is asked for.
func DefaultEndpointConfigs(analyzeLimit int, analyzeWindow time.Duration, analyzeBurst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/analyze", Method: http.MethodPost, Limit: analyzeLimit, Window: analyzeWindow, Burst: analyzeBurst},
		{Path: "/api/diagnosis", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// IPSet builds a lookup set from a list of client addresses.
func IPSet(ips []string) map[string]bool {
	set := make(map[string]bool, len(ips))
	for _, ip := range ips {
		if ip != "" {
			set[ip] = true
		}
	}
	return set
}
