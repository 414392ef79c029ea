package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig limits one path pattern and method.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // bucket capacity, Limit when 0
	Group  string        // endpoints with the same group share one bucket per client
}

func (e *EndpointConfig) key(path string) string {
	if e.Group != "" {
		return e.Group
	}
	return path
}

// Paths of the quote-request endpoint.
const (
	QuotePath   = "/api/quote"
	NetlifyPath = "/.netlify/functions/"
	QuoteGroup  = "quote"
)

// DefaultConfig returns the built-in configuration with no environment overrides.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables over DefaultConfig.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))

	quoteLimit := getEnvInt("RATE_LIMIT_QUOTE_LIMIT", 5)
	quoteWindow := getEnvDuration("RATE_LIMIT_QUOTE_WINDOW", time.Hour)
	for i := range cfg.EndpointConfigs {
		cfg.EndpointConfigs[i].Limit = quoteLimit
		cfg.EndpointConfigs[i].Window = quoteWindow
		cfg.EndpointConfigs[i].Burst = min(cfg.EndpointConfigs[i].Burst, quoteLimit)
	}
	return cfg
}

// DefaultEndpointConfigs limits quote submissions. Both mounts share one bucket per
// client so a sender cannot double their allowance by alternating paths.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: QuotePath, Method: "POST", Limit: 5, Window: time.Hour, Burst: 3, Group: QuoteGroup},
		{Path: NetlifyPath, Method: "POST", Limit: 5, Window: time.Hour, Burst: 3, Group: QuoteGroup},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
