package ratelimit

import (
	"strings"
)

// unlimited is returned for requests that never consume tokens.
var unlimited = EndpointConfig{}

// MatchEndpoint returns the configuration for path and method, or nil to use the default.
// Health checks and static card assets (GET/HEAD) are unlimited. Exact paths win over
// prefixes ending in "/".
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" || method == "HEAD" || method == "OPTIONS" {
		if path == "/health" || !strings.HasPrefix(path, "/api/") {
			u := unlimited
			return &u
		}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
