package ratelimit

import "strings"

// exempt lists endpoints that are never rate limited.
var exempt = map[string]string{
	"/health": "GET",
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Exact paths win over prefixes; the longest matching prefix wins among prefixes.
// Returns nil when nothing matches.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if m, ok := exempt[path]; ok && m == method {
		return &EndpointConfig{Path: path, Method: method}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method && c.Method != "*" {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}
