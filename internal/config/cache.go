package config

import (
    "strings"
    "time"
)

// CacheConfig defines settings for the section response cache.  When Enabled
// is false or no Redis client is configured, caching is disabled and the
// section endpoints always hit the remote event API.  Methods lists the HTTP
// methods to cache.  TTL bounds how stale a section view may be.  KeyStrategy
// decides which parts of the request contribute to the key ("route_query"
// keeps event_id and merchant_id apart).  Prefix namespaces the keys and
// MaxBodyBytes caps the size of a cached body.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables.  Defaults are used when variables
// are not set.  All methods are upper-cased.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       envStr("CACHE_PREFIX", "fest:sections"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range splitList(s) {
        m[strings.ToUpper(p)] = true
    }
    return m
}
