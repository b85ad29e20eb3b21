package constants

import "errors"

// Configuration errors.
var (
	ErrEndpointRequired    = errors.New("API endpoint is required")
	ErrConfigRequired      = errors.New("config is required")
	ErrNoEndpointForConfig = errors.New("no API endpoint configured")
	ErrNotAuthenticated    = errors.New("not authenticated, use 'giantswarm login' first")
)

// Cache errors.
var (
	ErrCacheKeyNotFound = errors.New("key not found")
	ErrCacheEntryExpire = errors.New("entry expired")
	ErrCacheValueTooBig = errors.New("cache value exceeds maximum size")
	ErrEmptyCacheKey    = errors.New("cache key must not be empty")
	ErrNATSURLRequired  = errors.New("NATS URL is required")
	ErrSQLitePathEmpty  = errors.New("SQLite path is required")
)

// Environment store errors.
var (
	ErrEnvironmentNameRequired = errors.New("environment name is required")
	ErrCompanyNameRequired     = errors.New("company name is required")
)

// Response payload errors.
var (
	ErrTokenMissing = errors.New("could not find token in response")
	ErrPingFailed   = errors.New("unexpected ping response")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidCount        = errors.New("count must be a positive integer")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
)
