package domain

import "errors"

var (
	// ErrInvalidArgument is returned when an undertone, depth or tier is outside its domain
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidRequest is returned when request parameters are missing or malformed
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNotFound is returned when a saved foundation or remote resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrCatalogInvalid is returned when catalog data fails validation
	ErrCatalogInvalid = errors.New("invalid catalog")

	// ErrCatalogFeedFailure is returned when the remote catalog feed cannot be read
	ErrCatalogFeedFailure = errors.New("catalog feed request failed")
)
