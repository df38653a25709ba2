package config

import "errors"

var (
	// ErrRootRequired is returned when no icon root is configured
	ErrRootRequired = errors.New("icons root is required")

	// ErrBaseNameRequired is returned when no base collection name is configured
	ErrBaseNameRequired = errors.New("icons base name is required")

	// ErrPrefixRequired is returned when the class prefix is empty
	ErrPrefixRequired = errors.New("preset prefix is required")

	// ErrInvalidScale is returned when the icon scale is not positive
	ErrInvalidScale = errors.New("preset scale must be positive")

	// ErrOutputRequired is returned when no output directory is configured
	ErrOutputRequired = errors.New("output dir is required")

	// ErrInvalidCacheType is returned for an unknown cache type
	ErrInvalidCacheType = errors.New("invalid cache type (allowed: none, memory, leveldb, redis)")

	// ErrRedisAddrRequired is returned when the redis cache has no address
	ErrRedisAddrRequired = errors.New("redis address is required when cache type is redis")

	// ErrInvalidDebounce is returned when the watch debounce is not a duration
	ErrInvalidDebounce = errors.New("invalid watch debounce")

	// ErrInvalidColor is returned when a configured colour cannot be parsed
	ErrInvalidColor = errors.New("invalid colour")

	// ErrConfigFileNotFound is returned when config file is not found
	ErrConfigFileNotFound = errors.New("configuration file not found")
)
