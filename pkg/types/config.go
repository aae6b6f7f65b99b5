// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration types shared by the robotool
// packages and the CLI.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "robotool/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retry attempts for throttled or
	// transiently failing requests (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CacheConfig holds settings for the jar cache.
type CacheConfig struct {
	HTTPConfig `yaml:",inline"`

	// Dir is the cache base directory. Empty means the platform user
	// cache directory plus "robotool" (overridable with
	// ROBOTOOL_CACHE_DIR).
	Dir string `json:"dir" yaml:"dir"`

	// Version is the ROBOT release to download and run (default 1.9.8).
	Version string `json:"version" yaml:"version"`
}

// RunnerConfig holds settings for invoking ROBOT.
type RunnerConfig struct {
	// Java is the runtime launcher binary (default "java").
	Java string `json:"java" yaml:"java"`

	// PreviewLength bounds the stdout/stderr previews carried by
	// invocation errors (default 500 characters).
	PreviewLength int `json:"preview_length" yaml:"preview_length"`
}

// HistoryConfig holds settings for the invocation ledger.
type HistoryConfig struct {
	// DBPath is the SQLite database path. Empty disables recording.
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults caps the rows returned by history listings (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all robotool settings.
type Config struct {
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Runner  RunnerConfig  `json:"runner" yaml:"runner"`
	History HistoryConfig `json:"history" yaml:"history"`
}
