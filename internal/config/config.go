// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Plantarium Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for plantarium.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the Unsplash API access
	// key and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence layer: the
	// SQLite database, the filter-state slot and the bundled seed file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds configuration for the outbound Unsplash search client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Gallery holds settings of the paged photo search.
	Gallery Gallery `envPrefix:"GALLERY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// UnsplashAccessKey is the client_id sent with every Unsplash search
	// request. A missing key is a caller-side misconfiguration: the photo
	// client refuses to start without it.
	// Env: APP_UNSPLASH_ACCESS_KEY
	UnsplashAccessKey string `env:"UNSPLASH_ACCESS_KEY"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration of the local persistence layer.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`

	// StateFile is the path of the JSON slot persisting the selected
	// grow-zone filter across restarts.
	// Env: STORAGE_STATE_FILE
	StateFile string `env:"STATE_FILE"`

	// SeedFile is the path of the bundled JSON file holding the initial
	// plant catalog, loaded once when the store is first created.
	// Env: STORAGE_SEED_FILE
	SeedFile string `env:"SEED_FILE"`
}

// DB holds connection settings for the embedded database.
type DB struct {
	// DSN is the SQLite file path (e.g. "plantarium.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds configuration for the outbound Unsplash client.
type Adapter struct {
	// BaseURL is the Unsplash API root (e.g. "https://api.unsplash.com").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// search request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Gallery holds settings of the paged photo search.
type Gallery struct {
	// PageSize is the per_page value sent to the search endpoint.
	// Env: GALLERY_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
