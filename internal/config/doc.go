// Package config assembles the application configuration from environment
// variables, command-line flags and an optional JSON file, merged in that
// order (first non-zero value wins) and reduced to the typed client view
// consumed by the rest of the application.
package config
