package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid outbound client settings
	// (for example, missing base URL or non-positive request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an empty database or state file path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidGalleryConfigs indicates invalid photo search settings
	// (for example, a non-positive page size).
	ErrInvalidGalleryConfigs = errors.New("invalid gallery configuration")
)
