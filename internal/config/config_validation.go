// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Plantarium Authors

package config

import "fmt"

// validate checks the assembled client config after defaults have been
// applied. The Unsplash access key is deliberately not required here: the
// photo client performs its own check so that store-only usage stays
// possible without a key.
func (c *ClientConfig) validate() error {
	if c.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database path", ErrInvalidStorageConfigs)
	}
	if c.Storage.StateFile == "" {
		return fmt.Errorf("%w: empty state file path", ErrInvalidStorageConfigs)
	}
	if c.Adapter.BaseURL == "" {
		return fmt.Errorf("%w: empty base URL", ErrInvalidAdapterConfigs)
	}
	if c.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: non-positive request timeout", ErrInvalidAdapterConfigs)
	}
	if c.Gallery.PageSize <= 0 {
		return fmt.Errorf("%w: non-positive page size", ErrInvalidGalleryConfigs)
	}

	return nil
}
