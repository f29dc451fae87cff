// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Plantarium Authors

// Package adapter holds the outbound integration with the Unsplash search
// endpoint: the HTTP client and the cursor-keyed page source layered on top
// of it.
package adapter

import (
	"context"

	"github.com/plantarium-app/plantarium/models"
)

// PhotoSearcher fetches one page of photo search results from the remote
// service.
type PhotoSearcher interface {
	// SearchPhotos performs GET /search/photos for the given query, 1-based
	// page number and page size.
	SearchPhotos(ctx context.Context, query string, page, perPage int) (models.UnsplashSearchResponse, error)
}
