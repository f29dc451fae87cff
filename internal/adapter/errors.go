// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Plantarium Authors

package adapter

import "errors"

var (
	// ErrMissingAccessKey is returned by [NewUnsplashClient] when no API
	// access key is configured. This is a caller-side misconfiguration, not
	// a page-load failure.
	ErrMissingAccessKey = errors.New("unsplash access key is not configured")

	// ErrLoadFailed wraps any remote page fetch failure: network error,
	// non-2xx status or a body that cannot be decoded. The underlying cause
	// is carried verbatim. Loads are not retried automatically; the caller
	// may retry by re-requesting the same page.
	ErrLoadFailed = errors.New("page load failed")
)
