// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Plantarium Authors

package models

import "fmt"

// UnsplashPhoto is one photo returned by the Unsplash search endpoint. Photos
// are never persisted locally; they live only inside a gallery session's page
// cache.
type UnsplashPhoto struct {
	ID   string            `json:"id"`
	URLs UnsplashPhotoURLs `json:"urls"`
	User UnsplashUser      `json:"user"`
}

// UnsplashPhotoURLs holds the photo image variants by size.
type UnsplashPhotoURLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// UnsplashUser identifies the photographer who owns a photo.
type UnsplashUser struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// AttributionURL returns the photographer's profile link with the referral
// parameters required by the Unsplash API guidelines.
func (u UnsplashUser) AttributionURL() string {
	return fmt.Sprintf("https://unsplash.com/%s?utm_source=plantarium&utm_medium=referral", u.Username)
}

// UnsplashSearchResponse is the JSON body of one search page.
type UnsplashSearchResponse struct {
	Results    []UnsplashPhoto `json:"results"`
	TotalPages int             `json:"total_pages"`
}
