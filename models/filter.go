// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Plantarium Authors

package models

// NoGrowZone is the sentinel grow-zone value meaning "no zone filter".
const NoGrowZone = -1

// FilterState is the pair of independent plant-list filter inputs. Only the
// grow zone survives a restart; the search query always starts empty.
type FilterState struct {
	GrowZone    int
	SearchQuery string
}

// IsFiltered reports whether a grow-zone filter is active.
func (f FilterState) IsFiltered() bool {
	return f.GrowZone != NoGrowZone
}
