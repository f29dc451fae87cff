// Package zone maps a latitude to a USDA-style grow zone number. The lookup
// is a pure function over fixed, non-overlapping latitude bands.
package zone

import "math"

// ForLatitude returns the grow zone (1-13) for the given latitude. The sign
// of the latitude is ignored; zones shrink from 13 at the equator to 1 past
// 84 degrees. Each band spans 7 degrees; a value on a band boundary belongs
// to the band noted in the table below.
func ForLatitude(latitude float64) int {
	lat := math.Abs(latitude)

	switch {
	case lat < 7:
		return 13 // [0, 7)
	case lat < 14:
		return 12 // [7, 14)
	case lat < 21:
		return 11 // [14, 21)
	case lat < 28:
		return 10 // [21, 28)
	case lat <= 35:
		return 9 // [28, 35]
	case lat <= 42:
		return 8 // (35, 42]
	case lat <= 49:
		return 7 // (42, 49]
	case lat <= 56:
		return 6 // (49, 56]
	case lat <= 63:
		return 5 // (56, 63]
	case lat <= 70:
		return 4 // (63, 70]
	case lat <= 77:
		return 3 // (70, 77]
	case lat <= 84:
		return 2 // (77, 84]
	default:
		return 1
	}
}
