package nmea

import (
	"fmt"
	"math"
	"time"
)

// utcTime renders the wall clock as HHMMSS in UTC.
func utcTime(t time.Time) string {
	return t.UTC().Format("150405")
}

// utcDate renders the date as DDMMYY in UTC.
func utcDate(t time.Time) string {
	return t.UTC().Format("020106")
}

// FormatCoordinate converts a signed decimal-degree value into NMEA
// degrees-minutes form. Degrees are zero-padded to degreeWidth (2 for
// latitude, 3 for longitude); minutes carry exactly four decimal
// digits with no leading zero-padding. Zero counts as positive, so
// the returned hemisphere is pos for value >= 0 and neg otherwise.
func FormatCoordinate(value float64, degreeWidth int, pos, neg string) (string, string) {
	hemi := pos
	if value < 0 {
		hemi = neg
	}
	mag := math.Abs(value)
	deg := int(mag)
	min := math.Round((mag-float64(deg))*60*1e4) / 1e4
	// Rounding to four decimals can reach 60 minutes exactly; carry
	// the overflow into the degrees field.
	if min >= 60 {
		min -= 60
		deg++
	}
	return fmt.Sprintf("%0*d%.4f", degreeWidth, deg, min), hemi
}
