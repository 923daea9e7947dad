// Package astro provides a low-precision solar and lunar ephemeris: Sun and
// Moon positions, sunrise/sunset and twilight times, lunar rise/set and the
// Moon's illumination.
//
// Every function is a pure computation of its arguments. Angles are radians
// unless a name says otherwise (LatDeg, AngleDeg, ...). Geometrically
// impossible events are reported through NaN Julian Days, never through errors.
package astro

import (
	"math"
	"time"
)

// Time scale constants.
const (
	DayMs = 1000 * 60 * 60 * 24 // milliseconds per day
	J1970 = 2440588.0           // Julian Day at 1970-01-01 12:00 UTC
	J2000 = 2451545.0           // Julian Day at 2000-01-01 12:00 UTC (J2000.0)
)

// ToJulianDay converts an instant to a fractional Julian Day.
// Sub-millisecond precision is discarded.
func ToJulianDay(t time.Time) float64 {
	return float64(t.UnixMilli())/DayMs - 0.5 + J1970
}

// FromJulianDay converts a fractional Julian Day to a UTC instant rounded to
// the nearest millisecond. NaN and infinite days have no instant and map to
// the zero time; callers that care must check the day first.
func FromJulianDay(jd float64) time.Time {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return time.Time{}
	}
	ms := (jd + 0.5 - J1970) * DayMs
	return time.UnixMilli(int64(math.Round(ms))).UTC()
}

// DaysSinceJ2000 returns the number of days (fractional) since J2000.0.
func DaysSinceJ2000(t time.Time) float64 {
	return ToJulianDay(t) - J2000
}

// hoursLater offsets t by a fractional number of hours at millisecond
// resolution.
func hoursLater(t time.Time, h float64) time.Time {
	return time.UnixMilli(t.UnixMilli() + int64(h*DayMs/24)).UTC()
}
