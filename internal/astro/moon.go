package astro

import (
	"math"
	"time"
)

// LunarPosition is the Moon as seen by an observer.
type LunarPosition struct {
	HorizontalPosition         // Altitude includes refraction
	DistanceKm         float64 // geocentric distance
	ParallacticAngle   float64 // radians
}

// MoonCoordinates returns the Moon's geocentric equatorial coordinates and
// distance for d days since J2000, from the leading terms of the lunar theory.
func MoonCoordinates(d float64) LunarGeocentric {
	L := Rad * (218.316 + 13.176396*d) // mean longitude
	M := Rad * (134.963 + 13.064993*d) // mean anomaly
	F := Rad * (93.272 + 13.229350*d)  // mean distance

	l := L + Rad*6.289*math.Sin(M) // longitude
	b := Rad * 5.128 * math.Sin(F) // latitude
	dist := 385001 - 20905*math.Cos(M)

	return LunarGeocentric{
		EquatorialCoord: EquatorialCoord{
			RA:  RightAscension(l, b),
			Dec: Declination(l, b),
		},
		DistanceKm: dist,
	}
}

// MoonPosition returns the Moon's azimuth, refraction-corrected altitude,
// distance and parallactic angle at t for an observer at latDeg, lonDeg.
func MoonPosition(t time.Time, latDeg, lonDeg float64) LunarPosition {
	lw := Rad * -lonDeg
	phi := Rad * latDeg
	d := DaysSinceJ2000(t)

	c := MoonCoordinates(d)
	h := SiderealTime(d, lw) - c.RA
	alt := Altitude(h, phi, c.Dec)

	// Meeus, Astronomical Algorithms, formula 14.1
	pa := math.Atan2(math.Sin(h), math.Tan(phi)*math.Cos(c.Dec)-math.Sin(c.Dec)*math.Cos(h))

	return LunarPosition{
		HorizontalPosition: HorizontalPosition{
			Azimuth:  Azimuth(h, phi, c.Dec),
			Altitude: alt + AstroRefraction(alt),
		},
		DistanceKm:       c.DistanceKm,
		ParallacticAngle: pa,
	}
}
