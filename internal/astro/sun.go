package astro

import (
	"math"
	"time"
)

// SolarMeanAnomaly returns the Sun's mean anomaly for d days since J2000.
func SolarMeanAnomaly(d float64) float64 {
	return Rad * (357.5291 + 0.98560028*d)
}

// EclipticLongitude returns the Sun's geocentric ecliptic longitude for mean
// anomaly m: equation of center plus the perihelion argument, turned by 180°.
func EclipticLongitude(m float64) float64 {
	// equation of center
	c := Rad * (1.9148*math.Sin(m) + 0.02*math.Sin(2*m) + 0.0003*math.Sin(3*m))
	// perihelion of the Earth
	p := Rad * 102.9372

	return m + c + p + math.Pi
}

// SunCoordinates returns the Sun's geocentric equatorial coordinates for d
// days since J2000. The Sun's ecliptic latitude is taken as zero.
func SunCoordinates(d float64) EquatorialCoord {
	m := SolarMeanAnomaly(d)
	l := EclipticLongitude(m)

	return EquatorialCoord{
		RA:  RightAscension(l, 0),
		Dec: Declination(l, 0),
	}
}

// SunPosition returns the Sun's azimuth and altitude at t for an observer at
// latDeg, lonDeg. No refraction is applied.
func SunPosition(t time.Time, latDeg, lonDeg float64) HorizontalPosition {
	lw := Rad * -lonDeg
	phi := Rad * latDeg
	d := DaysSinceJ2000(t)

	c := SunCoordinates(d)
	h := SiderealTime(d, lw) - c.RA

	return HorizontalPosition{
		Azimuth:  Azimuth(h, phi, c.Dec),
		Altitude: Altitude(h, phi, c.Dec),
	}
}
