package astro

import (
	"math"
)

// Rad converts degrees to radians when multiplied.
const Rad = math.Pi / 180

// Obliquity is the obliquity of the ecliptic, fixed at its J2000 value.
const Obliquity = Rad * 23.4397

// GeoObserver is a ground observer.
type GeoObserver struct {
	LatDeg  float64 // latitude in degrees (north positive)
	LonDeg  float64 // longitude in degrees (east positive)
	HeightM float64 // height above the local horizon in meters
}

// EquatorialCoord holds geocentric equatorial coordinates of date, in radians.
type EquatorialCoord struct {
	RA  float64 // right ascension
	Dec float64 // declination
}

// HorizontalPosition holds an observer-relative position, in radians.
//
// Azimuth is measured from south, increasing toward the west. Use
// AzimuthFromNorth for a compass bearing.
type HorizontalPosition struct {
	Azimuth  float64
	Altitude float64
}

// LunarGeocentric is the Moon's geocentric equatorial position and distance.
type LunarGeocentric struct {
	EquatorialCoord
	DistanceKm float64
}

// RightAscension converts ecliptic longitude l and latitude b to right ascension.
func RightAscension(l, b float64) float64 {
	return math.Atan2(math.Sin(l)*math.Cos(Obliquity)-math.Tan(b)*math.Sin(Obliquity), math.Cos(l))
}

// Declination converts ecliptic longitude l and latitude b to declination.
func Declination(l, b float64) float64 {
	return math.Asin(math.Sin(b)*math.Cos(Obliquity) + math.Cos(b)*math.Sin(Obliquity)*math.Sin(l))
}

// Azimuth returns the south-origin azimuth for hour angle h at latitude phi
// of a body at declination dec.
func Azimuth(h, phi, dec float64) float64 {
	return math.Atan2(math.Sin(h), math.Cos(h)*math.Sin(phi)-math.Tan(dec)*math.Cos(phi))
}

// Altitude returns the geometric altitude for hour angle h at latitude phi
// of a body at declination dec.
func Altitude(h, phi, dec float64) float64 {
	return math.Asin(math.Sin(phi)*math.Sin(dec) + math.Cos(phi)*math.Cos(dec)*math.Cos(h))
}

// SiderealTime returns the local sidereal angle for d days since J2000 and
// west longitude lw (radians, west positive).
func SiderealTime(d, lw float64) float64 {
	return Rad*(280.16+360.9856235*d) - lw
}

// AstroRefraction returns the refraction correction (radians) to add to a
// geometric altitude h. Negative altitudes are evaluated at the horizon,
// which keeps the denominator away from its pole at h = -0.08901179.
//
// Meeus, Astronomical Algorithms, formula 16.4, converted to radians.
func AstroRefraction(h float64) float64 {
	if h < 0 {
		h = 0
	}
	return 0.0002967 / math.Tan(h+0.00312536/(h+0.08901179))
}

// AzimuthFromNorth remaps a south-origin, west-increasing azimuth to a
// north-origin, east-increasing bearing in [0, 2π).
func AzimuthFromNorth(az float64) float64 {
	return normalizeAngle(az + math.Pi)
}

// AngularSeparation returns the great-circle angle between two equatorial
// positions, from the spherical law of cosines.
func AngularSeparation(a, b EquatorialCoord) float64 {
	c := math.Sin(a.Dec)*math.Sin(b.Dec) + math.Cos(a.Dec)*math.Cos(b.Dec)*math.Cos(a.RA-b.RA)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// normalizeAngle normalizes an angle to [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * Rad
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad / Rad
}
