package astro

import (
	"math"
	"time"
)

// SunDistanceKm is the mean Earth–Sun distance used for the phase angle.
const SunDistanceKm = 149598000.0

// Illumination describes the lit part of the Moon.
type Illumination struct {
	Fraction float64 // illuminated fraction, 0 = new, 1 = full
	Phase    float64 // 0 = new, 0.25 = first quarter, 0.5 = full, 0.75 = last quarter
	Angle    float64 // midpoint angle of the bright limb, radians; negative while waxing
}

// Waxing reports whether the lit fraction is growing.
func (il Illumination) Waxing() bool {
	return il.Angle < 0
}

// MoonIllumination returns the Moon's illumination at t. It is independent
// of the observer.
//
// Meeus, Astronomical Algorithms, chapter 48.
func MoonIllumination(t time.Time) Illumination {
	d := DaysSinceJ2000(t)
	s := SunCoordinates(d)
	m := MoonCoordinates(d)

	phi := AngularSeparation(s, m.EquatorialCoord) // elongation
	inc := math.Atan2(SunDistanceKm*math.Sin(phi), m.DistanceKm-SunDistanceKm*math.Cos(phi))
	angle := math.Atan2(math.Cos(s.Dec)*math.Sin(s.RA-m.RA),
		math.Sin(s.Dec)*math.Cos(m.Dec)-math.Cos(s.Dec)*math.Sin(m.Dec)*math.Cos(s.RA-m.RA))

	sign := 1.0
	if angle < 0 {
		sign = -1
	}

	return Illumination{
		Fraction: (1 + math.Cos(inc)) / 2,
		Phase:    0.5 + 0.5*inc*sign/math.Pi,
		Angle:    angle,
	}
}
