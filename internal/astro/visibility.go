package astro

import (
	"math"
)

// quadratic is the parabola through three equally spaced samples taken at
// x = -1, 0, +1.
type quadratic struct {
	a, b, c float64
}

func fitQuadratic(y0, y1, y2 float64) quadratic {
	return quadratic{
		a: (y0+y2)/2 - y1,
		b: (y2 - y0) / 2,
		c: y1,
	}
}

// vertex returns the extremum. A degenerate fit (a == 0) yields non-finite values.
func (q quadratic) vertex() (xe, ye float64) {
	xe = -q.b / (2 * q.a)
	ye = (q.a*xe+q.b)*xe + q.c
	return xe, ye
}

// roots returns the zeros of the parabola and how many of them fall within
// [-1, 1]. When the discriminant is negative no roots are computed. A lower
// root left of the window is replaced by the upper one, so x1 always holds
// the in-window root when exactly one exists.
func (q quadratic) roots() (x1, x2 float64, inWindow int) {
	disc := q.b*q.b - 4*q.a*q.c
	if disc < 0 {
		return 0, 0, 0
	}

	xe, _ := q.vertex()
	dx := math.Sqrt(disc) / (math.Abs(q.a) * 2)
	x1 = xe - dx
	x2 = xe + dx

	if math.Abs(x1) <= 1 {
		inWindow++
	}
	if math.Abs(x2) <= 1 {
		inWindow++
	}
	if x1 < -1 {
		x1 = x2
	}
	return x1, x2, inWindow
}

// DaylightPhaseKind classifies the sky by the Sun's altitude.
type DaylightPhaseKind int

const (
	Night                DaylightPhaseKind = iota // below -18°
	AstronomicalTwilight                          // -18° to -12°
	NauticalTwilight                              // -12° to -6°
	CivilTwilight                                 // -6° to -0.833°
	GoldenHour                                    // -0.833° to 6°
	Day                                           // 6° and above
)

// String returns the phase name.
func (k DaylightPhaseKind) String() string {
	switch k {
	case Night:
		return "night"
	case AstronomicalTwilight:
		return "astronomical twilight"
	case NauticalTwilight:
		return "nautical twilight"
	case CivilTwilight:
		return "civil twilight"
	case GoldenHour:
		return "golden hour"
	case Day:
		return "day"
	default:
		return "unknown"
	}
}

// DaylightPhase classifies a solar altitude (radians) using the canonical
// threshold angles.
func DaylightPhase(altitude float64) DaylightPhaseKind {
	deg := RadToDeg(altitude)
	switch {
	case deg >= 6:
		return Day
	case deg >= -0.833:
		return GoldenHour
	case deg >= -6:
		return CivilTwilight
	case deg >= -12:
		return NauticalTwilight
	case deg >= -18:
		return AstronomicalTwilight
	default:
		return Night
	}
}

// AltitudeTier categorizes altitude for display.
type AltitudeTier int

const (
	AltitudeNone   AltitudeTier = iota // Below horizon
	AltitudeLow                        // 0-15 degrees
	AltitudeMedium                     // 15-45 degrees
	AltitudeHigh                       // 45+ degrees
)

// GetAltitudeTier returns the tier for an altitude in radians.
func GetAltitudeTier(altitude float64) AltitudeTier {
	deg := RadToDeg(altitude)
	switch {
	case deg <= 0:
		return AltitudeNone
	case deg < 15:
		return AltitudeLow
	case deg < 45:
		return AltitudeMedium
	default:
		return AltitudeHigh
	}
}
