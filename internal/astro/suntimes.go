package astro

import (
	"math"
	"time"
)

// Sun event names.
const (
	EventSolarNoon     = "solarNoon"
	EventNadir         = "nadir"
	EventSunrise       = "sunrise"
	EventSunset        = "sunset"
	EventSunriseEnd    = "sunriseEnd"
	EventSunsetStart   = "sunsetStart"
	EventDawn          = "dawn"
	EventDusk          = "dusk"
	EventNauticalDawn  = "nauticalDawn"
	EventNauticalDusk  = "nauticalDusk"
	EventNightEnd      = "nightEnd"
	EventNight         = "night"
	EventGoldenHourEnd = "goldenHourEnd"
	EventGoldenHour    = "goldenHour"
)

// j0 is the mean solar transit offset from the Julian cycle, in days.
const j0 = 0.0009

// EventThreshold names the morning and evening crossings of a solar altitude.
type EventThreshold struct {
	AngleDeg    float64
	MorningName string
	EveningName string
}

var defaultThresholds = [...]EventThreshold{
	{-0.833, EventSunrise, EventSunset},
	{-0.3, EventSunriseEnd, EventSunsetStart},
	{-6, EventDawn, EventDusk},
	{-12, EventNauticalDawn, EventNauticalDusk},
	{-18, EventNightEnd, EventNight},
	{6, EventGoldenHourEnd, EventGoldenHour},
}

// DefaultThresholds returns a copy of the canonical threshold catalog.
// Append to it and pass the result to SunTimesWith to add events.
func DefaultThresholds() []EventThreshold {
	out := make([]EventThreshold, len(defaultThresholds))
	copy(out, defaultThresholds[:])
	return out
}

// SunEvent is one solved solar event.
type SunEvent struct {
	Name string

	// JulianDay is NaN when the Sun never reaches the event's altitude on
	// this date at this latitude (polar day or night).
	JulianDay float64

	// Time is the zero time when Valid is false.
	Time  time.Time
	Valid bool
}

func newSunEvent(name string, jd float64) SunEvent {
	return SunEvent{
		Name:      name,
		JulianDay: jd,
		Time:      FromJulianDay(jd),
		Valid:     !math.IsNaN(jd),
	}
}

// SunTimesResult maps event names to solved events.
type SunTimesResult map[string]SunEvent

// Time returns the instant of the named event and whether it occurs.
func (r SunTimesResult) Time(name string) (time.Time, bool) {
	ev, ok := r[name]
	if !ok || !ev.Valid {
		return time.Time{}, false
	}
	return ev.Time, true
}

// SunTimes solves solar noon, nadir and every canonical threshold for the
// solar transit nearest t. heightM lowers the horizon for an elevated
// observer; a negative height yields NaN events.
func SunTimes(t time.Time, latDeg, lonDeg, heightM float64) SunTimesResult {
	return SunTimesWith(t, latDeg, lonDeg, heightM, defaultThresholds[:])
}

// SunTimesWith is SunTimes with a caller-supplied threshold catalog.
//
// The transit is a single analytic pass, not an iteration to convergence.
// Rise times mirror set times about solar noon.
func SunTimesWith(t time.Time, latDeg, lonDeg, heightM float64, thresholds []EventThreshold) SunTimesResult {
	lw := Rad * -lonDeg
	phi := Rad * latDeg
	dh := observerAngle(heightM)

	d := DaysSinceJ2000(t)
	n := julianCycle(d, lw)
	ds := approxTransit(0, lw, n)

	m := SolarMeanAnomaly(ds)
	l := EclipticLongitude(m)
	dec := Declination(l, 0)

	jNoon := solarTransitJ(ds, m, l)

	result := make(SunTimesResult, 2+2*len(thresholds))
	result[EventSolarNoon] = newSunEvent(EventSolarNoon, jNoon)
	result[EventNadir] = newSunEvent(EventNadir, jNoon-0.5)

	for _, th := range thresholds {
		h0 := (th.AngleDeg + dh) * Rad

		jSet := setJ(h0, lw, phi, dec, n, m, l)
		jRise := jNoon - (jSet - jNoon)

		result[th.MorningName] = newSunEvent(th.MorningName, jRise)
		result[th.EveningName] = newSunEvent(th.EveningName, jSet)
	}

	return result
}

// observerAngle is the dip of the horizon, in degrees, for an observer
// heightM meters above it.
func observerAngle(heightM float64) float64 {
	return -2.076 * math.Sqrt(heightM) / 60
}

// julianCycle picks the solar transit cycle nearest d. Halves round up.
func julianCycle(d, lw float64) float64 {
	return math.Floor(d - j0 - lw/(2*math.Pi) + 0.5)
}

func approxTransit(ht, lw, n float64) float64 {
	return j0 + (ht+lw)/(2*math.Pi) + n
}

func solarTransitJ(ds, m, l float64) float64 {
	return J2000 + ds + 0.0053*math.Sin(m) - 0.0069*math.Sin(2*l)
}

// hourAngle is NaN when the Sun never reaches altitude h at latitude phi.
func hourAngle(h, phi, dec float64) float64 {
	return math.Acos((math.Sin(h) - math.Sin(phi)*math.Sin(dec)) / (math.Cos(phi) * math.Cos(dec)))
}

// setJ returns the Julian Day the Sun sets through altitude h.
func setJ(h, lw, phi, dec, n, m, l float64) float64 {
	w := hourAngle(h, phi, dec)
	a := approxTransit(w, lw, n)
	return solarTransitJ(a, m, l)
}
