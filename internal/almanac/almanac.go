// Package almanac assembles the Sun and Moon computations for one observer
// and instant into a Report, the unit every front end (CLI, TUI, HTTP API)
// renders.
package almanac

import (
	"math"
	"sort"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Observer is a named ground location.
type Observer struct {
	Name string
	astro.GeoObserver
}

// NewObserver returns an observer at latDeg, lonDeg, heightM.
func NewObserver(name string, latDeg, lonDeg, heightM float64) Observer {
	return Observer{
		Name:        name,
		GeoObserver: astro.GeoObserver{LatDeg: latDeg, LonDeg: lonDeg, HeightM: heightM},
	}
}

// Options controls how a Report is built.
type Options struct {
	// Location is used for display and, unless UTCMidnight is set, as the
	// day boundary for moon rise/set. nil means UTC.
	Location *time.Location

	// UTCMidnight starts the moon rise/set day at UTC midnight.
	UTCMidnight bool

	// Thresholds replaces the sun event catalog. nil uses the defaults.
	Thresholds []astro.EventThreshold
}

// Polar conditions reported when the Sun does not rise or set.
const (
	PolarNone  = ""
	PolarDay   = "polar day"
	PolarNight = "polar night"
)

// Report is the full almanac for one observer at one instant.
type Report struct {
	Observer Observer
	Time     time.Time
	Location *time.Location

	Sun          astro.HorizontalPosition
	SunTimes     astro.SunTimesResult
	Daylight     astro.DaylightPhaseKind
	Moon         astro.LunarPosition
	MoonTimes    astro.MoonTimesResult
	Illumination astro.Illumination

	// Elongation is the Sun–Moon angular separation in radians.
	Elongation float64
}

// Build computes a Report for obs at t.
func Build(obs Observer, t time.Time, opts Options) Report {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	thresholds := opts.Thresholds
	if thresholds == nil {
		thresholds = astro.DefaultThresholds()
	}

	sun := astro.SunPosition(t, obs.LatDeg, obs.LonDeg)
	d := astro.DaysSinceJ2000(t)
	sunEq := astro.SunCoordinates(d)
	moonEq := astro.MoonCoordinates(d)

	return Report{
		Observer:     obs,
		Time:         t,
		Location:     loc,
		Sun:          sun,
		SunTimes:     astro.SunTimesWith(t, obs.LatDeg, obs.LonDeg, obs.HeightM, thresholds),
		Daylight:     astro.DaylightPhase(sun.Altitude),
		Moon:         astro.MoonPosition(t, obs.LatDeg, obs.LonDeg),
		MoonTimes:    astro.MoonTimes(t.In(loc), obs.LatDeg, obs.LonDeg, opts.UTCMidnight),
		Illumination: astro.MoonIllumination(t),
		Elongation:   astro.AngularSeparation(sunEq, moonEq.EquatorialCoord),
	}
}

// SunEvents returns the events that occur, in chronological order.
func (r Report) SunEvents() []astro.SunEvent {
	events := make([]astro.SunEvent, 0, len(r.SunTimes))
	for _, ev := range r.SunTimes {
		if ev.Valid {
			events = append(events, ev)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].JulianDay == events[j].JulianDay {
			return events[i].Name < events[j].Name
		}
		return events[i].JulianDay < events[j].JulianDay
	})
	return events
}

// MissingSunEvents returns the names of events the Sun never reaches on
// this date, sorted by name.
func (r Report) MissingSunEvents() []string {
	var names []string
	for name, ev := range r.SunTimes {
		if !ev.Valid {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// DayLength returns the time between sunrise and sunset. ok is false when
// either is missing.
func (r Report) DayLength() (d time.Duration, ok bool) {
	rise, okRise := r.SunTimes.Time(astro.EventSunrise)
	set, okSet := r.SunTimes.Time(astro.EventSunset)
	if !okRise || !okSet {
		return 0, false
	}
	return set.Sub(rise), true
}

// Polar reports whether the Sun stays up or down all day. The Sun's
// altitude at solar noon decides between the two. An observer below the
// horizon plane has no horizon dip, so every event is missing without any
// polar geometry; that reports PolarNone.
func (r Report) Polar() string {
	if !(r.Observer.HeightM >= 0) {
		return PolarNone
	}
	if _, ok := r.SunTimes.Time(astro.EventSunrise); ok {
		return PolarNone
	}
	noon, ok := r.SunTimes.Time(astro.EventSolarNoon)
	if !ok {
		return PolarNone
	}
	alt := astro.SunPosition(noon, r.Observer.LatDeg, r.Observer.LonDeg).Altitude
	if math.IsNaN(alt) {
		return PolarNone
	}
	if astro.RadToDeg(alt) > -0.833 {
		return PolarDay
	}
	return PolarNight
}

// PhaseName returns the Moon's phase name.
func (r Report) PhaseName() string {
	return PhaseName(r.Illumination)
}
