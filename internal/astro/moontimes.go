package astro

import (
	"time"
)

// moonHorizonDip is the Moon's rise/set altitude offset, independent of
// observer height.
const moonHorizonDip = 0.133 * Rad

// MoonTimesResult holds lunar rise and set for one day. Exactly one of
// {HasRise or HasSet} or {AlwaysUp or AlwaysDown} is set.
type MoonTimesResult struct {
	Rise       time.Time
	Set        time.Time
	HasRise    bool
	HasSet     bool
	AlwaysUp   bool // Moon stayed above the horizon all day
	AlwaysDown bool // Moon stayed below the horizon all day
}

// MoonTimes finds moonrise and moonset during the day containing t. The day
// starts at UTC midnight when inUTC is set, otherwise at midnight in t's
// location.
//
// The Moon's altitude is sampled hourly and scanned in two-hour windows;
// each window is fitted with a parabola whose zeros mark horizon crossings.
// Scanning stops at the first window by which both a rise and a set have
// been seen. Returned instants are UTC at millisecond resolution.
func MoonTimes(t time.Time, latDeg, lonDeg float64, inUTC bool) MoonTimesResult {
	loc := t.Location()
	if inUTC {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	altitudeAt := func(hours float64) float64 {
		return MoonPosition(hoursLater(start, hours), latDeg, lonDeg).Altitude - moonHorizonDip
	}

	var (
		res       MoonTimesResult
		rise, set float64
		ye        float64
	)

	h0 := altitudeAt(0)
	for i := 1.0; i <= 24; i += 2 {
		h1 := altitudeAt(i)
		h2 := altitudeAt(i + 1)

		w := classifyWindow(h0, h1, h2)
		ye = w.ye
		if w.hasRise {
			rise = i + w.rise
			res.HasRise = true
		}
		if w.hasSet {
			set = i + w.set
			res.HasSet = true
		}

		if res.HasRise && res.HasSet {
			break
		}

		h0 = h2
	}

	if res.HasRise {
		res.Rise = hoursLater(start, rise)
	}
	if res.HasSet {
		res.Set = hoursLater(start, set)
	}
	if !res.HasRise && !res.HasSet {
		if ye > 0 {
			res.AlwaysUp = true
		} else {
			res.AlwaysDown = true
		}
	}

	return res
}

// windowCrossings holds the horizon crossings of one scan window as offsets
// in [-1, 1] from the window's middle sample.
type windowCrossings struct {
	rise, set       float64
	hasRise, hasSet bool
	ye              float64 // altitude at the parabola's vertex
}

// classifyWindow fits the samples at -1, 0, +1 and labels the zeros. A lone
// zero is a rise when the window starts below the horizon. With two zeros a
// vertex below the horizon means the Moon sets first and rises later.
func classifyWindow(h0, h1, h2 float64) windowCrossings {
	q := fitQuadratic(h0, h1, h2)
	_, ye := q.vertex()
	x1, x2, roots := q.roots()

	w := windowCrossings{ye: ye}
	switch roots {
	case 1:
		if h0 < 0 {
			w.rise, w.hasRise = x1, true
		} else {
			w.set, w.hasSet = x1, true
		}
	case 2:
		if ye < 0 {
			w.rise, w.set = x2, x1
		} else {
			w.rise, w.set = x1, x2
		}
		w.hasRise, w.hasSet = true, true
	}
	return w
}
