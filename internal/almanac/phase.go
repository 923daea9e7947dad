package almanac

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Phase names.
const (
	NewMoon        = "New Moon"
	WaxingCrescent = "Waxing Crescent"
	FirstQuarter   = "First Quarter"
	WaxingGibbous  = "Waxing Gibbous"
	FullMoon       = "Full Moon"
	WaningGibbous  = "Waning Gibbous"
	LastQuarter    = "Last Quarter"
	WaningCrescent = "Waning Crescent"
)

// PhaseName classifies illumination into one of eight named phases.
func PhaseName(il astro.Illumination) string {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	f := il.Fraction
	waxing := il.Waxing()

	switch {
	case f < eps:
		return NewMoon
	case f > 1-eps:
		return FullMoon
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return FirstQuarter
		}
		return LastQuarter
	case f < 0.5:
		if waxing {
			return WaxingCrescent
		}
		return WaningCrescent
	default:
		if waxing {
			return WaxingGibbous
		}
		return WaningGibbous
	}
}
