package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

// SparklineWidth is the fixed width of the altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// altColorLow is the color for the nadir (dark blue).
var altColorLow = [3]uint8{0x1b, 0x2b, 0x4b}

// altColorMid is the color at the horizon (blue).
var altColorMid = [3]uint8{0x34, 0x78, 0xc0}

// altColorHigh is the color for the zenith (pale gold).
var altColorHigh = [3]uint8{0xff, 0xe0, 0x8b}

// Altitude tier colors
const (
	colorAltHigh   = "#7CFC00" // Lawn green - high
	colorAltMedium = "#FFD700" // Gold - medium
	colorAltLow    = "#FF6347" // Tomato - low
	colorAltNone   = "#444444" // Dark gray - below horizon
)

// renderSparkline renders an altitude history (degrees) as a colored sparkline.
func renderSparkline(series []state.TimeSeries, width int) string {
	if len(series) == 0 {
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		return dimStyle.Render("No history yet")
	}

	samples := resampleSeries(series, width)

	var sb strings.Builder
	for _, alt := range samples {
		// Normalize -90..90 to 0..1
		t := (alt + 90) / 180
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}

		blockIdx := int(t * 7.0)
		if blockIdx > 7 {
			blockIdx = 7
		}

		r, g, b := interpolateAltColor(t)
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparklineBlocks[blockIdx])))
	}
	return sb.String()
}

// interpolateAltColor returns RGB color for altitude value t in [0, 1].
// Gradient: nadir (dark blue) → horizon (blue) → zenith (gold).
func interpolateAltColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	var r, g, b uint8
	if t < 0.5 {
		s := t * 2
		r = uint8(float64(altColorLow[0])*(1-s) + float64(altColorMid[0])*s)
		g = uint8(float64(altColorLow[1])*(1-s) + float64(altColorMid[1])*s)
		b = uint8(float64(altColorLow[2])*(1-s) + float64(altColorMid[2])*s)
	} else {
		s := (t - 0.5) * 2
		r = uint8(float64(altColorMid[0])*(1-s) + float64(altColorHigh[0])*s)
		g = uint8(float64(altColorMid[1])*(1-s) + float64(altColorHigh[1])*s)
		b = uint8(float64(altColorMid[2])*(1-s) + float64(altColorHigh[2])*s)
	}

	return r, g, b
}

// resampleSeries resamples a series to at most width buckets. Short series
// are returned as-is so the line grows from the left.
func resampleSeries(series []state.TimeSeries, width int) []float64 {
	if len(series) == 0 || width <= 0 {
		return nil
	}
	if len(series) <= width {
		out := make([]float64, len(series))
		for i, p := range series {
			out[i] = p.Value
		}
		return out
	}

	result := make([]float64, width)
	perBucket := float64(len(series)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * perBucket)
		endIdx := int(float64(i+1) * perBucket)
		if endIdx > len(series) {
			endIdx = len(series)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}

		sum := 0.0
		for j := startIdx; j < endIdx; j++ {
			sum += series[j].Value
		}
		result[i] = sum / float64(endIdx-startIdx)
	}

	return result
}

// tierToBar converts an altitude tier to a 4-character bar representation.
func tierToBar(tier astro.AltitudeTier) string {
	switch tier {
	case astro.AltitudeHigh:
		return "████"
	case astro.AltitudeMedium:
		return "██░░"
	case astro.AltitudeLow:
		return "█░░░"
	default:
		return "░░░░"
	}
}

// tierToColor returns the color for an altitude tier.
func tierToColor(tier astro.AltitudeTier) string {
	switch tier {
	case astro.AltitudeHigh:
		return colorAltHigh
	case astro.AltitudeMedium:
		return colorAltMedium
	case astro.AltitudeLow:
		return colorAltLow
	default:
		return colorAltNone
	}
}

// renderAltitude renders an altitude (radians) with its tier bar.
func renderAltitude(alt float64) string {
	tier := astro.GetAltitudeTier(alt)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier)))
	return style.Render(fmt.Sprintf("%s %6.2f°", tierToBar(tier), astro.RadToDeg(alt)))
}

// renderFractionBar renders a fraction in [0, 1] as a bracketed bar.
func renderFractionBar(f float64, width int) string {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	filled := int(f*float64(width) + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
