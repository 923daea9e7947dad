package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

// MoonPageModel shows the Moon's position, phase and rise/set times.
type MoonPageModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewMoonPageModel creates a new Moon page.
func NewMoonPageModel() MoonPageModel {
	return MoonPageModel{}
}

// SetSize updates the viewport size.
func (m MoonPageModel) SetSize(width, height int) MoonPageModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the page with a new snapshot.
func (m MoonPageModel) UpdateData(snapshot state.Snapshot) MoonPageModel {
	m.snapshot = snapshot
	return m
}

// Update handles page-local messages.
func (m MoonPageModel) Update(msg tea.Msg) (MoonPageModel, tea.Cmd) {
	return m, nil
}

// View renders the page.
func (m MoonPageModel) View() string {
	r := m.snapshot.Report
	if r == nil {
		return dimStyle.Render("  Computing...")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("  ☾ MOON"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(observerLine(r)))
	b.WriteString("\n\n")

	bearing := astro.RadToDeg(astro.AzimuthFromNorth(r.Moon.Azimuth))
	b.WriteString(fmt.Sprintf("  %s %s   %s %s\n",
		labelStyle.Render("Altitude  "), renderAltitude(r.Moon.Altitude),
		labelStyle.Render("Bearing"), rowStyle.Render(fmt.Sprintf("%6.2f°", bearing))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		labelStyle.Render("Distance  "), rowStyle.Render(almanac.FormatDistance(r.Moon.DistanceKm))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		labelStyle.Render("Parallactic"), rowStyle.Render(fmt.Sprintf("%.1f°", astro.RadToDeg(r.Moon.ParallacticAngle)))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		labelStyle.Render("Elongation"), rowStyle.Render(fmt.Sprintf("%.1f°", astro.RadToDeg(r.Elongation)))))
	b.WriteString("\n")

	il := r.Illumination
	b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
		labelStyle.Render("Phase     "),
		rowStyle.Render(r.PhaseName()),
		renderFractionBar(il.Fraction, 20),
		rowStyle.Render(fmt.Sprintf("%.0f%% lit", il.Fraction*100))))
	b.WriteString("\n")

	b.WriteString("  " + headerStyle.Render(fmt.Sprintf("%-20s %-10s", "EVENT", "TIME")) + "\n")
	mt := r.MoonTimes
	switch {
	case mt.AlwaysUp:
		b.WriteString("  " + rowStyle.Render("Above the horizon all day") + "\n")
	case mt.AlwaysDown:
		b.WriteString("  " + rowStyle.Render("Below the horizon all day") + "\n")
	default:
		b.WriteString("  " + rowStyle.Render(fmt.Sprintf("%-20s %-10s", "Moonrise", moonClock(mt.HasRise, mt.Rise, r))) + "\n")
		b.WriteString("  " + rowStyle.Render(fmt.Sprintf("%-20s %-10s", "Moonset", moonClock(mt.HasSet, mt.Set, r))) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + labelStyle.Render("Altitude history") + "\n  ")
	b.WriteString(renderSparkline(m.snapshot.MoonHistory, SparklineWidth))
	b.WriteString("\n")

	return b.String()
}

func moonClock(ok bool, t time.Time, r *almanac.Report) string {
	if !ok {
		return "none today"
	}
	return almanac.FormatClock(t, r.Location)
}
