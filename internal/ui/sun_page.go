package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

// Styles shared by the pages
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	nextRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))
)

// eventLabels maps event names to display labels.
var eventLabels = map[string]string{
	astro.EventNadir:         "Nadir",
	astro.EventNightEnd:      "Astronomical dawn",
	astro.EventNauticalDawn:  "Nautical dawn",
	astro.EventDawn:          "Civil dawn",
	astro.EventSunrise:       "Sunrise",
	astro.EventSunriseEnd:    "Sunrise end",
	astro.EventGoldenHourEnd: "Golden hour end",
	astro.EventSolarNoon:     "Solar noon",
	astro.EventGoldenHour:    "Golden hour",
	astro.EventSunsetStart:   "Sunset start",
	astro.EventSunset:        "Sunset",
	astro.EventDusk:          "Civil dusk",
	astro.EventNauticalDusk:  "Nautical dusk",
	astro.EventNight:         "Astronomical dusk",
}

// eventLabel returns the display label for an event, falling back to its name.
func eventLabel(name string) string {
	if l, ok := eventLabels[name]; ok {
		return l
	}
	return name
}

// SunPageModel shows the Sun's position and today's events.
type SunPageModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewSunPageModel creates a new Sun page.
func NewSunPageModel() SunPageModel {
	return SunPageModel{}
}

// SetSize updates the viewport size.
func (m SunPageModel) SetSize(width, height int) SunPageModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the page with a new snapshot.
func (m SunPageModel) UpdateData(snapshot state.Snapshot) SunPageModel {
	m.snapshot = snapshot
	return m
}

// Update handles page-local messages.
func (m SunPageModel) Update(msg tea.Msg) (SunPageModel, tea.Cmd) {
	return m, nil
}

// View renders the page.
func (m SunPageModel) View() string {
	r := m.snapshot.Report
	if r == nil {
		return dimStyle.Render("  Computing...")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("  ☀ SUN"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(observerLine(r)))
	b.WriteString("\n\n")

	bearing := astro.RadToDeg(astro.AzimuthFromNorth(r.Sun.Azimuth))
	b.WriteString(fmt.Sprintf("  %s %s   %s %s\n",
		labelStyle.Render("Altitude"), renderAltitude(r.Sun.Altitude),
		labelStyle.Render("Bearing"), rowStyle.Render(fmt.Sprintf("%6.2f°", bearing))))
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Sky     "), rowStyle.Render(r.Daylight.String())))

	if d, ok := r.DayLength(); ok {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Day     "), rowStyle.Render(almanac.FormatDuration(d))))
	} else if p := r.Polar(); p != almanac.PolarNone {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Day     "), rowStyle.Render(p)))
	}
	b.WriteString("\n")

	b.WriteString(m.renderEvents(r))
	b.WriteString("\n")

	b.WriteString("  " + labelStyle.Render("Altitude history") + "\n  ")
	b.WriteString(renderSparkline(m.snapshot.SunHistory, SparklineWidth))
	b.WriteString("\n")

	return b.String()
}

// renderEvents renders the event table, highlighting the next event.
func (m SunPageModel) renderEvents(r *almanac.Report) string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render(fmt.Sprintf("%-20s %-10s", "EVENT", "TIME")) + "\n")

	nextMarked := false
	for _, ev := range r.SunEvents() {
		line := fmt.Sprintf("%-20s %-10s", eventLabel(ev.Name), almanac.FormatClock(ev.Time, r.Location))
		if !nextMarked && ev.Time.After(r.Time) {
			nextMarked = true
			b.WriteString("  " + nextRowStyle.Render(line) + "\n")
			continue
		}
		b.WriteString("  " + rowStyle.Render(line) + "\n")
	}

	if missing := r.MissingSunEvents(); len(missing) > 0 {
		labels := make([]string, len(missing))
		for i, name := range missing {
			labels[i] = eventLabel(name)
		}
		b.WriteString("  " + dimStyle.Render("Not occurring: "+strings.Join(labels, ", ")) + "\n")
	}
	return b.String()
}

// observerLine renders the observer name and coordinates.
func observerLine(r *almanac.Report) string {
	coords := almanac.FormatLatLon(r.Observer.LatDeg, r.Observer.LonDeg)
	when := r.Time.In(r.Location).Format("2006-01-02 15:04 MST")
	if r.Observer.Name == "" {
		return coords + " · " + when
	}
	return r.Observer.Name + " · " + coords + " · " + when
}
