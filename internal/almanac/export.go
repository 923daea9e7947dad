package almanac

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
)

// ReportExport is the JSON-serializable representation of a Report.
type ReportExport struct {
	Time     time.Time      `json:"time"`
	Observer ObserverExport `json:"observer"`
	Sun      SunExport      `json:"sun"`
	Moon     MoonExport     `json:"moon"`
}

// ObserverExport is a JSON-friendly observer.
type ObserverExport struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    float64 `json:"height_m"`
}

// PositionExport carries a horizontal position both as the engine's radians
// (south-origin azimuth) and as display degrees (north-origin bearing).
type PositionExport struct {
	Azimuth     float64 `json:"azimuth"`
	Altitude    float64 `json:"altitude"`
	BearingDeg  float64 `json:"bearing_deg"`
	AltitudeDeg float64 `json:"altitude_deg"`
}

// EventExport is one sun event that occurs.
type EventExport struct {
	Name      string    `json:"name"`
	Time      time.Time `json:"time"`
	JulianDay float64   `json:"julian_day"`
}

// SunTimesExport lists sun events in chronological order plus the events
// that do not occur.
type SunTimesExport struct {
	Events  []EventExport `json:"events"`
	Missing []string      `json:"missing,omitempty"`
}

// SunExport is a JSON-friendly view of the Sun.
type SunExport struct {
	PositionExport
	Daylight string `json:"daylight"`
	SunTimesExport
	DayLengthSeconds float64 `json:"day_length_seconds,omitempty"`
	Polar            string  `json:"polar,omitempty"`
}

// IlluminationExport is a JSON-friendly view of the Moon's illumination.
type IlluminationExport struct {
	Fraction  float64 `json:"fraction"`
	Phase     float64 `json:"phase"`
	Angle     float64 `json:"angle"`
	Waxing    bool    `json:"waxing"`
	PhaseName string  `json:"phase_name"`
}

// MoonTimesExport is a JSON-friendly view of moon rise and set.
type MoonTimesExport struct {
	Rise       *time.Time `json:"rise,omitempty"`
	Set        *time.Time `json:"set,omitempty"`
	AlwaysUp   bool       `json:"always_up,omitempty"`
	AlwaysDown bool       `json:"always_down,omitempty"`
}

// MoonExport is a JSON-friendly view of the Moon.
type MoonExport struct {
	PositionExport
	DistanceKm       float64            `json:"distance_km"`
	ParallacticAngle float64            `json:"parallactic_angle"`
	ElongationDeg    float64            `json:"elongation_deg"`
	Illumination     IlluminationExport `json:"illumination"`
	MoonTimesExport
}

// Export converts the report to its exportable form. Instants are given in
// the report's location.
func (r Report) Export() *ReportExport {
	sun := SunExport{
		PositionExport: ExportPosition(r.Sun),
		Daylight:       r.Daylight.String(),
		SunTimesExport: ExportSunTimes(r.SunTimes, r.Location),
		Polar:          r.Polar(),
	}
	if d, ok := r.DayLength(); ok {
		sun.DayLengthSeconds = d.Seconds()
	}

	return &ReportExport{
		Time: r.Time.In(r.Location),
		Observer: ObserverExport{
			Name:      r.Observer.Name,
			Latitude:  r.Observer.LatDeg,
			Longitude: r.Observer.LonDeg,
			Height:    r.Observer.HeightM,
		},
		Sun: sun,
		Moon: MoonExport{
			PositionExport:   ExportPosition(r.Moon.HorizontalPosition),
			DistanceKm:       r.Moon.DistanceKm,
			ParallacticAngle: r.Moon.ParallacticAngle,
			ElongationDeg:    astro.RadToDeg(r.Elongation),
			Illumination:     ExportIllumination(r.Illumination),
			MoonTimesExport:  ExportMoonTimes(r.MoonTimes, r.Location),
		},
	}
}

// ExportPosition converts an engine position.
func ExportPosition(p astro.HorizontalPosition) PositionExport {
	return PositionExport{
		Azimuth:     p.Azimuth,
		Altitude:    p.Altitude,
		BearingDeg:  astro.RadToDeg(astro.AzimuthFromNorth(p.Azimuth)),
		AltitudeDeg: astro.RadToDeg(p.Altitude),
	}
}

// ExportSunTimes converts solved sun events. Missing events are listed by
// name only, since NaN has no JSON encoding.
func ExportSunTimes(res astro.SunTimesResult, loc *time.Location) SunTimesExport {
	r := Report{SunTimes: res}
	out := SunTimesExport{
		Events:  []EventExport{},
		Missing: r.MissingSunEvents(),
	}
	for _, ev := range r.SunEvents() {
		out.Events = append(out.Events, EventExport{
			Name:      ev.Name,
			Time:      inLocation(ev.Time, loc),
			JulianDay: ev.JulianDay,
		})
	}
	return out
}

// ExportIllumination converts the Moon's illumination.
func ExportIllumination(il astro.Illumination) IlluminationExport {
	return IlluminationExport{
		Fraction:  il.Fraction,
		Phase:     il.Phase,
		Angle:     il.Angle,
		Waxing:    il.Waxing(),
		PhaseName: PhaseName(il),
	}
}

// ExportMoonTimes converts moon rise and set.
func ExportMoonTimes(mt astro.MoonTimesResult, loc *time.Location) MoonTimesExport {
	out := MoonTimesExport{
		AlwaysUp:   mt.AlwaysUp,
		AlwaysDown: mt.AlwaysDown,
	}
	if mt.HasRise {
		rise := inLocation(mt.Rise, loc)
		out.Rise = &rise
	}
	if mt.HasSet {
		set := inLocation(mt.Set, loc)
		out.Set = &set
	}
	return out
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

// WriteJSON writes the export as JSON to the given writer.
func (e *ReportExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummary writes a text summary of the report to the given writer.
func (r Report) WriteSummary(w io.Writer) {
	name := r.Observer.Name
	if name == "" {
		name = "Observer"
	}

	fmt.Fprintf(w, "%s (%s) @ %s\n", name, FormatLatLon(r.Observer.LatDeg, r.Observer.LonDeg),
		r.Time.In(r.Location).Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	fmt.Fprintf(w, "Sun   bearing %6.1f°  altitude %6.1f°  %s\n",
		astro.RadToDeg(astro.AzimuthFromNorth(r.Sun.Azimuth)),
		astro.RadToDeg(r.Sun.Altitude),
		r.Daylight)
	fmt.Fprintf(w, "Moon  bearing %6.1f°  altitude %6.1f°  %s, %.0f%% lit\n",
		astro.RadToDeg(astro.AzimuthFromNorth(r.Moon.Azimuth)),
		astro.RadToDeg(r.Moon.Altitude),
		r.PhaseName(),
		r.Illumination.Fraction*100)
	fmt.Fprintln(w, strings.Repeat("─", 60))

	fmt.Fprintf(w, "%-16s %s\n", "Event", "Time")
	for _, ev := range r.SunEvents() {
		fmt.Fprintf(w, "%-16s %s\n", ev.Name, FormatClock(ev.Time, r.Location))
	}
	if missing := r.MissingSunEvents(); len(missing) > 0 {
		fmt.Fprintf(w, "%-16s %s\n", "not occurring", strings.Join(missing, ", "))
	}
	if d, ok := r.DayLength(); ok {
		fmt.Fprintf(w, "%-16s %s\n", "day length", FormatDuration(d))
	} else if polar := r.Polar(); polar != PolarNone {
		fmt.Fprintf(w, "%-16s %s\n", "day length", polar)
	}
	fmt.Fprintln(w, strings.Repeat("─", 60))

	fmt.Fprintf(w, "%-16s %s\n", "moonrise", r.moonEventText(r.MoonTimes.HasRise, r.MoonTimes.Rise))
	fmt.Fprintf(w, "%-16s %s\n", "moonset", r.moonEventText(r.MoonTimes.HasSet, r.MoonTimes.Set))
	fmt.Fprintf(w, "%-16s %s\n", "distance", FormatDistance(r.Moon.DistanceKm))
}

func (r Report) moonEventText(ok bool, t time.Time) string {
	switch {
	case ok:
		return FormatClock(t, r.Location)
	case r.MoonTimes.AlwaysUp:
		return "always up"
	case r.MoonTimes.AlwaysDown:
		return "always down"
	default:
		return "none today"
	}
}

// FormatClock formats an instant as a wall clock time in loc.
func FormatClock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "--:--"
	}
	return inLocation(t, loc).Format("15:04:05")
}

// FormatDuration formats a duration as hours and minutes.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	return fmt.Sprintf("%dh %02dm", h, m)
}

// FormatDistance formats a distance in km with thousands separators.
func FormatDistance(km float64) string {
	n := int64(km + 0.5)
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String() + " km"
}

// FormatLatLon formats a coordinate pair with hemisphere letters.
func FormatLatLon(latDeg, lonDeg float64) string {
	ns, ew := "N", "E"
	if latDeg < 0 {
		ns = "S"
		latDeg = -latDeg
	}
	if lonDeg < 0 {
		ew = "W"
		lonDeg = -lonDeg
	}
	return fmt.Sprintf("%.4f°%s %.4f°%s", latDeg, ns, lonDeg, ew)
}
