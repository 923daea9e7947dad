package almanac

import (
	"reflect"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
)

var dundee = NewObserver("Dundee", 56.4578, -3.0219, 0)

func TestBuild(t *testing.T) {
	tm := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)
	r := Build(dundee, tm, Options{})

	if r.Location != time.UTC {
		t.Errorf("Location = %v, want UTC", r.Location)
	}
	if r.Daylight != astro.Day {
		t.Errorf("Daylight = %v, want day", r.Daylight)
	}
	if got := r.PhaseName(); got != FullMoon {
		t.Errorf("PhaseName() = %q, want %q", got, FullMoon)
	}
	if len(r.SunTimes) != 14 {
		t.Errorf("SunTimes has %d events, want 14", len(r.SunTimes))
	}
	if !r.MoonTimes.HasRise || !r.MoonTimes.HasSet {
		t.Errorf("MoonTimes = %+v, want rise and set", r.MoonTimes)
	}
	// Near full moon the Moon sits opposite the Sun.
	if deg := astro.RadToDeg(r.Elongation); deg < 160 {
		t.Errorf("Elongation = %.1f°, want near 180°", deg)
	}
}

func TestReportSunEvents(t *testing.T) {
	r := Build(dundee, time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), Options{})

	events := r.SunEvents()
	if len(events) != 10 {
		t.Fatalf("SunEvents() returned %d events, want 10", len(events))
	}
	for i := 1; i < len(events); i++ {
		if !events[i].Time.After(events[i-1].Time) {
			t.Errorf("%s not after %s", events[i].Name, events[i-1].Name)
		}
	}
	if events[0].Name != astro.EventNadir || events[len(events)-1].Name != astro.EventDusk {
		t.Errorf("first/last = %s/%s, want nadir/dusk", events[0].Name, events[len(events)-1].Name)
	}

	want := []string{astro.EventNauticalDawn, astro.EventNauticalDusk, astro.EventNight, astro.EventNightEnd}
	if got := r.MissingSunEvents(); !reflect.DeepEqual(got, want) {
		t.Errorf("MissingSunEvents() = %v, want %v", got, want)
	}
}

func TestReportDayLength(t *testing.T) {
	r := Build(dundee, time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), Options{})

	d, ok := r.DayLength()
	if !ok {
		t.Fatal("DayLength() not available")
	}
	if d < 17*time.Hour+40*time.Minute || d > 17*time.Hour+50*time.Minute {
		t.Errorf("DayLength() = %v, want about 17h44m", d)
	}
	if got := r.Polar(); got != PolarNone {
		t.Errorf("Polar() = %q, want none", got)
	}
}

func TestReportPolar(t *testing.T) {
	tromso := NewObserver("Tromsø", 69.65, 18.96, 0)

	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{"Midnight sun", time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), PolarDay},
		{"Polar night", time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC), PolarNight},
		{"Equinox", time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), PolarNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Build(tromso, tt.time, Options{})
			if got := r.Polar(); got != tt.want {
				t.Errorf("Polar() = %q, want %q", got, tt.want)
			}
			if _, ok := r.DayLength(); ok != (tt.want == PolarNone) {
				t.Errorf("DayLength() ok = %v", ok)
			}
		})
	}
}

func TestReportPolarNegativeHeight(t *testing.T) {
	sunk := NewObserver("", 56.4578, -3.0219, -10)
	r := Build(sunk, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), Options{})

	if _, ok := r.SunTimes.Time(astro.EventSunrise); ok {
		t.Fatal("sunrise should be missing below the horizon plane")
	}
	if got := r.Polar(); got != PolarNone {
		t.Errorf("Polar() = %q, want %q", got, PolarNone)
	}
}

func TestBuildCustomThresholds(t *testing.T) {
	thresholds := append(astro.DefaultThresholds(), astro.EventThreshold{
		AngleDeg: -4, MorningName: "blueHourEnd", EveningName: "blueHour",
	})
	r := Build(dundee, time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC), Options{Thresholds: thresholds})

	if _, ok := r.SunTimes.Time("blueHour"); !ok {
		t.Error("custom event blueHour missing")
	}
	if len(r.SunEvents()) != 16 {
		t.Errorf("SunEvents() returned %d events, want 16", len(r.SunEvents()))
	}
}

func TestBuildMoonDayBoundary(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*3600)
	tm := time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC)

	local := Build(dundee, tm, Options{Location: zone})
	utc := Build(dundee, tm, Options{Location: zone, UTCMidnight: true})

	if local.MoonTimes != astro.MoonTimes(tm.In(zone), dundee.LatDeg, dundee.LonDeg, false) {
		t.Error("local day boundary not used")
	}
	if utc.MoonTimes != astro.MoonTimes(tm, dundee.LatDeg, dundee.LonDeg, true) {
		t.Error("UTC day boundary not used")
	}
}

func TestPhaseName(t *testing.T) {
	waxing, waning := -1.0, 1.0

	tests := []struct {
		fraction float64
		angle    float64
		want     string
	}{
		{0.005, waxing, NewMoon},
		{0.2, waxing, WaxingCrescent},
		{0.5, waxing, FirstQuarter},
		{0.8, waxing, WaxingGibbous},
		{0.995, waning, FullMoon},
		{0.8, waning, WaningGibbous},
		{0.52, waning, LastQuarter},
		{0.2, waning, WaningCrescent},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := PhaseName(astro.Illumination{Fraction: tt.fraction, Angle: tt.angle})
			if got != tt.want {
				t.Errorf("PhaseName(%.3f, %v) = %q, want %q", tt.fraction, tt.angle, got, tt.want)
			}
		})
	}
}
