package astro

import (
	"math"
	"testing"
	"time"
)

func TestMoonCoordinates(t *testing.T) {
	c := MoonCoordinates(0)

	if got := c.DistanceKm; math.Abs(got-399773.5) > 1 {
		t.Errorf("DistanceKm = %.1f, want 399773.5", got)
	}
	if got := RadToDeg(c.RA); math.Abs(got-(-138.10)) > 0.05 {
		t.Errorf("RA = %.3f°, want -138.10°", got)
	}
	if got := RadToDeg(c.Dec); math.Abs(got-(-10.79)) > 0.05 {
		t.Errorf("Dec = %.3f°, want -10.79°", got)
	}

	// The distance term alone bounds the orbit.
	for d := 0.0; d < 60; d += 0.5 {
		km := MoonCoordinates(d).DistanceKm
		if km < 385001-20905 || km > 385001+20905 {
			t.Fatalf("DistanceKm(%v) = %v out of range", d, km)
		}
	}
}

func TestMoonPosition(t *testing.T) {
	pos := MoonPosition(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), fixtureLat, fixtureLon)

	tests := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"Azimuth", RadToDeg(pos.Azimuth), -73.925, 0.01},
		{"Altitude", RadToDeg(pos.Altitude), 25.246, 0.01},
		{"ParallacticAngle", RadToDeg(pos.ParallacticAngle), -32.95, 0.05},
		{"DistanceKm", pos.DistanceKm, 405859.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > tt.tol {
				t.Errorf("%s = %.4f, want %.4f (±%v)", tt.name, tt.got, tt.want, tt.tol)
			}
		})
	}
}

func TestMoonPositionRefraction(t *testing.T) {
	// Altitude is the geometric altitude plus refraction.
	tm := time.Date(2024, 2, 14, 18, 30, 0, 0, time.UTC)
	pos := MoonPosition(tm, fixtureLat, fixtureLon)

	d := DaysSinceJ2000(tm)
	c := MoonCoordinates(d)
	h := SiderealTime(d, Rad*-fixtureLon) - c.RA
	geo := Altitude(h, Rad*fixtureLat, c.Dec)

	if got, want := pos.Altitude, geo+AstroRefraction(geo); math.Abs(got-want) > 1e-12 {
		t.Errorf("Altitude = %v, want %v", got, want)
	}
	if pos.Altitude <= geo {
		t.Error("refraction did not raise the Moon")
	}
	if got, want := pos.Azimuth, Azimuth(h, Rad*fixtureLat, c.Dec); got != want {
		t.Errorf("Azimuth = %v, want %v (same convention as the Sun)", got, want)
	}
}

func TestMoonIllumination(t *testing.T) {
	tests := []struct {
		name       string
		time       time.Time
		minFrac    float64
		maxFrac    float64
		wantPhase  float64
		wantWaxing bool
	}{
		{"New moon", time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC), 0, 0.01, 0.014, true},
		{"First quarter", time.Date(2024, 1, 18, 4, 0, 0, 0, time.UTC), 0.45, 0.55, 0.248, true},
		{"Just past full", time.Date(2024, 1, 25, 18, 0, 0, 0, time.UTC), 0.99, 1, 0.514, false},
		{"Last quarter", time.Date(2024, 2, 2, 23, 0, 0, 0, time.UTC), 0.45, 0.55, 0.753, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			il := MoonIllumination(tt.time)
			if il.Fraction < tt.minFrac || il.Fraction > tt.maxFrac {
				t.Errorf("Fraction = %.4f, want between %.2f and %.2f", il.Fraction, tt.minFrac, tt.maxFrac)
			}
			if math.Abs(il.Phase-tt.wantPhase) > 0.01 {
				t.Errorf("Phase = %.4f, want %.3f", il.Phase, tt.wantPhase)
			}
			if il.Waxing() != tt.wantWaxing {
				t.Errorf("Waxing() = %v, want %v (angle %.3f)", il.Waxing(), tt.wantWaxing, il.Angle)
			}
		})
	}
}

func TestMoonIlluminationSynodicMonth(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	minFrac, maxFrac := 1.0, 0.0

	for h := 0; h <= 30*24; h++ {
		il := MoonIllumination(start.Add(time.Duration(h) * time.Hour))
		if il.Fraction < 0 || il.Fraction > 1 {
			t.Fatalf("Fraction = %v at +%dh, want within [0, 1]", il.Fraction, h)
		}
		if il.Phase < 0 || il.Phase > 1 {
			t.Fatalf("Phase = %v at +%dh, want within [0, 1]", il.Phase, h)
		}
		minFrac = math.Min(minFrac, il.Fraction)
		maxFrac = math.Max(maxFrac, il.Fraction)
	}

	if minFrac > 0.01 || maxFrac < 0.99 {
		t.Errorf("Fraction range over a month = [%.3f, %.3f], want new and full moon", minFrac, maxFrac)
	}
}
