package astro

import (
	"math"
	"testing"
	"time"
)

func TestEclipticToEquatorial(t *testing.T) {
	tests := []struct {
		name    string
		l, b    float64
		wantRA  float64
		wantDec float64
	}{
		{"Vernal point", 0, 0, 0, 0},
		{"Summer solstice point", math.Pi / 2, 0, math.Pi / 2, Obliquity},
		{"Autumn point", math.Pi, 0, math.Pi, 0},
		{"Winter solstice point", -math.Pi / 2, 0, -math.Pi / 2, -Obliquity},
		{"Ecliptic pole", 0, math.Pi / 2, -math.Pi / 2, math.Pi/2 - Obliquity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra := RightAscension(tt.l, tt.b)
			dec := Declination(tt.l, tt.b)
			if math.Abs(ra-tt.wantRA) > 1e-9 {
				t.Errorf("RightAscension() = %.9f, want %.9f", ra, tt.wantRA)
			}
			if math.Abs(dec-tt.wantDec) > 1e-9 {
				t.Errorf("Declination() = %.9f, want %.9f", dec, tt.wantDec)
			}
		})
	}
}

func TestHorizontalTransform(t *testing.T) {
	phi := 50 * Rad
	dec := 20 * Rad

	// On the meridian the body is due south at its culmination altitude.
	if az := Azimuth(0, phi, dec); math.Abs(az) > 1e-12 {
		t.Errorf("Azimuth(h=0) = %v, want 0 (south)", az)
	}
	wantAlt := math.Pi/2 - phi + dec
	if alt := Altitude(0, phi, dec); math.Abs(alt-wantAlt) > 1e-12 {
		t.Errorf("Altitude(h=0) = %v, want %v", RadToDeg(alt), RadToDeg(wantAlt))
	}

	// Positive hour angle puts the body west of the meridian.
	if az := Azimuth(1, phi, dec); az <= 0 {
		t.Errorf("Azimuth(h=1) = %v, want positive (west of south)", az)
	}

	// A body at the pole sits at the latitude's altitude for any hour angle.
	for _, h := range []float64{0, 1, 2, 3} {
		if alt := Altitude(h, phi, math.Pi/2); math.Abs(alt-phi) > 1e-9 {
			t.Errorf("Altitude(h=%v, pole) = %v, want %v", h, alt, phi)
		}
	}
}

func TestSiderealTime(t *testing.T) {
	if got, want := SiderealTime(0, 0), 280.16*Rad; math.Abs(got-want) > 1e-12 {
		t.Errorf("SiderealTime(0, 0) = %v, want %v", got, want)
	}
	if got, want := SiderealTime(0, Rad*10), 270.16*Rad; math.Abs(got-want) > 1e-12 {
		t.Errorf("SiderealTime(0, 10°W) = %v, want %v", got, want)
	}
}

func TestAstroRefraction(t *testing.T) {
	horizon := AstroRefraction(0)
	if deg := RadToDeg(horizon); deg < 0.45 || deg > 0.52 {
		t.Errorf("AstroRefraction(0) = %.4f°, want about 0.48°", deg)
	}

	// Below the horizon the correction is held at its horizon value.
	for _, h := range []float64{-0.01, -0.08901179, -0.5, -math.Pi / 2} {
		if got := AstroRefraction(h); got != horizon {
			t.Errorf("AstroRefraction(%v) = %v, want %v", h, got, horizon)
		}
	}

	if arcmin := RadToDeg(AstroRefraction(45*Rad)) * 60; math.Abs(arcmin-1.0) > 0.05 {
		t.Errorf("AstroRefraction(45°) = %.3f', want about 1'", arcmin)
	}

	prev := horizon
	for deg := 1.0; deg <= 89; deg++ {
		got := AstroRefraction(deg * Rad)
		if got >= prev || got < 0 {
			t.Fatalf("AstroRefraction not decreasing at %v°: %v >= %v", deg, got, prev)
		}
		prev = got
	}

	// The fit crosses zero just short of the zenith.
	if got := AstroRefraction(90 * Rad); math.Abs(got) > 1e-5 {
		t.Errorf("AstroRefraction(90°) = %v, want within 1e-5 of 0", got)
	}
}

func TestAzimuthFromNorth(t *testing.T) {
	tests := []struct {
		name  string
		south float64
		want  float64
	}{
		{"South", 0, math.Pi},
		{"West", math.Pi / 2, 3 * math.Pi / 2},
		{"North from west", math.Pi, 0},
		{"North from east", -math.Pi, 0},
		{"East", -math.Pi / 2, math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AzimuthFromNorth(tt.south)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AzimuthFromNorth(%v) = %v, want %v", tt.south, got, tt.want)
			}
		})
	}
}

func TestAngularSeparation(t *testing.T) {
	vernal := EquatorialCoord{RA: 0, Dec: 0}
	pole := EquatorialCoord{RA: 0, Dec: math.Pi / 2}

	if got := AngularSeparation(vernal, vernal); got != 0 {
		t.Errorf("separation of a point from itself = %v, want 0", got)
	}
	if got := AngularSeparation(vernal, pole); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("equator to pole = %v, want π/2", got)
	}
}

func TestSunMoonElongation(t *testing.T) {
	tests := []struct {
		name    string
		time    time.Time
		wantDeg float64
	}{
		{"New moon", time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC), 5.144},
		{"First quarter", time.Date(2024, 1, 18, 4, 0, 0, 0, time.UTC), 89.161},
		{"Full moon", time.Date(2024, 1, 25, 18, 0, 0, 0, time.UTC), 174.812},
		{"Last quarter", time.Date(2024, 2, 2, 23, 0, 0, 0, time.UTC), 88.676},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DaysSinceJ2000(tt.time)
			elong := AngularSeparation(SunCoordinates(d), MoonCoordinates(d).EquatorialCoord)
			if got := RadToDeg(elong); math.Abs(got-tt.wantDeg) > 0.01 {
				t.Errorf("elongation = %.3f°, want %.3f°", got, tt.wantDeg)
			}

			// With the Sun far away the lit fraction follows the elongation.
			il := MoonIllumination(tt.time)
			if approx := (1 - math.Cos(elong)) / 2; math.Abs(il.Fraction-approx) > 0.002 {
				t.Errorf("Fraction = %.4f, want about %.4f", il.Fraction, approx)
			}
		})
	}
}
