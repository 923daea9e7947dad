package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

func series(values ...float64) []state.TimeSeries {
	out := make([]state.TimeSeries, len(values))
	base := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		out[i] = state.TimeSeries{Timestamp: base.Add(time.Duration(i) * time.Minute), Value: v}
	}
	return out
}

func TestResampleSeries(t *testing.T) {
	tests := []struct {
		name  string
		in    []state.TimeSeries
		width int
		want  []float64
	}{
		{"empty", nil, 10, nil},
		{"zero width", series(1, 2), 0, nil},
		{"short kept as-is", series(1, 2, 3), 10, []float64{1, 2, 3}},
		{"averaged pairs", series(0, 2, 4, 6), 2, []float64{1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resampleSeries(tt.in, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := renderSparkline(nil, SparklineWidth); !strings.Contains(got, "No history yet") {
		t.Errorf("empty sparkline = %q", got)
	}

	line := renderSparkline(series(-90, 0, 90), SparklineWidth)
	if strings.Count(line, "▁") != 1 {
		t.Errorf("nadir should render the lowest block once: %q", line)
	}
	if strings.Count(line, "█") != 1 {
		t.Errorf("zenith should render the highest block once: %q", line)
	}

	long := make([]float64, 200)
	line = renderSparkline(series(long...), SparklineWidth)
	blocks := 0
	for _, r := range line {
		for _, b := range sparklineBlocks {
			if r == b {
				blocks++
			}
		}
	}
	if blocks != SparklineWidth {
		t.Errorf("long series rendered %d blocks, want %d", blocks, SparklineWidth)
	}
}

func TestInterpolateAltColor(t *testing.T) {
	r, g, b := interpolateAltColor(0)
	if [3]uint8{r, g, b} != altColorLow {
		t.Errorf("t=0 color = %v, want %v", [3]uint8{r, g, b}, altColorLow)
	}
	r, g, b = interpolateAltColor(1.5)
	if [3]uint8{r, g, b} != altColorHigh {
		t.Errorf("t=1.5 color = %v, want %v", [3]uint8{r, g, b}, altColorHigh)
	}
}

func TestTierToBar(t *testing.T) {
	tests := []struct {
		altDeg float64
		want   string
	}{
		{-5, "░░░░"},
		{10, "█░░░"},
		{30, "██░░"},
		{60, "████"},
	}

	for _, tt := range tests {
		tier := astro.GetAltitudeTier(astro.DegToRad(tt.altDeg))
		if got := tierToBar(tier); got != tt.want {
			t.Errorf("tierToBar(%v°) = %q, want %q", tt.altDeg, got, tt.want)
		}
	}
}

func TestRenderFractionBar(t *testing.T) {
	tests := []struct {
		name       string
		f          float64
		width      int
		wantFilled int
	}{
		{"empty", 0, 10, 0},
		{"full", 1, 10, 10},
		{"half", 0.5, 10, 5},
		{"over 100%", 1.5, 10, 10},
		{"negative", -0.2, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderFractionBar(tt.f, tt.width)
			if !strings.HasPrefix(bar, "[") || !strings.HasSuffix(bar, "]") {
				t.Errorf("bar should have brackets, got %q", bar)
			}
			if got := strings.Count(bar, "█"); got != tt.wantFilled {
				t.Errorf("filled count = %d, want %d", got, tt.wantFilled)
			}
		})
	}
}
