package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/ropeclimb/internal/sim"
)

func TestPowerSpectrumPadsToPowerOfTwo(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 100))
	if len(ps) != 64 {
		t.Errorf("expected 64 bins for 100 samples, got %d", len(ps))
	}
	if PowerSpectrum(nil) != nil {
		t.Error("expected no spectrum for no data")
	}
}

func TestSwingPeriod(t *testing.T) {
	tests := []struct {
		name   string
		period float64
	}{
		{"short swing", 16},
		{"long swing", 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, 256)
			for i := range data {
				data[i] = 0.5 + math.Sin(2*math.Pi*float64(i)/tt.period)
			}

			got, ok := SwingPeriod(data)
			if !ok {
				t.Fatal("expected a period")
			}
			if math.Abs(got-tt.period) > 1e-9 {
				t.Errorf("expected period %v, got %v", tt.period, got)
			}
		})
	}
}

func TestSwingPeriodFlatSignal(t *testing.T) {
	if _, ok := SwingPeriod([]float64{1, 1, 1, 1, 1, 1}); ok {
		t.Error("expected no period for a constant signal")
	}
	if _, ok := SwingPeriod([]float64{1, 2}); ok {
		t.Error("expected no period for a short signal")
	}
}

func TestNextPow2(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 64: 64, 65: 128} {
		if got := nextPow2(in); got != want {
			t.Errorf("nextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	trace := make([]sim.Sample, 200)
	for i := range trace {
		phase := 2 * math.Pi * float64(i) / 50
		trace[i] = sim.Sample{Tick: i + 1, Angle: math.Sin(phase), AngularVelocity: math.Cos(phase)}
	}

	out := PhasePortraitOf(trace).ToASCII(40, 20)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(lines))
	}
	if !strings.Contains(out, "•") || !strings.Contains(out, "│") || !strings.Contains(out, "─") {
		t.Error("expected points and both axes")
	}

	if (&PhasePortrait{}).ToASCII(40, 20) != "" {
		t.Error("expected empty output for an empty portrait")
	}
}
