package sensor

import (
	"math/rand/v2"
	"testing"
	"time"
)

func TestSimulatedStaysWithinRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	gen := NewSimulated(SimulatedOptions{
		Temperature: Range{Min: 20, Max: 35},
		Humidity:    Range{Min: 30, Max: 70},
		Rand:        rng,
	})

	for i := 0; i < 500; i++ {
		r := gen.Generate()
		if r.Temperature < 20 || r.Temperature > 35 {
			t.Fatalf("temperature %f outside [20,35]", r.Temperature)
		}
		if r.Humidity < 30 || r.Humidity > 70 {
			t.Fatalf("humidity %f outside [30,70]", r.Humidity)
		}
	}
}

func TestSimulatedTimestampsFromClock(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gen := NewSimulated(SimulatedOptions{
		Temperature: Range{Min: 25, Max: 25},
		Humidity:    Range{Min: 50, Max: 50},
		Now:         func() time.Time { return at },
	})

	r := gen.Generate()
	if !r.Timestamp.Equal(at) {
		t.Fatalf("timestamp should come from the injected clock, got %s", r.Timestamp)
	}
	if r.Temperature != 25 || r.Humidity != 50 {
		t.Fatalf("degenerate range should pin the value, got %+v", r)
	}
}

func TestFixedGenerator(t *testing.T) {
	gen := &Fixed{Temperature: 31.5, Humidity: 45.0}
	r := gen.Generate()
	if r.Temperature != 31.5 || r.Humidity != 45.0 {
		t.Fatalf("fixed generator should echo its values, got %+v", r)
	}
	if r.Timestamp.IsZero() {
		t.Fatal("fixed generator should stamp the reading")
	}
}
