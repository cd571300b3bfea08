package sensor

import (
	"math/rand/v2"
	"time"
)

// Range bounds a uniformly drawn value.
type Range struct {
	Min float64
	Max float64
}

// SimulatedOptions configure the synthetic sensor backend.
type SimulatedOptions struct {
	Temperature Range
	Humidity    Range
	Now         func() time.Time
	Rand        *rand.Rand
}

// Simulated draws readings from bounded uniform ranges, standing in for
// real hardware acquisition.
type Simulated struct {
	opts SimulatedOptions
}

// NewSimulated constructs a simulated generator. Zero-valued options fall
// back to the wall clock and a shared random source.
func NewSimulated(opts SimulatedOptions) *Simulated {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Simulated{opts: opts}
}

// Generate returns a fresh Reading. It cannot fail.
func (s *Simulated) Generate() Reading {
	return Reading{
		Timestamp:   s.opts.Now(),
		Temperature: s.drawFrom(s.opts.Temperature),
		Humidity:    s.drawFrom(s.opts.Humidity),
	}
}

func (s *Simulated) drawFrom(r Range) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	next := rand.Float64
	if s.opts.Rand != nil {
		next = s.opts.Rand.Float64
	}
	return r.Min + next()*(r.Max-r.Min)
}

// Fixed always returns the same reading, stamped at call time. Used by the
// simulate command and tests.
type Fixed struct {
	Temperature float64
	Humidity    float64
	Now         func() time.Time
}

// Generate returns the fixed sample.
func (f *Fixed) Generate() Reading {
	now := f.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return Reading{
		Timestamp:   now(),
		Temperature: f.Temperature,
		Humidity:    f.Humidity,
	}
}

var _ Generator = (*Simulated)(nil)
var _ Generator = (*Fixed)(nil)
