package sensor

import (
	"time"
)

// Reading is one environmental sample. Immutable once produced.
type Reading struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
}

// Generator produces one Reading per invocation. A hardware-backed
// implementation can be substituted without touching the rest of the pipeline.
type Generator interface {
	Generate() Reading
}
