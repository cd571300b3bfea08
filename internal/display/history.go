package display

import (
	"sensor-dashboard/internal/sensor"
)

// History is a bounded buffer of the most recent readings, feeding the
// chart. Oldest entries are evicted first. It has no persistence
// obligation and starts empty on every run.
type History struct {
	capacity int
	entries  []sensor.Reading
	start    int
	size     int
}

// NewHistory allocates a ring with the given capacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{
		capacity: capacity,
		entries:  make([]sensor.Reading, capacity),
	}
}

// Push appends a reading, evicting the oldest when full.
func (h *History) Push(r sensor.Reading) {
	idx := (h.start + h.size) % h.capacity
	h.entries[idx] = r
	if h.size < h.capacity {
		h.size++
		return
	}
	h.start = (h.start + 1) % h.capacity
}

// Len reports the number of buffered readings.
func (h *History) Len() int {
	return h.size
}

// Cap reports the buffer capacity.
func (h *History) Cap() int {
	return h.capacity
}

// Snapshot copies the buffered readings, oldest first.
func (h *History) Snapshot() []sensor.Reading {
	out := make([]sensor.Reading, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.entries[(h.start+i)%h.capacity]
	}
	return out
}
