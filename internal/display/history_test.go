package display

import (
	"testing"
	"time"

	"sensor-dashboard/internal/sensor"
)

func readingN(n int) sensor.Reading {
	return sensor.Reading{
		Timestamp:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * 5 * time.Second),
		Temperature: float64(n),
		Humidity:    50.0,
	}
}

func TestHistoryNeverExceedsCapacity(t *testing.T) {
	h := NewHistory(200)
	for i := 0; i < 500; i++ {
		h.Push(readingN(i))
		if h.Len() > 200 {
			t.Fatalf("history grew past its cap: %d", h.Len())
		}
	}
	if h.Len() != 200 {
		t.Fatalf("history should be full at 200, got %d", h.Len())
	}
}

func TestHistoryEvictsOldestFirst(t *testing.T) {
	h := NewHistory(200)
	for i := 0; i < 201; i++ {
		h.Push(readingN(i))
	}

	snap := h.Snapshot()
	if len(snap) != 200 {
		t.Fatalf("snapshot should hold 200 entries, got %d", len(snap))
	}
	if snap[0].Temperature != 1 {
		t.Fatalf("after 201 pushes the head must be reading 1, got %f", snap[0].Temperature)
	}
	if snap[len(snap)-1].Temperature != 200 {
		t.Fatalf("tail must be the newest reading, got %f", snap[len(snap)-1].Temperature)
	}
	for i := 0; i < len(snap); i++ {
		if snap[i].Temperature != float64(i+1) {
			t.Fatalf("snapshot order broken at %d: %f", i, snap[i].Temperature)
		}
	}
}

func TestHistorySnapshotBeforeFull(t *testing.T) {
	h := NewHistory(200)
	for i := 0; i < 3; i++ {
		h.Push(readingN(i))
	}
	snap := h.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(snap))
	}
	if snap[0].Temperature != 0 || snap[2].Temperature != 2 {
		t.Fatal("snapshot must be oldest-first")
	}
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	h := NewHistory(4)
	h.Push(readingN(0))
	snap := h.Snapshot()
	snap[0].Temperature = 99
	if h.Snapshot()[0].Temperature == 99 {
		t.Fatal("snapshot must not alias the buffer")
	}
}
