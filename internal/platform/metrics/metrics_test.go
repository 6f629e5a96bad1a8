package metrics

import (
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(404, 20*time.Millisecond)
	c.Record(403, 0)
	c.Record(500, 30*time.Millisecond)

	snap := c.Snapshot()
	if snap.RequestsTotal != 4 || snap.ClientErrorsTotal != 2 || snap.ServerErrorsTotal != 1 || snap.DeniedTotal != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.AvgDurationMs != 15 {
		t.Fatalf("expected 15ms average, got %v", snap.AvgDurationMs)
	}
}

func TestCollectorEmpty(t *testing.T) {
	if avg := New().Snapshot().AvgDurationMs; avg != 0 {
		t.Fatalf("expected zero average, got %v", avg)
	}
}
