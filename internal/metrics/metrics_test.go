package metrics

import (
	"errors"
	"testing"
	"time"
)

type captureBackend struct {
	counters   map[string]float64
	lastLabels Labels
}

func (c *captureBackend) IncCounter(name string, delta float64, labels Labels) {
	if c.counters == nil {
		c.counters = map[string]float64{}
	}
	c.counters[name] += delta
	c.lastLabels = labels
}

func (c *captureBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (c *captureBackend) Flush() error                                               { return nil }

func TestRecordStageLabels(t *testing.T) {
	c := &captureBackend{}
	SetBackend(c)
	defer SetBackend(nopBackend{})

	RecordStage("dedup", nil, 10*time.Millisecond)
	if c.counters["prep_stage_total"] != 1 {
		t.Fatalf("counter: got %v want 1", c.counters["prep_stage_total"])
	}
	if c.lastLabels["status"] != "success" || c.lastLabels["stage"] != "dedup" {
		t.Fatalf("labels: %v", c.lastLabels)
	}

	RecordStage("dedup", errors.New("boom"), time.Millisecond)
	if c.lastLabels["status"] != "failure" {
		t.Fatalf("labels after error: %v", c.lastLabels)
	}
}

func TestRecordRowsIgnoresNonPositive(t *testing.T) {
	c := &captureBackend{}
	SetBackend(c)
	defer SetBackend(nopBackend{})

	RecordRows("removed", 0)
	RecordRows("removed", -5)
	if len(c.counters) != 0 {
		t.Fatalf("non-positive deltas recorded: %v", c.counters)
	}
	RecordRows("removed", 3)
	if c.counters["prep_rows_total"] != 3 {
		t.Fatalf("counter: got %v", c.counters["prep_rows_total"])
	}
}

// SetBackend(nil) must keep the existing backend rather than panic later.
func TestSetBackendNil(t *testing.T) {
	SetBackend(nil)
	RecordRows("processed", 1)
	if err := Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}
