package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("discover")
	tm.End(idx, "3 files")
	tm.End(99, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 1 || rep.Phases[0].Name != "discover" || rep.Phases[0].Note != "3 files" {
		t.Fatalf("report = %+v", rep)
	}
	if !strings.Contains(tm.Summary(), "discover") {
		t.Errorf("summary = %q", tm.Summary())
	}
}

func TestTimerAddConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Millisecond)
		}()
	}
	wg.Wait()

	rep := tm.Report()
	if len(rep.Phases) != 1 {
		t.Fatalf("phases = %+v", rep.Phases)
	}
	if rep.Phases[0].Count != 16 || rep.Phases[0].DurationMS != 16 {
		t.Errorf("parse = %+v", rep.Phases[0])
	}
	if rep.TotalMS != 0 {
		t.Errorf("accumulated phases must not count into total, got %v", rep.TotalMS)
	}
}

func TestTimerNilAdd(t *testing.T) {
	var tm *Timer
	tm.Add("x", time.Second) // no panic
}
