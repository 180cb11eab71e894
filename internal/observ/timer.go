// Package observ measures how long the phases of a run take.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// phase is either a wall-clock section (Begin/End) or a sum of per-file work
// reported from workers (Add). Only wall-clock sections add up to the total.
type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	count int
	note  string
}

func (p *phase) wall() bool { return !p.start.IsZero() }

// Timer is safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []phase
	byName map[string]int // accumulated phases only
}

func NewTimer() *Timer {
	return &Timer{phases: make([]phase, 0, 8), byName: make(map[string]int)}
}

// Begin starts a wall-clock phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, phase{name: name, start: time.Now(), count: 1})
	return len(t.phases) - 1
}

// End closes the phase idx. Unknown indexes are ignored.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) || !t.phases[idx].wall() {
		return
	}
	t.phases[idx].dur = time.Since(t.phases[idx].start)
	t.phases[idx].note = note
}

// Add accumulates d into the phase called name.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if i, ok := t.byName[name]; ok {
		t.phases[i].dur += d
		t.phases[i].count++
		return
	}
	t.byName[name] = len(t.phases)
	t.phases = append(t.phases, phase{name: name, dur: d, count: 1})
}

// PhaseReport — фаза в сериализуемом виде.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the phases in the order they were started.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var (
		rep   Report
		total time.Duration
	)
	for i := range t.phases {
		p := &t.phases[i]
		if p.wall() {
			total += p.dur
		}
		rep.Phases = append(rep.Phases, PhaseReport{
			Name:       p.name,
			DurationMS: millis(p.dur),
			Count:      p.count,
			Note:       p.note,
		})
	}
	rep.TotalMS = millis(total)
	return rep
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range rep.Phases {
		fmt.Fprintf(&b, "  %-14s %9.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&b, "  x%d", p.Count)
		}
		if p.Note != "" {
			b.WriteString("  (" + p.Note + ")")
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-14s %9.2f ms\n", "total", rep.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
