package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics up to a fixed limit. A Bag is not safe for
// concurrent use; the driver gives every file its own.
type Bag struct {
	items   []*Diagnostic
	max     uint16
	dropped int
}

// NewBag creates a Bag that keeps at most limit diagnostics (clamped to 0..65535).
func NewBag(limit int) *Bag {
	limit = min(max(limit, 0), 0xFFFF)
	return &Bag{
		items: make([]*Diagnostic, 0, min(limit, 64)),
		max:   uint16(limit),
	}
}

// Add stores d unless the limit is reached; dropped diagnostics are counted.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }

func (b *Bag) Len() int { return len(b.items) }

// Dropped is the number of diagnostics rejected by the limit.
func (b *Bag) Dropped() int { return b.dropped }

// Items aliases the Bag's storage; callers must not modify it.
func (b *Bag) Items() []*Diagnostic { return b.items }

// Count returns how many stored diagnostics have exactly severity sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for _, d := range b.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool { return b.any(SevError) }

// HasWarnings is true for warnings and errors alike.
func (b *Bag) HasWarnings() bool { return b.any(SevWarning) }

func (b *Bag) any(floor Severity) bool {
	return slices.ContainsFunc(b.items, func(d *Diagnostic) bool { return d.Severity.AtLeast(floor) })
}

// Merge appends other, raising the limit so nothing from other is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > int(b.max) {
		b.max = uint16(min(total, 0xFFFF))
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// Filter keeps only the diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(*Diagnostic) bool) {
	b.items = slices.DeleteFunc(b.items, func(d *Diagnostic) bool { return !keep(d) })
}

// Sort orders by file, start, end, then more severe first, then code.
// Diagnostics at the same place keep their report order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y *Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
