package ui

import (
	"strings"
	"testing"

	"pipebind/internal/driver"
)

func TestApplyEventTracksStatus(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("checking", []string{"a.ex", "b.ex"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.ex", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Errorf("status = %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.ex", Stage: driver.StageParse, Status: driver.StatusDone})
	if m.items[0].status != "parsed" || m.items[0].progress >= 1 {
		t.Errorf("parse done must not finish the file: %+v", m.items[0])
	}
	m.applyEvent(driver.Event{File: "a.ex", Stage: driver.StageCheck, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "b.ex", Stage: driver.StageCheck, Status: driver.StatusCached})
	if m.finished() != 2 {
		t.Errorf("finished = %d", m.finished())
	}
	m.applyEvent(driver.Event{File: "unknown.ex", Stage: driver.StageCheck, Status: driver.StatusDone})

	m.applyEvent(driver.Event{Stage: driver.StageCheck, Status: driver.StatusDone})
	if m.stageLabel != "done" {
		t.Errorf("stage label = %q", m.stageLabel)
	}

	view := m.View()
	for _, want := range []string{"checking 2/2", "a.ex", "cached"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressNeverGoesBack(t *testing.T) {
	m := NewProgressModel("t", []string{"a.ex"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.ex", Stage: driver.StageCheck, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "a.ex", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].progress != 1 {
		t.Errorf("progress = %v", m.items[0].progress)
	}
}

func TestVisibleRowsPrefersUnfinished(t *testing.T) {
	files := make([]string, maxRows+4)
	for i := range files {
		files[i] = strings.Repeat("f", i+1) + ".ex"
	}
	m := NewProgressModel("t", files, nil).(*progressModel)
	for _, f := range files[:maxRows] {
		m.applyEvent(driver.Event{File: f, Stage: driver.StageCheck, Status: driver.StatusDone})
	}
	rows := m.visibleRows()
	if len(rows) != maxRows {
		t.Fatalf("rows = %d", len(rows))
	}
	for _, r := range rows[:4] {
		if r.progress >= 1 {
			t.Errorf("unfinished files must come first, got %+v", r)
		}
	}
	if !strings.Contains(m.View(), "... and 4 more") {
		t.Error("missing overflow line")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ab", 6); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
}
