package driver

import (
	"encoding/json"
	"fmt"

	"pipebind/internal/diag"
	"pipebind/internal/observ"
	"pipebind/internal/source"
)

// runTimings is serialized into the note of the OBS7001 diagnostic.
type runTimings struct {
	Files   int                  `json:"files"`
	Cached  int                  `json:"cached"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func newRunTimings(files []FileResult, report observ.Report) runTimings {
	rt := runTimings{Files: len(files), TotalMS: report.TotalMS, Phases: report.Phases}
	for i := range files {
		if files[i].Cached {
			rt.Cached++
		}
	}
	return rt
}

// reportTimings emits the run timings as an info diagnostic without a location.
// bag must be created with a limit, run-level bags come from newBag(0).
func reportTimings(bag *diag.Bag, rt runTimings) {
	data, err := json.Marshal(rt)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("checked %d file(s) in %.2f ms", rt.Files, rt.TotalMS)
	if rt.Cached > 0 {
		msg += fmt.Sprintf(" (%d from cache)", rt.Cached)
	}
	diag.ReportInfo(diag.BagReporter{Bag: bag}, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data)).
		Emit()
}
