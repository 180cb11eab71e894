package driver

import (
	"runtime"

	"pipebind/internal/project"
)

// Options controls a checking run.
type Options struct {
	// Macro is the binding macro name, "assign_to" by default.
	Macro          string
	WarnUnused     bool
	ReportRebind   bool
	MaxDiagnostics int
	// Jobs bounds concurrent file checks; 0 means GOMAXPROCS.
	Jobs       int
	Extensions []string

	// EnableTimings adds an OBS7001 summary to Result.Bag.
	EnableTimings bool

	Cache    *DiskCache
	Progress ProgressSink
}

// OptionsFromConfig maps a loaded pipebind.toml onto Options.
// The cache is not opened here.
func OptionsFromConfig(cfg project.Config) Options {
	return Options{
		Macro:          cfg.Check.Macro,
		WarnUnused:     cfg.Check.WarnUnused,
		ReportRebind:   cfg.Check.ReportRebind,
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
		Jobs:           cfg.Check.Jobs,
		Extensions:     append([]string(nil), cfg.Check.Extensions...),
	}
}

func (o *Options) normalize() {
	if o.Macro == "" {
		o.Macro = project.Defaults().Check.Macro
	}
	if len(o.Extensions) == 0 {
		o.Extensions = project.Defaults().Check.Extensions
	}
	if o.MaxDiagnostics < 0 {
		o.MaxDiagnostics = 0
	}
}

func (o *Options) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// fingerprint identifies the settings a cached result depends on.
func (o *Options) fingerprint() project.Digest {
	cfg := project.Defaults()
	cfg.Check.Macro = o.Macro
	cfg.Check.WarnUnused = o.WarnUnused
	cfg.Check.ReportRebind = o.ReportRebind
	cfg.Check.MaxDiagnostics = o.MaxDiagnostics
	return cfg.Fingerprint()
}
