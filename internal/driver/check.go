package driver

import (
	"context"
	"fmt"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"pipebind/internal/ast"
	"pipebind/internal/ctxlog"
	"pipebind/internal/diag"
	"pipebind/internal/lexer"
	"pipebind/internal/observ"
	"pipebind/internal/parser"
	"pipebind/internal/project"
	"pipebind/internal/source"
)

// FileResult is the outcome for one checked file.
type FileResult struct {
	Path   string
	FileID source.FileID
	// AST is nil when the file failed to load or came from the cache.
	AST    *ast.File
	Bag    *diag.Bag
	Cached bool
}

// Result of a checking run. Files keeps the input order.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Bag holds run-level diagnostics such as timings.
	Bag   *diag.Bag
	Timer *observ.Timer
}

// Diagnostics returns every diagnostic of the run, sorted by file and position.
func (r *Result) Diagnostics() []*diag.Diagnostic {
	all := newBag(0)
	for i := range r.Files {
		all.Merge(r.Files[i].Bag)
	}
	all.Sort()
	out := all.Items()
	if r.Bag != nil {
		out = append(out, r.Bag.Items()...)
	}
	return out
}

// HasErrors reports whether any file has an error diagnostic.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any file has a warning diagnostic.
func (r *Result) HasWarnings() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasWarnings() {
			return true
		}
	}
	return false
}

// Dropped counts diagnostics cut off by the per-file limit.
func (r *Result) Dropped() int {
	n := 0
	for i := range r.Files {
		n += r.Files[i].Bag.Dropped()
	}
	return n
}

// newBag treats max <= 0 as "no limit".
func newBag(max int) *diag.Bag {
	if max <= 0 {
		max = 0xFFFF
	}
	return diag.NewBag(max)
}

// unit is a loaded (or failed) file waiting for a worker.
type unit struct {
	path   string
	id     source.FileID
	bag    *diag.Bag
	failed bool
}

// CheckFile checks a single file.
func CheckFile(ctx context.Context, path string, opts Options) (*Result, error) {
	return checkPaths(ctx, "", []string{path}, opts)
}

// CheckDir checks every file under dir whose extension is listed in
// opts.Extensions. Files are processed concurrently, at most opts.Jobs at a time.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	opts.normalize()
	timer := observ.NewTimer()
	idx := timer.Begin("discover")
	paths, err := Discover(dir, opts.Extensions)
	if err != nil {
		return nil, err
	}
	timer.End(idx, fmt.Sprintf("%d files", len(paths)))
	ctxlog.FromContext(ctx).Debug("discovered files", "dir", dir, "count", len(paths))
	return checkPathsWithTimer(ctx, dir, paths, opts, timer)
}

// CheckSource checks in-memory content registered under name.
func CheckSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	opts.normalize()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	units := []unit{{path: name, id: id, bag: newBag(opts.MaxDiagnostics)}}
	return run(ctx, fs, units, opts, observ.NewTimer())
}

func checkPaths(ctx context.Context, base string, paths []string, opts Options) (*Result, error) {
	opts.normalize()
	return checkPathsWithTimer(ctx, base, paths, opts, observ.NewTimer())
}

func checkPathsWithTimer(ctx context.Context, base string, paths []string, opts Options, timer *observ.Timer) (*Result, error) {
	fs := source.NewFileSetWithBase(base)

	// FileSet не потокобезопасен: всё грузим до запуска воркеров.
	idx := timer.Begin("load")
	units := make([]unit, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		u := unit{path: path, bag: newBag(opts.MaxDiagnostics)}
		id, err := fs.Load(path)
		if err != nil {
			u.id = fs.AddVirtual(path, nil)
			u.failed = true
			diag.ReportError(diag.BagReporter{Bag: u.bag}, diag.IOLoadFileError,
				source.Span{File: u.id}, fmt.Sprintf("failed to read %s: %v", path, err)).Emit()
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		} else {
			u.id = id
			if flags := fs.Get(id).Flags; flags != 0 {
				ctxlog.FromContext(ctx).Debug("normalized on load", "file", path, "flags", flags.String())
			}
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusDone})
		}
		units = append(units, u)
	}
	timer.End(idx, fmt.Sprintf("%d files", len(units)))

	return run(ctx, fs, units, opts, timer)
}

func run(ctx context.Context, fs *source.FileSet, units []unit, opts Options, timer *observ.Timer) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	fingerprint := opts.fingerprint()
	results := make([]FileResult, len(units))

	for _, u := range units {
		if !u.failed {
			emit(opts.Progress, Event{File: u.path, Stage: StageParse, Status: StatusQueued})
		}
	}

	idx := timer.Begin("check files")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())
	for i := range units {
		u := units[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkUnit(gctx, fs, u, &opts, fingerprint, timer)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	timer.End(idx, "")

	res := &Result{FileSet: fs, Files: results, Timer: timer, Bag: newBag(0)}
	if opts.EnableTimings {
		reportTimings(res.Bag, newRunTimings(results, timer.Report()))
	}
	logger.Debug("check finished", "files", len(results), "errors", res.HasErrors())
	emit(opts.Progress, Event{Stage: StageCheck, Status: StatusDone})
	return res, nil
}

func checkUnit(ctx context.Context, fs *source.FileSet, u unit, opts *Options, fingerprint project.Digest, timer *observ.Timer) FileResult {
	out := FileResult{Path: u.path, FileID: u.id, Bag: u.bag}
	if u.failed {
		return out
	}
	logger := ctxlog.FromContext(ctx).With("file", u.path)
	file := fs.Get(u.id)
	key := project.Combine(project.Digest(file.Hash), fingerprint)

	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			logger.Warn("cache read failed", "err", err)
		case hit && payload.Schema == diskCacheSchemaVersion:
			logger.Debug("cache hit", "key", key.Short())
			payload.restore(u.bag, u.id)
			out.Cached = true
			emit(opts.Progress, Event{File: u.path, Stage: StageCheck, Status: StatusCached})
			return out
		default:
			logger.Debug("cache miss")
		}
	}

	start := time.Now()
	emit(opts.Progress, Event{File: u.path, Stage: StageParse, Status: StatusWorking})
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: u.bag})
	defer func() {
		if n := reporter.Suppressed(); n > 0 {
			logger.Debug("suppressed duplicate diagnostics", "count", n)
		}
	}()
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		maxErrors = 0
	}
	parsed := parser.ParseFile(fs, lx, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
	out.AST = parsed.File
	parseDur := time.Since(start)
	timer.Add("parse", parseDur)
	emit(opts.Progress, Event{File: u.path, Stage: StageParse, Status: StatusDone, Elapsed: parseDur})

	start = time.Now()
	emit(opts.Progress, Event{File: u.path, Stage: StageCheck, Status: StatusWorking})
	newChecker(opts, reporter).checkFile(parsed.File)
	checkDur := time.Since(start)
	timer.Add("bind", checkDur)

	status := StatusDone
	if u.bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: u.path, Stage: StageCheck, Status: status, Elapsed: checkDur})
	logger.Debug("checked", "diagnostics", u.bag.Len(), "elapsed", parseDur+checkDur)

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, newDiskPayload(u.path, u.bag)); err != nil {
			logger.Warn("cache write failed", "err", err)
			diag.ReportWarning(diag.BagReporter{Bag: u.bag}, diag.IOCacheError,
				source.Span{File: u.id}, fmt.Sprintf("failed to store cached result: %v", err)).Emit()
		}
	}
	return out
}
