package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pipebind/internal/ctxlog"
	"pipebind/internal/diag"
	"pipebind/internal/diagfmt"
	"pipebind/internal/driver"
	"pipebind/internal/fix"
	"pipebind/internal/project"
	"pipebind/internal/source"
	"pipebind/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>",
	Short: "Check assign_to targets in a file or directory",
	Long: `Check parses Elixir sources and reports every binding macro call whose target
is not a bare variable name, plus bindings that are never read. Directories are
walked recursively; deps, _build and hidden directories are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short|msgpack)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("no-warnings", false, "drop warnings from the output")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show fix suggestions as before/after lines")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output (same as --paths absolute)")
	checkCmd.Flags().String("paths", "auto", "file path style (auto|absolute|relative|basename)")
	checkCmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "reuse results for unchanged files from the disk cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop every cached result before checking")
	checkCmd.Flags().Bool("fix", false, "apply suggested fixes to the files")
}

type checkFlags struct {
	format           string
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	suggest          bool
	preview          bool
	pathMode         diagfmt.PathMode
	ui               uiMode
	cache            bool
	clearCache       bool
	fix              bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var (
		f   checkFlags
		err error
	)
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch f.format {
	case "pretty", "json", "sarif", "short", "msgpack":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	if f.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return f, fmt.Errorf("failed to get preview flag: %w", err)
	}
	paths, err := cmd.Flags().GetString("paths")
	if err != nil {
		return f, fmt.Errorf("failed to get paths flag: %w", err)
	}
	if f.pathMode, err = diagfmt.ParsePathMode(paths); err != nil {
		return f, err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if fullPath {
		f.pathMode = diagfmt.PathModeAbsolute
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.clearCache, err = cmd.Flags().GetBool("clear-cache"); err != nil {
		return f, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if f.fix, err = cmd.Flags().GetBool("fix"); err != nil {
		return f, fmt.Errorf("failed to get fix flag: %w", err)
	}
	return f, nil
}

// runCheck executes "check": it loads pipebind.toml, applies flag overrides,
// checks the path and prints the diagnostics in the chosen format.
// It returns errFindings when any error remains after filtering.
func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := ctxlog.FromContext(ctx)
	target := args[0]

	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	cfg, err := project.LoadOrDefault(target)
	if err != nil {
		reportConfigError(cmd, err)
		return errFindings
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}

	opts, err := checkOptions(cmd, cfg, flags)
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var files []string
	check := func(ctx context.Context, o driver.Options) (*driver.Result, error) {
		return driver.CheckFile(ctx, target, o)
	}
	if st.IsDir() {
		files, err = driver.Discover(target, opts.Extensions)
		if err != nil {
			return err
		}
		check = func(ctx context.Context, o driver.Options) (*driver.Result, error) {
			return driver.CheckDir(ctx, target, o)
		}
	} else {
		files = []string{target}
	}

	var res *driver.Result
	if shouldUseTUI(flags.ui, flags.format) && len(files) > 1 {
		res, err = runCheckWithUI(ctx, "checking", files, check, opts)
	} else {
		res, err = check(ctx, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	all := res.Diagnostics()
	if flags.fix {
		all, err = applyFixes(cmd, res, all)
		if err != nil {
			return err
		}
	}

	bag := collectDiagnostics(all, flags.noWarnings, flags.warningsAsErrors)
	pretty := flags.format == "pretty"
	if pretty && opts.EnableTimings {
		// в pretty режиме тайминги печатаются таблицей
		bag.Filter(func(d *diag.Diagnostic) bool { return d.Code != diag.ObsTimings })
	}
	if err := writeDiagnostics(cmd, bag, res.FileSet, flags); err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet && pretty {
		printSummary(cmd, res, bag)
		if opts.EnableTimings && res.Timer != nil {
			fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
		}
	}
	if bag.HasErrors() {
		return errFindings
	}
	return nil
}

func checkOptions(cmd *cobra.Command, cfg project.Config, flags checkFlags) (driver.Options, error) {
	opts := driver.OptionsFromConfig(cfg)
	if cmd.Flags().Changed("jobs") {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		opts.Jobs = jobs
	}
	persistent := cmd.Root().PersistentFlags()
	if persistent.Changed("max-diagnostics") {
		maxDiagnostics, err := persistent.GetInt("max-diagnostics")
		if err != nil {
			return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		opts.MaxDiagnostics = maxDiagnostics
	}
	timings, err := persistent.GetBool("timings")
	if err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	opts.EnableTimings = timings

	if cfg.Cache.Enabled || flags.cache || flags.clearCache {
		cache, err := openCache(cfg)
		if err != nil {
			// без кэша проверка всё равно работает
			ctxlog.FromContext(cmd.Context()).Warn("disk cache unavailable", "err", err)
			return opts, nil
		}
		if flags.clearCache {
			if err := cache.DropAll(); err != nil {
				return opts, fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		opts.Cache = cache
	}
	return opts, nil
}

func openCache(cfg project.Config) (*driver.DiskCache, error) {
	if dir := cfg.Resolve(cfg.Cache.Dir); dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache("pipebind")
}

// collectDiagnostics puts the run's diagnostics into one bag, applying the warning flags.
func collectDiagnostics(all []*diag.Diagnostic, noWarnings, warningsAsErrors bool) *diag.Bag {
	bag := diag.NewBag(len(all))
	for _, d := range all {
		if d.Severity == diag.SevWarning {
			if noWarnings {
				continue
			}
			if warningsAsErrors {
				promoted := *d
				promoted.Severity = diag.SevError
				d = &promoted
			}
		}
		bag.Add(d)
	}
	return bag
}

// applyFixes rewrites the files and returns the diagnostics that remain.
func applyFixes(cmd *cobra.Command, res *driver.Result, all []*diag.Diagnostic) ([]*diag.Diagnostic, error) {
	out, err := fix.Apply(res.FileSet, all, fix.ApplyOptions{})
	if errors.Is(err, fix.ErrNoFixes) {
		return all, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply fixes: %w", err)
	}
	logger := ctxlog.FromContext(cmd.Context())
	for _, s := range out.Skipped {
		logger.Info("fix skipped", "code", s.Diagnostic.Code.ID(), "title", s.Title, "reason", s.Reason)
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "fixed %s in %s\n", plural(len(out.Applied), "issue"), plural(len(out.FileChanges), "file"))
	}
	remaining := make([]*diag.Diagnostic, 0, len(all)-len(out.Applied))
	for _, d := range all {
		if !out.Fixed(d) {
			remaining = append(remaining, d)
		}
	}
	return remaining, nil
}

func writeDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, flags checkFlags) error {
	out := cmd.OutOrStdout()
	pathMode := flags.pathMode
	showFixes := flags.suggest || flags.preview

	switch flags.format {
	case "pretty":
		colored, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:       colored,
			Context:     1,
			PathMode:    pathMode,
			ShowNotes:   flags.withNotes,
			ShowFixes:   showFixes,
			ShowPreview: flags.preview,
		})
		return nil
	case "short":
		return diagfmt.Short(out, bag, fs, flags.withNotes)
	case "json", "msgpack":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     flags.withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  flags.preview,
		}
		if flags.format == "msgpack" {
			return diagfmt.Msgpack(out, bag, fs, opts)
		}
		return diagfmt.JSON(out, bag, fs, opts)
	case "sarif":
		return diagfmt.Sarif(out, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "pipebind",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		return fmt.Errorf("unknown format: %s", flags.format)
	}
}

func printSummary(cmd *cobra.Command, res *driver.Result, bag *diag.Bag) {
	cached := 0
	for _, f := range res.Files {
		if f.Cached {
			cached++
		}
	}
	parts := []string{
		plural(len(res.Files), "file"),
		plural(bag.Count(diag.SevError), "error"),
		plural(bag.Count(diag.SevWarning), "warning"),
	}
	if cached > 0 {
		parts = append(parts, fmt.Sprintf("%d cached", cached))
	}
	if n := res.Dropped(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d over --max-diagnostics", n))
	}
	if bag.Len() > 0 {
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "checked %s\n", strings.Join(parts, ", "))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// reportConfigError prints a broken pipebind.toml as a PRJ6001 diagnostic.
func reportConfigError(cmd *cobra.Command, err error) {
	bag := diag.NewBag(1)
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.ProjInvalidConfig, source.Span{}, err.Error()).Emit()
	colored, _ := useColor(cmd, os.Stderr)
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, source.NewFileSet(), diagfmt.PrettyOpts{Color: colored})
}
