package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pipebind/internal/ctxlog"
	"pipebind/internal/prof"
)

// setupProfiling reads the persistent profiling flags and starts the selected
// profilers. The returned cleanup is safe to call more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()
	var (
		opts prof.Options
		err  error
	)
	if opts.CPU, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(cmd.Context())
	return func() {
		if err := session.Stop(); err != nil {
			logger.Error("failed to finish profiling", "err", err)
		}
	}, nil
}
