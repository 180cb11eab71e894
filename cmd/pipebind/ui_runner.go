package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pipebind/internal/driver"
	"pipebind/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI runs check while a progress model consumes its events.
// Quitting the UI early cancels the check.
func runCheckWithUI(ctx context.Context, title string, files []string, check func(context.Context, driver.Options) (*driver.Result, error), opts driver.Options) (*driver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		res, err := check(ctx, runOpts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, uiErr := program.Run()
	if uiErr != nil || !ui.Completed(final) {
		cancel()
	}
	// остаток событий после выхода из UI
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
