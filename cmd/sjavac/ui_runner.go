package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sjavac/internal/driver"
	"sjavac/internal/pipeline"
	"sjavac/internal/ui"
)

type checkOutcome struct {
	batch *driver.Batch
	err   error
}

// runCheckWithUI runs the check in the background and renders progress
// until the event channel closes.
func runCheckWithUI(ctx context.Context, title string, paths []string, opts driver.Options) (*driver.Batch, error) {
	files := driver.Sources(paths, opts.Extensions)
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		batch, err := driver.CheckPaths(ctx, paths, optsCopy)
		outcomeCh <- checkOutcome{batch: batch, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.batch, uiErr
	}
	return outcome.batch, outcome.err
}
