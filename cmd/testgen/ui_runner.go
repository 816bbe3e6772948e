package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"testgen/internal/pipeline"
	"testgen/internal/ui"
)

type processOutcome struct {
	result pipeline.Result
	err    error
}

func runWithUI(ctx context.Context, out io.Writer, title string, files []string, cfg pipeline.Config) (pipeline.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan processOutcome, 1)

	go func() {
		cfg.Progress = pipeline.Tee(cfg.Progress, pipeline.ChannelSink{Ch: events})
		res, err := pipeline.New(cfg).Process(ctx, files)
		outcomeCh <- processOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал: дочитываем события, иначе конвейер встанет на ChannelSink
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
