package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atomicstack/fleetpick/internal/backend"
	"github.com/atomicstack/fleetpick/internal/format/output"
	"github.com/atomicstack/fleetpick/internal/logging"
	"github.com/atomicstack/fleetpick/internal/logging/events"
	"github.com/atomicstack/fleetpick/internal/option"
	"github.com/atomicstack/fleetpick/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned by Run when the user quits without submitting.
var ErrCancelled = errors.New("cancelled")

// Config describes user-provided application options.
type Config struct {
	OptionsPath   string
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
	Output        string
	Clipboard     bool
	Watch         bool
	WatchInterval time.Duration
	MaxDisplayed  int
	Focus         string
	NoBlink       bool
}

const defaultWatchInterval = 2 * time.Second

// Run loads the option source, runs the form and writes the submission to
// out.
func Run(cfg Config, out io.Writer) error {
	ctx := context.Background()
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	ds, err := option.Load(ctx, cfg.OptionsPath)
	if err != nil {
		events.Source.Error(cfg.OptionsPath, err)
		return fmt.Errorf("load options: %w", err)
	}
	events.Source.Load(cfg.OptionsPath, len(ds.Fields))

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = startWatcher(cfg)
		if err != nil {
			// the form still works from the initial load
			logging.Error(err)
		} else {
			defer watcher.Stop()
		}
	}

	model := ui.NewModel(ui.Options{
		Dataset:      ds,
		SourcePath:   cfg.OptionsPath,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Verbose:      cfg.Verbose,
		Output:       format,
		Clipboard:    cfg.Clipboard,
		MaxDisplayed: cfg.MaxDisplayed,
		Focus:        cfg.Focus,
		StaticCaret:  cfg.NoBlink,
		Watcher:      watcher,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	return writeResult(final, out)
}

func startWatcher(cfg Config) (*backend.Watcher, error) {
	interval := cfg.WatchInterval
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	path := cfg.OptionsPath
	return backend.NewWatcher(path, interval, func(ctx context.Context) (interface{}, error) {
		return option.Load(ctx, path)
	})
}

func writeResult(final tea.Model, out io.Writer) error {
	m, ok := final.(*ui.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	result, submitted := m.Result()
	events.App.Exit(submitted)
	if !submitted {
		return ErrCancelled
	}
	if _, err := io.WriteString(out, result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
