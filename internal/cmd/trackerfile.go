package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Alia5/inputtrack/internal/config"
)

// watchTrackerFile applies path once and then on every change until the
// returned closer is closed. An empty path does nothing.
func watchTrackerFile(ctx context.Context, path string, logger *slog.Logger, apply func(config.TrackerFile)) (io.Closer, error) {
	if path == "" {
		return io.NopCloser(nil), nil
	}
	tf, err := config.LoadTrackerFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tracker file: %w", err)
	}
	apply(tf)

	w := config.NewWatcher(path, logger, apply)
	if err := w.Start(ctx); err != nil {
		return nil, fmt.Errorf("watch tracker file: %w", err)
	}
	logger.Info("Watching tracker file", "path", w.Path)
	return w, nil
}
