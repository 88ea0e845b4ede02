//go:build linux

package cmd

import (
	"log/slog"

	"github.com/Alia5/inputtrack/input"
	"github.com/Alia5/inputtrack/internal/host/evdev"
)

func evdevSource(w *Watch, logger *slog.Logger) (input.Source, error) {
	paths := w.Devices
	if len(paths) == 0 {
		found, err := evdev.Discover(w.DeviceFilter)
		if err != nil {
			return nil, err
		}
		paths = found
	}
	if len(paths) == 0 {
		return nil, evdev.ErrNoDevices
	}
	src := evdev.New(logger, paths...)
	src.Grab = w.Grab
	return src, nil
}
