//go:build !linux

package cmd

import (
	"errors"
	"log/slog"

	"github.com/Alia5/inputtrack/input"
)

var errEvdevUnsupported = errors.New("the evdev source is only available on linux")

func evdevSource(*Watch, *slog.Logger) (input.Source, error) {
	return nil, errEvdevUnsupported
}
