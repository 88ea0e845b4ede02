//go:build windows

package main

import (
	"log/slog"
	"os"

	"github.com/Alia5/inputtrack/internal/util"
)

// Double clicking the binary starts the server.
func init() {
	if !util.IsRunFromGUI() {
		return
	}
	if len(os.Args) >= 2 && os.Args[1] == "serve" {
		return
	}
	slog.Info("Detected GUI startup, injecting 'serve' argument")
	slog.Warn("Run from a CLI for more options!")
	os.Args = append([]string{os.Args[0], "serve"}, os.Args[1:]...)
}
