//go:build !windows

// Package util holds platform specific console helpers.
package util

// IsRunFromGUI reports whether the process was started by double clicking it
// rather than from a shell. Only Windows can tell.
func IsRunFromGUI() bool { return false }

// HideConsoleWindow detaches from the console window. No-op outside Windows.
func HideConsoleWindow() {}

// EnableVirtualTerminal turns on ANSI escape handling for stdout. Terminals
// outside Windows always handle them.
func EnableVirtualTerminal() bool { return true }
