//go:build windows

// Package util holds platform specific console helpers.
package util

import (
	"log/slog"
	"os"
	"slices"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetConsoleWindow = kernel32.NewProc("GetConsoleWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procFreeConsole      = kernel32.NewProc("FreeConsole")
)

// shells are parent processes that mean inputtrack was started from a CLI.
var shells = []string{
	"cmd.exe",
	"powershell.exe",
	"pwsh.exe",
	"wt.exe",
	"conhost.exe",
	"windowsterminal.exe",
	"bash.exe",
}

// IsRunFromGUI reports whether the process was started from Explorer or
// without a console at all.
func IsRunFromGUI() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	parent := parentProcessName()
	fromShell := slices.Contains(shells, strings.ToLower(parent))

	slog.Debug("Parent process", "name", parent, "hasConsole", hwnd != 0, "fromShell", fromShell)

	switch {
	case hwnd == 0:
		return true
	case fromShell:
		return false
	default:
		return strings.EqualFold(parent, "explorer.exe")
	}
}

// HideConsoleWindow hides and detaches the console window, if any.
func HideConsoleWindow() {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return
	}
	_, _, _ = procShowWindow.Call(hwnd, windows.SW_HIDE)
	_, _, _ = procFreeConsole.Call()
}

// EnableVirtualTerminal turns on ANSI escape handling for stdout. It reports
// whether escapes will be rendered.
func EnableVirtualTerminal() bool {
	h := windows.Handle(os.Stdout.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}

// parentProcessName walks one process snapshot to find the parent of the
// current process.
func parentProcessName() string {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(snapshot)

	type proc struct {
		parent uint32
		name   string
	}
	procs := map[uint32]proc{}

	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))
	for err = windows.Process32First(snapshot, &pe); err == nil; err = windows.Process32Next(snapshot, &pe) {
		procs[pe.ProcessID] = proc{parent: pe.ParentProcessID, name: windows.UTF16ToString(pe.ExeFile[:])}
	}

	self, ok := procs[uint32(os.Getpid())]
	if !ok || self.parent == 0 {
		return ""
	}
	return procs[self.parent].name
}
