//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	serviceName = "inputtrack.service"
	servicePath = "/etc/systemd/system/inputtrack.service"
)

func install(logger *slog.Logger, args []string) error {
	exePath, err := currentExecutable()
	if err != nil {
		return err
	}

	if err := os.WriteFile(servicePath, []byte(systemdUnitContent(exePath, args)), 0o644); err != nil {
		return err
	}
	for _, step := range [][]string{
		{"daemon-reload"},
		{"enable", serviceName},
		{"restart", serviceName},
	} {
		if err := runSystemctl(step...); err != nil {
			return err
		}
	}

	logger.Info("inputtrack systemd service installed", "path", servicePath, "exe", exePath)
	return nil
}

func uninstall(logger *slog.Logger) error {
	var errs []error
	if err := runSystemctl("stop", serviceName); err != nil {
		errs = append(errs, err)
	}
	if err := runSystemctl("disable", serviceName); err != nil {
		errs = append(errs, err)
	}
	if err := os.Remove(servicePath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	if err := runSystemctl("daemon-reload"); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logger.Info("inputtrack systemd service removed", "path", servicePath)
	return nil
}

func systemdUnitContent(exePath string, args []string) string {
	cmdline := []string{strconv.Quote(exePath), "serve"}
	for _, a := range args {
		cmdline = append(cmdline, strconv.Quote(a))
	}
	return fmt.Sprintf(`[Unit]
Description=inputtrack server
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
ExecStart=%s
WorkingDirectory=%s
Restart=on-failure

[Install]
WantedBy=multi-user.target
`, strings.Join(cmdline, " "), filepath.Dir(exePath))
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.EvalSymlinks(exe)
}

func runSystemctl(args ...string) error {
	out, err := exec.Command("systemctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
