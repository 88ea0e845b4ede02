package cmd

import (
	"log/slog"
)

// ServiceCommand installs inputtrack serve as a system service.
type ServiceCommand struct {
	Install   ServiceInstall   `cmd:"" help:"Install and start the service"`
	Uninstall ServiceUninstall `cmd:"" help:"Stop and remove the service"`
}

type ServiceInstall struct {
	Args []string `arg:"" optional:"" help:"Extra arguments passed to serve"`
}

func (s *ServiceInstall) Run(logger *slog.Logger) error {
	return install(logger, s.Args)
}

type ServiceUninstall struct{}

func (ServiceUninstall) Run(logger *slog.Logger) error {
	return uninstall(logger)
}
