package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Alia5/inputtrack/internal/config"
	"github.com/Alia5/inputtrack/internal/configpaths"
	"github.com/Alia5/inputtrack/internal/log"
	"github.com/Alia5/inputtrack/internal/server/api"
	"github.com/Alia5/inputtrack/internal/server/api/auth"
	"github.com/Alia5/inputtrack/internal/server/api/handler"
	"github.com/Alia5/inputtrack/internal/util"
)

const keyFileName = "inputtrack.key.txt"

// Version is reported by the ping route. Set by main.
var Version = "dev"

type Serve struct {
	ApiServerConfig   api.ServerConfig `embed:"" prefix:"api."`
	ConnectionTimeout time.Duration    `help:"Idle timeout for request connections" default:"30s" env:"INPUTTRACK_CONNECTION_TIMEOUT"`
	TrackerFile       string           `help:"Tracker settings file, reloaded on change" type:"path" env:"INPUTTRACK_TRACKER_FILE"`
	KeyFile           string           `help:"Password file (defaults to the config directory)" type:"path" env:"INPUTTRACK_KEY_FILE"`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, rawLogger, nil)
}

// StartServer runs the server until ctx is done. ready, when set, receives
// the server once it is listening.
func (s *Serve) StartServer(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger, ready func(*api.Server)) error {
	s.ApiServerConfig.ConnectionTimeout = s.ConnectionTimeout

	if s.ApiServerConfig.Addr == "" {
		return errors.New("API server address must be set (default :3650)")
	}
	if s.ApiServerConfig.DefaultThreshold < 0 {
		return fmt.Errorf("negative threshold %v", s.ApiServerConfig.DefaultThreshold)
	}
	if !s.ApiServerConfig.NoAuth {
		pwd, err := s.loadOrCreatePassword(logger)
		if err != nil {
			return err
		}
		s.ApiServerConfig.Password = pwd
	}

	srv := api.New(s.ApiServerConfig.Addr, s.ApiServerConfig, logger, rawLogger)
	// api.New reads zero as unset; here zero was asked for.
	srv.SetThreshold(s.ApiServerConfig.DefaultThreshold)
	handler.RegisterAll(srv, Version)

	watcher, err := watchTrackerFile(ctx, s.TrackerFile, logger, func(tf config.TrackerFile) {
		srv.SetThreshold(tf.QuickActionThreshold)
		logger.Info("Applied tracker file", "threshold", tf.QuickActionThreshold)
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := srv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		if util.IsRunFromGUI() {
			fmt.Println("Press any key to exit...")
			_, _ = os.Stdin.Read(make([]byte, 1))
		}
		return err
	}
	defer srv.Close()

	if util.IsRunFromGUI() {
		go func() {
			time.Sleep(250 * time.Millisecond)
			util.HideConsoleWindow()
		}()
	}
	if ready != nil {
		ready(srv)
	}

	<-ctx.Done()
	logger.Info("Shutting down", "sessions", srv.Sessions().Len())
	return nil
}

func (s *Serve) loadOrCreatePassword(logger *slog.Logger) (string, error) {
	path := s.KeyFile
	if path == "" {
		dir, err := configpaths.DefaultConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve key file path: %w", err)
		}
		path = filepath.Join(dir, keyFileName)
	}
	if pwd, err := os.ReadFile(path); err == nil {
		if p := strings.TrimSpace(string(pwd)); p != "" {
			return p, nil
		}
	}

	pwd, err := auth.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate new API password: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("failed to create config dir for key file: %w", err)
	}
	if err := os.WriteFile(path, []byte(pwd), 0o600); err != nil {
		return "", fmt.Errorf("failed to write new API password to file: %w", err)
	}
	logger.Info("Generated API server password", "path", path)
	logger.Info("-------------------------------------")
	logger.Info("Your inputtrack API password is:")
	logger.Info("-------------------------------------")
	logger.Info(pwd)
	logger.Info("-------------------------------------")
	logger.Info("You can change this password at any time by editing the file")
	return pwd, nil
}
