package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/Alia5/inputtrack/internal/cmd"
	"github.com/Alia5/inputtrack/internal/configpaths"
	"github.com/Alia5/inputtrack/internal/log"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd.Version = version

	userCfg := configpaths.FindUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("inputtrack"),
		kong.Description("Keyboard and mouse state tracking with press and click detection"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}

	var rawLogger log.RawLogger
	switch {
	case cli.Log.RawFile != "":
		f, err := os.OpenFile(cli.Log.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", cli.Log.RawFile, "error", err)
			rawLogger = log.NewRaw(nil)
		} else {
			rawLogger = log.NewRaw(f)
			closeFiles = append(closeFiles, f)
		}
	case cli.Log.Level == "trace":
		rawLogger = log.NewRaw(os.Stdout)
	default:
		rawLogger = log.NewRaw(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))

	// FatalIfErrorf exits without running defers, so the files are closed first.
	err = runThenClose(func() error { return ctx.Run() }, closeFiles)
	ctx.FatalIfErrorf(err)
}

func runThenClose(run func() error, closers []io.Closer) error {
	err := run()
	for _, c := range closers {
		_ = c.Close()
	}
	return err
}
