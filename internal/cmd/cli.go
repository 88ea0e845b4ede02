// Package cmd holds the kong command tree of the inputtrack binary.
package cmd

import "github.com/alecthomas/kong"

// CLI is the root command.
type CLI struct {
	ConfigFile string           `name:"config" help:"Path to a configuration file (json, yaml or toml)" type:"path" env:"INPUTTRACK_CONFIG"`
	Log        LogConfig        `embed:"" prefix:"log."`
	Version    kong.VersionFlag `help:"Print the version and exit"`

	Serve   Serve          `cmd:"" help:"Run the tracking server"`
	Watch   Watch          `cmd:"" help:"Track local input and print every event"`
	Replay  Replay         `cmd:"" help:"Replay a recorded input script"`
	Service ServiceCommand `cmd:"" help:"Manage the systemd service (linux)"`
	Config  ConfigCommand  `cmd:"" help:"Configuration helpers"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level   string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"INPUTTRACK_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"INPUTTRACK_LOG_FILE"`
	RawFile string `help:"Write a hex dump of stream traffic to this file" env:"INPUTTRACK_LOG_RAW_FILE"`
}
