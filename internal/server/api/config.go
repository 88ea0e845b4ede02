package api

import "time"

// ServerConfig represents the serve subcommand's API configuration.
// New treats a zero DefaultThreshold as the 200ms default; serve applies the
// configured value as is, so --api.default-threshold=0 disables quick actions.
type ServerConfig struct {
	Addr             string        `help:"API server listen address" default:":3650" env:"INPUTTRACK_API_ADDR"`
	DefaultThreshold time.Duration `help:"Quick action threshold for new sessions" default:"200ms" env:"INPUTTRACK_API_THRESHOLD"`
	NoAuth           bool          `help:"Disable password authentication" default:"false" env:"INPUTTRACK_API_NO_AUTH"`
	// Password enables authentication when set. It is read from the key file.
	Password          string        `kong:"-"`
	ConnectionTimeout time.Duration `kong:"-"`
}
