// Package configpaths locates inputtrack configuration files.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user and system config directories.
const AppName = "inputtrack"

// EnvConfig overrides the config file path when --config is absent.
const EnvConfig = "INPUTTRACK_CONFIG"

// SystemDir is consulted last on unix systems.
const SystemDir = "/etc/" + AppName

// Extensions maps each supported format to the file extensions it is read from.
var Extensions = map[string][]string{
	"json": {".json"},
	"yaml": {".yaml", ".yml"},
	"toml": {".toml"},
}

var baseNames = []string{"config", "serve", "watch", "replay"}

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, AppName), nil
		}
		return "", errors.New("AppData not set")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", AppName), nil
	}
	return "", errors.New("HOME not set")
}

// NormalizeFormat returns "json", "yaml" or "toml", or "" if f is unsupported.
func NormalizeFormat(f string) string {
	switch f {
	case "json", "JSON":
		return "json"
	case "yaml", "yml", "YAML", "YML":
		return "yaml"
	case "toml", "TOML":
		return "toml"
	}
	return ""
}

// FormatOf infers the format of path from its extension, defaulting to json.
func FormatOf(path string) string {
	ext := filepath.Ext(path)
	for format, exts := range Extensions {
		for _, e := range exts {
			if e == ext {
				return format
			}
		}
	}
	return "json"
}

// DefaultNamedConfigPath returns <config dir>/<baseName>.<ext> for format.
func DefaultNamedConfigPath(baseName, format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	f := NormalizeFormat(format)
	if f == "" {
		f = "json"
	}
	return filepath.Join(dir, baseName+Extensions[f][0]), nil
}

// EnsureDir creates the parent directory of filePath.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths lists config files to try, per format, most specific
// first: userPath, the working directory, the user config dir, then SystemDir.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	byFormat := map[string]*[]string{
		"json": &jsonPaths,
		"yaml": &yamlPaths,
		"toml": &tomlPaths,
	}
	if userPath != "" {
		p := byFormat[FormatOf(userPath)]
		*p = append(*p, userPath)
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if runtime.GOOS != "windows" {
		dirs = append(dirs, SystemDir)
	}

	for _, dir := range dirs {
		for _, base := range baseNames {
			for _, format := range []string{"json", "yaml", "toml"} {
				p := byFormat[format]
				for _, ext := range Extensions[format] {
					*p = append(*p, filepath.Join(dir, base+ext))
				}
			}
		}
	}
	return
}

// FindUserConfig returns the --config argument, falling back to EnvConfig.
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) > len("--config=") && a[:len("--config=")] == "--config=" {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(EnvConfig)
}
