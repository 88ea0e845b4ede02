// Package config loads the tracker settings file and keeps it in sync with
// disk.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/inputtrack/internal/configpaths"
)

var (
	// ErrInvalidThreshold is returned for negative or unparsable thresholds.
	ErrInvalidThreshold = errors.New("invalid quick action threshold")
	// ErrEmptyFile is returned for files with no content, which editors
	// briefly produce while saving.
	ErrEmptyFile = errors.New("tracker file is empty")
)

// TrackerFile is the content of a tracker settings file.
//
// quickActionThreshold is either an integer number of milliseconds or a Go
// duration string such as "150ms".
type TrackerFile struct {
	QuickActionThreshold time.Duration
}

// LoadTrackerFile reads path, picking the decoder from its extension.
func LoadTrackerFile(path string) (TrackerFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TrackerFile{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return TrackerFile{}, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	tf, err := ParseTrackerFile(data, configpaths.FormatOf(path))
	if err != nil {
		return TrackerFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return tf, nil
}

// ParseTrackerFile decodes data in the given format (json, yaml or toml).
func ParseTrackerFile(data []byte, format string) (TrackerFile, error) {
	raw, err := DecodeMap(data, format)
	if err != nil {
		return TrackerFile{}, err
	}

	var tf TrackerFile
	if v, ok := raw["quickActionThreshold"]; ok {
		d, err := ParseThreshold(v)
		if err != nil {
			return TrackerFile{}, err
		}
		tf.QuickActionThreshold = d
	}
	return tf, nil
}

// ParseThreshold accepts milliseconds as any numeric type, or a duration string.
func ParseThreshold(v any) (time.Duration, error) {
	d, err := ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidThreshold, err)
	}
	return d, nil
}

// ParseDuration converts a decoded document value into a non-negative
// duration. Numbers are milliseconds.
func ParseDuration(v any) (time.Duration, error) {
	var d time.Duration
	switch t := v.(type) {
	case int:
		d = time.Duration(t) * time.Millisecond
	case int64:
		d = time.Duration(t) * time.Millisecond
	case uint64:
		d = time.Duration(t) * time.Millisecond
	case float64:
		d = time.Duration(t * float64(time.Millisecond))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, err
		}
		d = time.Duration(f * float64(time.Millisecond))
	case string:
		parsed, err := time.ParseDuration(strings.TrimSpace(t))
		if err != nil {
			return 0, err
		}
		d = parsed
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
	if d < 0 {
		return 0, errors.New("negative duration")
	}
	return d, nil
}

// ParseFloat converts a decoded document number into a float64.
func ParseFloat(v any) (float64, error) {
	switch t := v.(type) {
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case float64:
		return t, nil
	case json.Number:
		return t.Float64()
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

// DecodeMap decodes a json, yaml or toml document into a generic map.
// JSON numbers are kept as json.Number.
func DecodeMap(data []byte, format string) (map[string]any, error) {
	raw := map[string]any{}
	switch configpaths.NormalizeFormat(format) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case "toml":
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		raw = tree.ToMap()
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return raw, nil
}
