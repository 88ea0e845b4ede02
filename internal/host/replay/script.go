// Package replay plays timed scripts of raw input through a tracker and
// records live input into such scripts.
package replay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/internal/config"
	"github.com/Alia5/inputtrack/internal/configpaths"
)

var (
	ErrNoEvents    = errors.New("script has no events")
	ErrOutOfOrder  = errors.New("event offsets must not decrease")
	ErrUnknownKey  = errors.New("unknown script key")
	ErrButtonIndex = errors.New("button must be an integer in int16 range")
)

// thresholdKeys are the accepted spellings of the threshold key. The second
// matches the tracker settings file.
var thresholdKeys = []string{"threshold", "quickActionThreshold"}

// Step is one scripted raw notification, At after the start of the script.
type Step struct {
	At    time.Duration
	Frame apitypes.RawFrame
}

// Script is a replayable sequence of raw notifications.
//
// Document layout (yaml shown, json and toml use the same keys):
//
//	threshold: 150ms
//	events:
//	  - {at: 0, type: key-down, code: KeyA}
//	  - {at: 120ms, type: key-up, code: KeyA}
//	  - {at: 130, type: move, position: [10, 20], delta: [1, 2]}
//	  - {at: 140, type: button-down, button: 2}
//
// Numeric offsets are milliseconds. quickActionThreshold is accepted in place
// of threshold.
type Script struct {
	// Threshold overrides the tracker threshold when non-nil.
	Threshold *time.Duration
	Steps     []Step
}

// Duration returns the offset of the last step.
func (s *Script) Duration() time.Duration {
	if len(s.Steps) == 0 {
		return 0
	}
	return s.Steps[len(s.Steps)-1].At
}

// Load reads a script, picking the decoder from the file extension.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, configpaths.FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a script document in the given format.
func Parse(data []byte, format string) (*Script, error) {
	raw, err := config.DecodeMap(data, format)
	if err != nil {
		return nil, err
	}

	s := &Script{}
	for k := range raw {
		if k != "events" && !slices.Contains(thresholdKeys, k) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
	}
	var seen string
	for _, k := range thresholdKeys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		if seen != "" {
			return nil, fmt.Errorf("%s and %s are both set", seen, k)
		}
		seen = k
		d, err := config.ParseThreshold(v)
		if err != nil {
			return nil, err
		}
		s.Threshold = &d
	}

	events, _ := raw["events"].([]any)
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	var last time.Duration
	for i, e := range events {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("event %d: expected a table, got %T", i, e)
		}
		step, err := parseStep(m)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if step.At < last {
			return nil, fmt.Errorf("event %d: %w", i, ErrOutOfOrder)
		}
		last = step.At
		s.Steps = append(s.Steps, step)
	}
	return s, nil
}

func parseStep(m map[string]any) (Step, error) {
	var step Step
	if v, ok := m["at"]; ok {
		d, err := config.ParseDuration(v)
		if err != nil {
			return step, fmt.Errorf("at: %w", err)
		}
		step.At = d
	}

	typ, _ := m["type"].(string)
	kind, err := apitypes.ParseFrameKind(typ)
	if err != nil {
		return step, err
	}
	f := apitypes.RawFrame{Kind: kind}

	switch kind {
	case apitypes.FrameKeyDown, apitypes.FrameKeyUp:
		code, _ := m["code"].(string)
		if code == "" {
			return step, errors.New("missing code")
		}
		if len(code) > apitypes.MaxCodeLen {
			return step, apitypes.ErrCodeTooLong
		}
		f.Code = code
	case apitypes.FrameButtonDown, apitypes.FrameButtonUp:
		v, ok := m["button"]
		if !ok {
			return step, errors.New("missing button")
		}
		n, err := config.ParseFloat(v)
		if err != nil {
			return step, fmt.Errorf("button: %w", err)
		}
		if n != math.Trunc(n) || n < math.MinInt16 || n > math.MaxInt16 {
			return step, fmt.Errorf("%w: %v", ErrButtonIndex, v)
		}
		f.Index = int16(n)
	case apitypes.FrameMove:
		if f.X, f.Y, err = pair(m, "position"); err != nil {
			return step, err
		}
		if f.DX, f.DY, err = pair(m, "delta"); err != nil {
			return step, err
		}
	case apitypes.FrameWheel:
		if f.DX, f.DY, err = pair(m, "delta"); err != nil {
			return step, err
		}
	}
	step.Frame = f
	return step, nil
}

// pair reads an optional two element number list. Missing means zero.
func pair(m map[string]any, key string) (float32, float32, error) {
	v, ok := m[key]
	if !ok {
		return 0, 0, nil
	}
	list, ok := v.([]any)
	if !ok || len(list) != 2 {
		return 0, 0, fmt.Errorf("%s: expected two numbers", key)
	}
	x, err := config.ParseFloat(list[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", key, err)
	}
	y, err := config.ParseFloat(list[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", key, err)
	}
	return float32(x), float32(y), nil
}

// Marshal encodes the script in the given format. Offsets are written as
// duration strings.
func (s *Script) Marshal(format string) ([]byte, error) {
	events := make([]map[string]any, len(s.Steps))
	for i, st := range s.Steps {
		e := map[string]any{"at": st.At.String(), "type": st.Frame.Kind.String()}
		f := st.Frame
		switch f.Kind {
		case apitypes.FrameKeyDown, apitypes.FrameKeyUp:
			e["code"] = f.Code
		case apitypes.FrameButtonDown, apitypes.FrameButtonUp:
			e["button"] = int64(f.Index)
		case apitypes.FrameMove:
			e["position"] = []float64{float64(f.X), float64(f.Y)}
			e["delta"] = []float64{float64(f.DX), float64(f.DY)}
		case apitypes.FrameWheel:
			e["delta"] = []float64{float64(f.DX), float64(f.DY)}
		}
		events[i] = e
	}
	doc := map[string]any{"events": events}
	if s.Threshold != nil {
		doc["threshold"] = s.Threshold.String()
	}

	switch configpaths.NormalizeFormat(format) {
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "yaml":
		return yaml.Marshal(doc)
	case "toml":
		tree, err := toml.TreeFromMap(doc)
		if err != nil {
			return nil, err
		}
		return []byte(tree.String()), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", strings.TrimSpace(format))
	}
}
