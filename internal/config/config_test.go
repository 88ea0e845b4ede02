package config_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/inputtrack/internal/config"
)

func TestParseTrackerFile(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
		want   time.Duration
	}{
		{name: "json ms", format: "json", data: `{"quickActionThreshold": 150}`, want: 150 * time.Millisecond},
		{name: "json string", format: "json", data: `{"quickActionThreshold": "1.5s"}`, want: 1500 * time.Millisecond},
		{name: "yaml ms", format: "yaml", data: "quickActionThreshold: 250\n", want: 250 * time.Millisecond},
		{name: "yml string", format: "yml", data: "quickActionThreshold: 80ms\n", want: 80 * time.Millisecond},
		{name: "toml ms", format: "toml", data: "quickActionThreshold = 300\n", want: 300 * time.Millisecond},
		{name: "toml string", format: "toml", data: "quickActionThreshold = \"2s\"\n", want: 2 * time.Second},
		{name: "missing key", format: "json", data: `{}`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf, err := config.ParseTrackerFile([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tf.QuickActionThreshold)
		})
	}
}

func TestParseTrackerFileErrors(t *testing.T) {
	_, err := config.ParseTrackerFile([]byte(`{"quickActionThreshold": -5}`), "json")
	assert.ErrorIs(t, err, config.ErrInvalidThreshold)

	_, err = config.ParseTrackerFile([]byte(`quickActionThreshold: soon`), "yaml")
	assert.ErrorIs(t, err, config.ErrInvalidThreshold)

	_, err = config.ParseTrackerFile([]byte(`{`), "json")
	assert.Error(t, err)

	_, err = config.ParseTrackerFile([]byte(`x=1`), "ini")
	assert.Error(t, err)
}

func TestLoadTrackerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.toml")
	require.NoError(t, os.WriteFile(path, []byte("quickActionThreshold = 120\n"), 0o644))

	tf, err := config.LoadTrackerFile(path)
	require.NoError(t, err)
	assert.Equal(t, 120*time.Millisecond, tf.QuickActionThreshold)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o644))
	_, err = config.LoadTrackerFile(empty)
	assert.ErrorIs(t, err, config.ErrEmptyFile)

	_, err = config.LoadTrackerFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quickActionThreshold: 200\n"), 0o644))

	var got atomic.Int64
	w := config.NewWatcher(path, nil, func(tf config.TrackerFile) {
		got.Store(int64(tf.QuickActionThreshold))
	})
	w.Debounce = 10 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("quickActionThreshold: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("quickActionThreshold: 450\n"), 0o644))

	assert.Eventually(t, func() bool {
		return time.Duration(got.Load()) == 450*time.Millisecond
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("quickActionThreshold: nope\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 450*time.Millisecond, time.Duration(got.Load()))
}
