package configpaths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDirXDG(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("unix layout")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/inputtrack", dir)

	p, err := DefaultNamedConfigPath("tracker", "yml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/inputtrack/tracker.yaml", p)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, "yaml", FormatOf("a/b.yml"))
	assert.Equal(t, "toml", FormatOf("x.toml"))
	assert.Equal(t, "json", FormatOf("x.json"))
	assert.Equal(t, "json", FormatOf("noext"))
	assert.Equal(t, "", NormalizeFormat("ini"))
}

func TestConfigCandidatePathsUserFirst(t *testing.T) {
	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("my.toml")
	require.NotEmpty(t, tomlPaths)
	assert.Equal(t, "my.toml", tomlPaths[0])
	assert.NotContains(t, jsonPaths, "my.toml")
	assert.NotContains(t, yamlPaths, "my.toml")

	for _, p := range yamlPaths {
		ext := filepath.Ext(p)
		assert.True(t, ext == ".yaml" || ext == ".yml", p)
	}
}

func TestFindUserConfig(t *testing.T) {
	t.Setenv(EnvConfig, "env.yaml")
	assert.Equal(t, "a.json", FindUserConfig([]string{"serve", "--config=a.json"}))
	assert.Equal(t, "b.toml", FindUserConfig([]string{"--config", "b.toml", "watch"}))
	assert.Equal(t, "env.yaml", FindUserConfig([]string{"watch"}))
}
