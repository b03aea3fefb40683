package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnbirds/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestEnsureDirs verifies all required directories are created and
// that repeated calls succeed.
func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	for range 3 {
		err := EnsureDirs(tmpDir)
		require.NoError(t, err)
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "gnbirds"),
		filepath.Join(tmpDir, ".local", "share", "gnbirds", "data"),
		filepath.Join(tmpDir, ".local", "share", "gnbirds", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), v)
	}
}

func TestTouchDirOverFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := TouchDir(filepath.Join(path, "sub"))
	assert.Error(t, err)
}

// TestEnsureConfigFile verifies the template is written once and an
// existing file is left intact.
func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	err := EnsureConfigFile(tmpDir)
	require.NoError(t, err)

	path := config.ConfigFilePath(tmpDir)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	custom := []byte("store: sqlite\n")
	require.NoError(t, os.WriteFile(path, custom, 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, content)
}

func TestEnsureConfigFileNoDir(t *testing.T) {
	err := EnsureConfigFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

// TestConfigYAML verifies that the embedded template carries the
// defaults of config.New.
func TestConfigYAML(t *testing.T) {
	assert.NotEmpty(t, ConfigYAML)

	var cfg config.Config
	err := yaml.Unmarshal([]byte(ConfigYAML), &cfg)
	require.NoError(t, err)

	def := config.New()
	assert.Equal(t, def.Store, cfg.Store)
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Convert, cfg.Convert)
	assert.Equal(t, def.Log, cfg.Log)
}
