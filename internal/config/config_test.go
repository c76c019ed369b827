package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/casebook/internal/paths"
	"github.com/mesh-intelligence/casebook/pkg/types"
)

func TestLoadMissingFileDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "", cfg.InstanceID)
	assert.Equal(t, types.FilterModeOR, cfg.FilterMode)
}

func TestLoadReadsValues(t *testing.T) {
	dir := t.TempDir()
	content := "instance_id: 5f9a2c\nfilter_mode: AND\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, paths.ConfigFileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "5f9a2c", cfg.InstanceID)
	assert.Equal(t, types.FilterModeAND, cfg.FilterMode)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, paths.ConfigFileName), []byte("::: not yaml"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
