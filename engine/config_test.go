package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/shoprec/recommender"
)

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
algorithm: slope_one_preprocessed
allow_nonpositive_quantity: true
rules:
  - "item.score <= 0.0"
`), 0o644))

	cfg, err := LoadFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, string(recommender.PreprocessedSlopeOne), cfg.Algorithm)
	assert.True(t, cfg.AllowNonPositiveQuantity)
	assert.Equal(t, []string{"item.score <= 0.0"}, cfg.Rules)

	_, err = New(*cfg)
	require.NoError(t, err)
}

func TestLoadFromYAMLMissingFile(t *testing.T) {
	_, err := LoadFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, string(recommender.Popularity), cfg.Algorithm)

	bad := Config{Algorithm: "nope"}
	require.Error(t, bad.Validate())
}
