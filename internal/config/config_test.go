package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/goo/internal/body"
	"github.com/olivier-w/goo/internal/metaball"
	"github.com/olivier-w/goo/internal/scene"
)

// -- Defaults --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "goo", cfg.Logger.ServiceName)
	assert.Empty(t, cfg.Logger.LogFile)
	assert.Equal(t, 1.0, cfg.Field.Threshold)
	assert.Equal(t, metaball.DefaultResolution, cfg.Field.Resolution)
	assert.Equal(t, -8.0, cfg.Field.Bounds.XMin)
	assert.Equal(t, 4.5, cfg.Field.Bounds.YMax)
	assert.Equal(t, 1.5, cfg.Body.BaseRadius)
	assert.Equal(t, 0.08, cfg.Body.Stiffness)
	assert.Equal(t, 0.85, cfg.Body.Damping)
	assert.Equal(t, "legacy", cfg.Body.Step)
	assert.Equal(t, "hero", cfg.Scene.Script)
	assert.Equal(t, 60, cfg.Scene.FPS)
	assert.Equal(t, 1, cfg.Scene.Workers)

	require.NoError(t, cfg.Validate())
}

func TestDefaultsMatchPackages(t *testing.T) {
	cfg := NewDefaultConfig()

	grid, err := cfg.Field.Grid()
	require.NoError(t, err)
	assert.Equal(t, metaball.DefaultGrid(), grid)

	tuning, err := cfg.Body.Tuning()
	require.NoError(t, err)
	assert.Equal(t, body.DefaultTuning(), tuning)

	opts, err := cfg.SceneOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, scene.DefaultOptions(), opts)
}

// -- Validation --

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"threshold", func(c *Config) { c.Field.Threshold = 0 }, "field.threshold must be positive"},
		{"resolution", func(c *Config) { c.Field.Resolution = -4 }, "field.resolution must be a positive integer"},
		{"bounds", func(c *Config) { c.Field.Bounds.XMin = 9 }, "field.bounds must have min < max on both axes"},
		{"base radius", func(c *Config) { c.Body.BaseRadius = 0 }, "body.base_radius must be positive"},
		{"stiffness", func(c *Config) { c.Body.Stiffness = -1 }, "body.stiffness must be positive"},
		{"damping", func(c *Config) { c.Body.Damping = 1.2 }, "body.damping must be in (0, 1]"},
		{"max stretch", func(c *Config) { c.Body.MaxStretch = 0.5 }, "body.max_stretch must be >= 1"},
		{"step", func(c *Config) { c.Body.Step = "euler" }, "body.step must be legacy or scaled"},
		{"script", func(c *Config) { c.Scene.Script = "intro" }, "scene.script must be hero or preview"},
		{"fps", func(c *Config) { c.Scene.FPS = 0 }, "scene.fps must be positive"},
		{"workers", func(c *Config) { c.Scene.Workers = 0 }, "scene.workers must be >= 1"},
		{"anchors", func(c *Config) { c.Scene.Anchors = 0 }, "scene.anchors must be >= 1"},
		{"spacing", func(c *Config) { c.Scene.AnchorSpacing = 0 }, "scene.anchor_spacing must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBoundsErrorWrapsInvalidGrid(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Field.Bounds.YMin = cfg.Field.Bounds.YMax
	assert.ErrorIs(t, cfg.Validate(), metaball.ErrInvalidGrid)
}

// -- Loading --

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := []byte(`
field:
  resolution: 40
body:
  step: scaled
scene:
  script: preview
  workers: 4
logger:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Field.Resolution)
	assert.Equal(t, "scaled", cfg.Body.Step)
	assert.Equal(t, "preview", cfg.Scene.Script)
	assert.Equal(t, 4, cfg.Scene.Workers)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.85, cfg.Body.Damping)

	opts, err := cfg.SceneOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, scene.ScriptPreview, opts.Script)
	assert.Equal(t, body.StepScaled, opts.Tuning.Step)
	assert.Equal(t, 40, opts.Grid.Resolution)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("body:\n  damping: 0\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body.damping must be in (0, 1]")
}

func TestLoadMissingFile(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config")
	})

	t.Run("implicit goo.yaml is optional", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, NewDefaultConfig(), cfg)
	})
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("GOO_SCENE_FPS", "30")
	t.Setenv("GOO_BODY_STEP", "scaled")

	v := NewViper()
	require.NoError(t, Read(v, ""))
	cfg, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Scene.FPS)
	assert.Equal(t, "scaled", cfg.Body.Step)
}
