package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivier-w/goo/internal/body"
	"github.com/olivier-w/goo/internal/metaball"
	"github.com/olivier-w/goo/internal/scene"
)

// Config is the full application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Field  FieldConfig  `mapstructure:"field" yaml:"field"`
	Body   BodyConfig   `mapstructure:"body" yaml:"body"`
	Scene  SceneConfig  `mapstructure:"scene" yaml:"scene"`
}

// LoggerConfig controls zap output. The TUI never logs to the terminal, so
// LogFile is the only sink there.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console colour of each level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// FieldConfig configures the metaball field and its sampling grid.
type FieldConfig struct {
	Threshold  float64      `mapstructure:"threshold" yaml:"threshold"`
	Resolution int          `mapstructure:"resolution" yaml:"resolution"`
	Bounds     BoundsConfig `mapstructure:"bounds" yaml:"bounds"`
}

// BoundsConfig is the world rectangle sampled by the boundary scan.
type BoundsConfig struct {
	XMin float64 `mapstructure:"x_min" yaml:"x_min"`
	XMax float64 `mapstructure:"x_max" yaml:"x_max"`
	YMin float64 `mapstructure:"y_min" yaml:"y_min"`
	YMax float64 `mapstructure:"y_max" yaml:"y_max"`
}

// BodyConfig configures the spring body.
type BodyConfig struct {
	BaseRadius float64 `mapstructure:"base_radius" yaml:"base_radius"`
	Stiffness  float64 `mapstructure:"stiffness" yaml:"stiffness"`
	Damping    float64 `mapstructure:"damping" yaml:"damping"`
	MaxStretch float64 `mapstructure:"max_stretch" yaml:"max_stretch"`
	Step       string  `mapstructure:"step" yaml:"step"`
}

// SceneConfig configures the driver loop.
type SceneConfig struct {
	Script        string  `mapstructure:"script" yaml:"script"`
	FPS           int     `mapstructure:"fps" yaml:"fps"`
	Workers       int     `mapstructure:"workers" yaml:"workers"`
	Anchors       int     `mapstructure:"anchors" yaml:"anchors"`
	AnchorSpacing float64 `mapstructure:"anchor_spacing" yaml:"anchor_spacing"`
}

// NewViper returns a viper instance with defaults and GOO_* environment
// overrides wired in.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("GOO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	// Logger
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "goo")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// Field
	v.SetDefault("field.threshold", 1.0)
	v.SetDefault("field.resolution", metaball.DefaultResolution)
	v.SetDefault("field.bounds.x_min", metaball.DefaultBounds.Min.X)
	v.SetDefault("field.bounds.x_max", metaball.DefaultBounds.Max.X)
	v.SetDefault("field.bounds.y_min", metaball.DefaultBounds.Min.Y)
	v.SetDefault("field.bounds.y_max", metaball.DefaultBounds.Max.Y)

	// Body
	t := body.DefaultTuning()
	v.SetDefault("body.base_radius", 1.5)
	v.SetDefault("body.stiffness", t.Stiffness)
	v.SetDefault("body.damping", t.Damping)
	v.SetDefault("body.max_stretch", t.MaxStretch)
	v.SetDefault("body.step", t.Step.String())

	// Scene
	v.SetDefault("scene.script", scene.ScriptHero.String())
	v.SetDefault("scene.fps", scene.FPS)
	v.SetDefault("scene.workers", 1)
	v.SetDefault("scene.anchors", 11)
	v.SetDefault("scene.anchor_spacing", 0.9)
}

// NewDefaultConfig returns the configuration with nothing but defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// Defaults alone always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Read loads a config file into v. With an empty path it looks for
// goo.yaml in the working directory and a missing file is not an error.
func Read(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("goo")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Decode unmarshals and validates v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load is Read followed by Decode on a fresh viper instance.
func Load(path string) (*Config, error) {
	v := NewViper()
	if err := Read(v, path); err != nil {
		return nil, err
	}
	return Decode(v)
}

// Validate checks every section and reports the first problem found.
func (c *Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return err
	}
	if err := c.Body.Validate(); err != nil {
		return err
	}
	return c.Scene.Validate()
}

func (f FieldConfig) Validate() error {
	if !(f.Threshold > 0) {
		return fmt.Errorf("field.threshold must be positive, got %v", f.Threshold)
	}
	if f.Resolution <= 0 {
		return fmt.Errorf("field.resolution must be a positive integer, got %d", f.Resolution)
	}
	if _, err := f.Grid(); err != nil {
		return fmt.Errorf("field.bounds must have min < max on both axes: %w", err)
	}
	return nil
}

// Grid returns the sampling grid described by the field section.
func (f FieldConfig) Grid() (metaball.Grid, error) {
	return metaball.NewGrid(r2.Box{
		Min: r2.Vec{X: f.Bounds.XMin, Y: f.Bounds.YMin},
		Max: r2.Vec{X: f.Bounds.XMax, Y: f.Bounds.YMax},
	}, f.Resolution)
}

func (b BodyConfig) Validate() error {
	if !(b.BaseRadius > 0) {
		return fmt.Errorf("body.base_radius must be positive, got %v", b.BaseRadius)
	}
	if !(b.Stiffness > 0) {
		return fmt.Errorf("body.stiffness must be positive, got %v", b.Stiffness)
	}
	if !(b.Damping > 0 && b.Damping <= 1) {
		return fmt.Errorf("body.damping must be in (0, 1], got %v", b.Damping)
	}
	if !(b.MaxStretch >= 1) {
		return fmt.Errorf("body.max_stretch must be >= 1, got %v", b.MaxStretch)
	}
	if _, err := body.ParseStepMode(b.Step); err != nil {
		return fmt.Errorf("body.step must be legacy or scaled: %w", err)
	}
	return nil
}

// Tuning returns the spring constants described by the body section.
func (b BodyConfig) Tuning() (body.Tuning, error) {
	step, err := body.ParseStepMode(b.Step)
	if err != nil {
		return body.Tuning{}, err
	}
	return body.Tuning{
		Stiffness:  b.Stiffness,
		Damping:    b.Damping,
		MaxStretch: b.MaxStretch,
		Step:       step,
	}, nil
}

func (s SceneConfig) Validate() error {
	if _, err := scene.ParseScript(s.Script); err != nil {
		return fmt.Errorf("scene.script must be hero or preview: %w", err)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("scene.fps must be positive, got %d", s.FPS)
	}
	if s.Workers < 1 {
		return fmt.Errorf("scene.workers must be >= 1, got %d", s.Workers)
	}
	if s.Anchors < 1 {
		return fmt.Errorf("scene.anchors must be >= 1, got %d", s.Anchors)
	}
	if !(s.AnchorSpacing > 0) {
		return fmt.Errorf("scene.anchor_spacing must be positive, got %v", s.AnchorSpacing)
	}
	return nil
}

// SceneOptions assembles director options from the whole configuration.
func (c *Config) SceneOptions(logger *zap.Logger) (scene.Options, error) {
	grid, err := c.Field.Grid()
	if err != nil {
		return scene.Options{}, err
	}
	tuning, err := c.Body.Tuning()
	if err != nil {
		return scene.Options{}, err
	}
	script, err := scene.ParseScript(c.Scene.Script)
	if err != nil {
		return scene.Options{}, err
	}
	return scene.Options{
		Threshold:     c.Field.Threshold,
		Grid:          grid,
		Tuning:        tuning,
		BaseRadius:    c.Body.BaseRadius,
		FPS:           c.Scene.FPS,
		Workers:       c.Scene.Workers,
		Anchors:       c.Scene.Anchors,
		AnchorSpacing: c.Scene.AnchorSpacing,
		Script:        script,
		Logger:        logger,
	}, nil
}
