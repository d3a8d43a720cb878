package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/olivier-w/goo/internal/config"
	"github.com/olivier-w/goo/internal/metaball"
	"github.com/olivier-w/goo/internal/observability"
	"github.com/olivier-w/goo/internal/scene"
	"github.com/olivier-w/goo/internal/ui"
)

// consoleAnnotation marks commands that may log to stderr. Everything else
// owns the terminal and logs only to the configured file.
const consoleAnnotation = "console"

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

// flagBindings maps persistent flags onto config keys.
var flagBindings = map[string]string{
	"script":     "scene.script",
	"step":       "body.step",
	"workers":    "scene.workers",
	"fps":        "scene.fps",
	"resolution": "field.resolution",
	"log-level":  "logger.level",
	"log-file":   "logger.log_file",
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:               "goo",
		Short:             "A metaball blob that melts, follows and crystallizes in your terminal.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runUI,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./goo.yaml)")
	pf.String("script", scene.ScriptHero.String(), "scene to play: hero or preview")
	pf.String("step", "legacy", "spring integration: legacy or scaled")
	pf.Int("workers", 1, "goroutines used for the boundary scan")
	pf.Int("fps", scene.FPS, "ticks per second")
	pf.Int("resolution", metaball.DefaultResolution, "boundary grid cells per axis")
	pf.String("log-level", "info", "log level")
	pf.String("log-file", "", "write JSON logs to this file")
	mustBind(a.v, pf)

	root.AddCommand(newTraceCmd(a), newVersionCmd())
	return root
}

func mustBind(v *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range flagBindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// setup loads configuration and starts logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Read(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Decode(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	var console zapcore.WriteSyncer
	if _, ok := cmd.Annotations[consoleAnnotation]; ok {
		console = zapcore.AddSync(cmd.ErrOrStderr())
	}
	observability.Initialize(cfg.Logger, console)
	observability.GetLogger().Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config_file", a.v.ConfigFileUsed()),
		zap.String("version", Version))
	return nil
}

// director builds a scene director from the loaded configuration.
func (a *app) director() (*scene.Director, error) {
	opts, err := a.cfg.SceneOptions(observability.GetLogger())
	if err != nil {
		return nil, err
	}
	return scene.NewDirector(opts)
}

func (a *app) runUI(cmd *cobra.Command, _ []string) error {
	d, err := a.director()
	if err != nil {
		return err
	}

	model := ui.New(d, a.cfg.Scene.FPS, observability.GetLogger())
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(cmd.Context()),
	)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	if m, ok := final.(ui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
