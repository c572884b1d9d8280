package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/smallyu/go-eds-dlp/internal/config"
	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/logging"
	"github.com/smallyu/go-eds-dlp/internal/metrics"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "edscheck",
		Short:         "Evaluate division polynomials and check EDS identities.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.finish()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.String("preset", "", "named curve: "+strings.Join(curves.PresetNames(), ", "))
	flags.String("form", config.FormShort, "coefficient form: general or short")
	flags.String("a1", "", "general form coefficient a1")
	flags.String("a2", "", "general form coefficient a2")
	flags.String("a3", "", "general form coefficient a3")
	flags.String("a4", "", "general form coefficient a4")
	flags.String("a6", "", "general form coefficient a6")
	flags.String("a", "", "short form coefficient A")
	flags.String("b", "", "short form coefficient B")
	flags.String("p", "", "field prime (decimal or 0x hex)")
	flags.String("x", "", "base point x")
	flags.String("y", "", "base point y")
	flags.Bool("generator", false, "use the preset generator as base point")
	flags.StringP("output", "o", config.OutputText, "output format: text, json or yaml")
	flags.String("log-level", "warn", "log level")
	flags.String("log-format", logging.FormatConsole, "log format: console or json")
	flags.String("metrics-file", "", "write prometheus metrics to this file after the run")

	bind := map[string]string{
		"curve.preset":    "preset",
		"curve.form":      "form",
		"curve.a1":        "a1",
		"curve.a2":        "a2",
		"curve.a3":        "a3",
		"curve.a4":        "a4",
		"curve.a6":        "a6",
		"curve.a":         "a",
		"curve.b":         "b",
		"curve.p":         "p",
		"point.x":         "x",
		"point.y":         "y",
		"point.generator": "generator",
		"output":          "output",
		"log.level":       "log-level",
		"log.format":      "log-format",
		"metrics.file":    "metrics-file",
	}
	for key, name := range bind {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		sequenceCmd(a),
		verifyCmd(a),
		addCmd(a),
		multCmd(a),
		demoCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	// Subcommand flags (k, from, to, count) share their names with config
	// keys. Only the running command's flags are bound.
	if err := a.v.BindPFlags(cmd.LocalNonPersistentFlags()); err != nil {
		return err
	}
	if a.cfgFile != "" {
		if err := config.ReadFile(a.v, a.cfgFile); err != nil {
			return err
		}
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	cfg.Log.Writer = cmd.ErrOrStderr()
	if a.log, err = logging.New(cfg.Log); err != nil {
		return err
	}
	if cfg.MetricsFile != "" {
		if a.metrics, err = metrics.New(); err != nil {
			return errors.Wrap(err, "creating metrics registry")
		}
	}
	return nil
}

func (a *app) finish() error {
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.metrics == nil {
		return nil
	}
	if err := a.metrics.WriteFile(a.cfg.MetricsFile); err != nil {
		return errors.Wrapf(err, "writing metrics to %s", a.cfg.MetricsFile)
	}
	return nil
}

// curve builds the configured curve and warns when p is composite.
func (a *app) curve() (*curves.Curve, *curves.Preset, error) {
	c, preset, err := a.cfg.Curve.Build()
	if err != nil {
		return nil, nil, err
	}
	if !config.ProbablyPrime(c.Modulus()) {
		a.log.Warn("field modulus is not prime, inverses may not exist", zap.Stringer("p", c.Modulus()))
	}
	return c, preset, nil
}

// base builds the configured curve and base point.
func (a *app) base() (*curves.Curve, *curves.Preset, curves.Point, error) {
	c, preset, err := a.curve()
	if err != nil {
		return nil, nil, curves.Point{}, err
	}
	pt, err := a.cfg.Point.Build(c, preset)
	if err != nil {
		return nil, nil, curves.Point{}, err
	}
	return c, preset, pt, nil
}
