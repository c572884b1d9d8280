// Package config loads curve, point and run settings through viper, from
// flags, an optional YAML file and EDS_* environment variables.
package config

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/logging"
)

// EnvPrefix is prepended to environment overrides, e.g. EDS_CURVE_P.
const EnvPrefix = "EDS"

// Curve forms.
const (
	FormGeneral = "general"
	FormShort   = "short"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the resolved run configuration.
type Config struct {
	Curve       CurveConfig
	Point       PointConfig
	K           int64
	From        int64
	To          int64
	Count       int
	Output      string
	Log         logging.Config
	MetricsFile string
}

// CurveConfig selects a preset or spells out coefficients. Integers are
// kept as strings so values wider than 64 bits can be given.
type CurveConfig struct {
	Preset string
	Form   string
	A1     string
	A2     string
	A3     string
	A4     string
	A6     string
	A      string
	B      string
	P      string
}

// PointConfig selects the base point.
type PointConfig struct {
	X         string
	Y         string
	Generator bool
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("curve.form", FormShort)
	for _, key := range []string{"curve.a1", "curve.a2", "curve.a3", "curve.a4", "curve.a6", "curve.a", "curve.b"} {
		v.SetDefault(key, "0")
	}
	v.SetDefault("k", 2)
	v.SetDefault("from", 1)
	v.SetDefault("to", 10)
	v.SetDefault("count", 10)
	v.SetDefault("output", OutputText)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", logging.FormatConsole)
	return v
}

// ReadFile merges the YAML file at path into v.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}
	return nil
}

// Load resolves v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{
		Curve: CurveConfig{
			Preset: v.GetString("curve.preset"),
			Form:   strings.ToLower(v.GetString("curve.form")),
			A1:     v.GetString("curve.a1"),
			A2:     v.GetString("curve.a2"),
			A3:     v.GetString("curve.a3"),
			A4:     v.GetString("curve.a4"),
			A6:     v.GetString("curve.a6"),
			A:      v.GetString("curve.a"),
			B:      v.GetString("curve.b"),
			P:      v.GetString("curve.p"),
		},
		Point: PointConfig{
			X:         v.GetString("point.x"),
			Y:         v.GetString("point.y"),
			Generator: v.GetBool("point.generator"),
		},
		K:      v.GetInt64("k"),
		From:   v.GetInt64("from"),
		To:     v.GetInt64("to"),
		Count:  v.GetInt("count"),
		Output: strings.ToLower(v.GetString("output")),
		Log: logging.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		MetricsFile: v.GetString("metrics.file"),
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return nil, errors.Errorf("unsupported output format %q", c.Output)
	}
	if c.Curve.Preset == "" {
		switch c.Curve.Form {
		case FormGeneral, FormShort:
		default:
			return nil, errors.Errorf("unsupported curve form %q", c.Curve.Form)
		}
	}
	return c, nil
}

// Build constructs the configured curve. The preset is nil unless
// curve.preset is set.
func (c CurveConfig) Build() (*curves.Curve, *curves.Preset, error) {
	if c.Preset != "" {
		p, err := curves.Lookup(c.Preset)
		if err != nil {
			return nil, nil, err
		}
		return p.Curve, p, nil
	}
	if c.P == "" {
		return nil, nil, errors.New("curve.p is required without curve.preset")
	}
	p, err := ParseBig(c.P)
	if err != nil {
		return nil, nil, errors.Wrap(err, "curve.p")
	}

	if c.Form == FormShort {
		a, err := ParseBig(c.A)
		if err != nil {
			return nil, nil, errors.Wrap(err, "curve.a")
		}
		b, err := ParseBig(c.B)
		if err != nil {
			return nil, nil, errors.Wrap(err, "curve.b")
		}
		curve, err := curves.NewShort(a, b, p)
		return curve, nil, err
	}

	coeffs := make([]*big.Int, 5)
	for i, s := range []string{c.A1, c.A2, c.A3, c.A4, c.A6} {
		if coeffs[i], err = ParseBig(s); err != nil {
			return nil, nil, errors.Wrapf(err, "curve.%s", generalKeys[i])
		}
	}
	curve, err := curves.NewGeneral(coeffs[0], coeffs[1], coeffs[2], coeffs[3], coeffs[4], p)
	return curve, nil, err
}

var generalKeys = []string{"a1", "a2", "a3", "a4", "a6"}

// Build returns the configured point on curve. With point.generator set the
// preset generator is used.
func (c PointConfig) Build(curve *curves.Curve, preset *curves.Preset) (curves.Point, error) {
	if c.Generator {
		if preset == nil {
			return curves.Point{}, errors.New("point.generator requires curve.preset")
		}
		return preset.Generator, nil
	}
	if c.X == "" || c.Y == "" {
		return curves.Point{}, errors.New("point.x and point.y are required")
	}
	x, err := ParseBig(c.X)
	if err != nil {
		return curves.Point{}, errors.Wrap(err, "point.x")
	}
	y, err := ParseBig(c.Y)
	if err != nil {
		return curves.Point{}, errors.Wrap(err, "point.y")
	}
	pt := curve.NewPoint(x, y)
	if err := curve.Validate(pt); err != nil {
		return curves.Point{}, err
	}
	return pt, nil
}

// ParseBig parses a decimal or 0x-prefixed hexadecimal integer, optionally
// signed.
func ParseBig(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok || s == "" {
		return nil, errors.Errorf("invalid integer %q", s)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

// ProbablyPrime reports whether p passes a Baillie-PSW test. Curve
// construction does not require it; callers use it to warn.
func ProbablyPrime(p *big.Int) bool {
	return p.ProbablyPrime(20)
}
