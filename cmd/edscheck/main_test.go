package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-eds-dlp/pkg/eds"
)

var (
	paperFlags = []string{"--form", "general", "--a1", "1", "--a2", "1", "--a3", "1", "--a4", "21", "--a6", "0", "--p", "23"}
	shortFlags = []string{"--form", "short", "--a", "1", "--b", "1", "--p", "23"}
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func with(base []string, extra ...string) []string {
	return append(append([]string{}, base...), extra...)
}

func TestSequenceJSON(t *testing.T) {
	tests := []struct {
		x, y string
		want []string
	}{
		{"0", "0", []string{"0", "1", "1", "22", "2"}},
		{"18", "14", []string{"0", "1", "1", "20", "1"}},
		{"21", "0", []string{"0", "1", "22", "11", "18"}},
	}
	for _, tt := range tests {
		t.Run(tt.x+","+tt.y, func(t *testing.T) {
			out, err := run(t, with(append([]string{"sequence"}, paperFlags...), "--x", tt.x, "--y", tt.y, "--count", "5", "-o", "json")...)
			require.NoError(t, err)

			var v sequenceView
			require.NoError(t, json.Unmarshal([]byte(out), &v))
			assert.Equal(t, tt.want, v.Values)
			assert.Empty(t, v.Error)
		})
	}
}

func TestSequenceStopsAtSingularity(t *testing.T) {
	out, err := run(t, with(append([]string{"sequence"}, shortFlags...), "--x", "4", "--y", "0", "--count", "8")...)
	assert.True(t, errors.Is(err, eds.ErrSingularInverse))
	assert.Contains(t, out, "psi: [0, 1, 0, 14, 0, 16]")
	assert.Contains(t, out, "stopped: psi_6 at (4, 0)")
}

func TestVerify(t *testing.T) {
	out, err := run(t, with(append([]string{"verify"}, shortFlags...), "--x", "3", "--y", "10", "--k", "2")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Q = [k]P = (7, 12)")
	assert.Contains(t, out, "identity holds for every n")

	out, err = run(t, with(append([]string{"verify"}, shortFlags...), "--x", "3", "--y", "10", "--k", "14", "--to", "7", "-o", "yaml")...)
	assert.EqualError(t, err, "identity failed for 1 of 7 rows")

	var v reportView
	require.NoError(t, yaml.Unmarshal([]byte(out), &v))
	assert.False(t, v.AllMatched)
	require.Len(t, v.Rows, 7)
	assert.NotEmpty(t, v.Rows[5].Error)
	assert.True(t, v.Rows[6].Matched)
}

func TestVerifyRejectsBadRange(t *testing.T) {
	_, err := run(t, with(append([]string{"verify"}, shortFlags...), "--x", "3", "--y", "10", "--from", "5", "--to", "2")...)
	assert.True(t, errors.Is(err, eds.ErrInvalidIndex))
}

func TestAddAndMult(t *testing.T) {
	out, err := run(t, with(append([]string{"add"}, shortFlags...), "--x", "3", "--y", "10", "--qx", "3", "--qy", "13", "-o", "yaml")...)
	require.NoError(t, err)
	var v pointResultView
	require.NoError(t, yaml.Unmarshal([]byte(out), &v))
	assert.True(t, v.Result.Infinity)

	out, err = run(t, with(append([]string{"add"}, shortFlags...), "--x", "3", "--y", "10", "--qinf")...)
	require.NoError(t, err)
	assert.Equal(t, "(3, 10) + O = (3, 10)\n", out)

	out, err = run(t, with(append([]string{"mult"}, shortFlags...), "--x", "3", "--y", "10", "--k", "2")...)
	require.NoError(t, err)
	assert.Equal(t, "[2](3, 10) = (7, 12)\n", out)

	out, err = run(t, with(append([]string{"mult"}, paperFlags...), "--x", "0", "--y", "0", "--k", "7")...)
	require.NoError(t, err)
	assert.Equal(t, "[7](0, 0) = (18, 14)\n", out)
}

func TestPresetGenerator(t *testing.T) {
	out, err := run(t, "verify", "--preset", "secp256k1", "--generator", "--k", "3", "--to", "3", "-o", "json")
	require.NoError(t, err)

	var v reportView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.True(t, v.AllMatched)
	assert.Equal(t, int64(3), v.K)
}

func TestDemo(t *testing.T) {
	out, err := run(t, "demo", "-o", "json")
	require.NoError(t, err)

	var v demoView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Len(t, v.Sequences, 3)
	assert.Equal(t, []string{"0", "1", "1", "22", "2"}, v.Sequences[0].Values)
	assert.Equal(t, pointView{X: "18", Y: "14"}, v.Sequences[1].Point)
	assert.Equal(t, []string{"0", "1", "22", "11", "18"}, v.Sequences[2].Values)
	require.Len(t, v.Reports, 1)
	assert.True(t, v.Reports[0].AllMatched)
}

func TestConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("curve:\n  form: short\n  a: 1\n  b: 1\npoint:\n  x: 3\n  y: 10\n"), 0o600))
	t.Setenv("EDS_CURVE_P", "0x17")

	out, err := run(t, "mult", "--config", path, "--k", "5")
	require.NoError(t, err)
	assert.Equal(t, "[5](3, 10) = (9, 16)\n", out)
}

func TestMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eds.prom")
	_, err := run(t, with(append([]string{"verify"}, shortFlags...), "--x", "3", "--y", "10", "--metrics-file", path)...)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `eds_verify_rows_total{result="matched"} 10`)
	assert.Contains(t, string(data), `eds_divpoly_computed_total{evaluator="verify"}`)
}

func TestBadInput(t *testing.T) {
	_, err := run(t, "sequence", "--p", "23", "--a", "1", "--b", "1", "--x", "3", "--y", "11")
	assert.True(t, errors.Is(err, eds.ErrPointNotOnCurve))

	_, err = run(t, "sequence", "--x", "3", "--y", "10")
	assert.EqualError(t, err, "curve.p is required without curve.preset")

	_, err = run(t, with(append([]string{"sequence"}, shortFlags...), "--x", "3", "--y", "10", "-o", "xml")...)
	assert.Error(t, err)
}
