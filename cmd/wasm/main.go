//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/smallyu/go-eds-dlp/internal/config"
	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/divpoly"
	"github.com/smallyu/go-eds-dlp/internal/verify"
)

// session holds one curve and the evaluator whose cache is reused across
// calls for it.
type session struct {
	curve    *curves.Curve
	preset   *curves.Preset
	eval     *divpoly.Evaluator
	verifier *verify.Verifier
}

// Key: session handle returned by NewCurve.
var (
	sessions = make(map[string]*session)
	nextID   int
)

func main() {
	c := make(chan struct{})

	fmt.Println("go-eds-dlp WASM initialized")

	js.Global().Set("GoEDS", map[string]interface{}{
		"NewCurve": js.FuncOf(NewCurve),
		"Psi":      js.FuncOf(Psi),
		"Verify":   js.FuncOf(Verify),
		"Close":    js.FuncOf(Close),
	})

	<-c
}

type curveInput struct {
	Preset string `json:"preset"`
	Form   string `json:"form"`
	A1     string `json:"a1"`
	A2     string `json:"a2"`
	A3     string `json:"a3"`
	A4     string `json:"a4"`
	A6     string `json:"a6"`
	A      string `json:"a"`
	B      string `json:"b"`
	P      string `json:"p"`
}

type pointInput struct {
	X         string `json:"x"`
	Y         string `json:"y"`
	Generator bool   `json:"generator"`
}

// NewCurve creates a session for a curve.
// Arguments:
// 0: JSON curve parameters, integers as decimal or 0x strings
// Returns:
// session handle (string) or an "error: ..." string
func NewCurve(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (jsonCurve)"
	}
	var in curveInput
	if err := json.Unmarshal([]byte(args[0].String()), &in); err != nil {
		return fmt.Sprintf("error: invalid json: %v", err)
	}
	zero := func(s string) string {
		if s == "" {
			return "0"
		}
		return s
	}
	cc := config.CurveConfig{
		Preset: in.Preset,
		Form:   in.Form,
		A1:     zero(in.A1),
		A2:     zero(in.A2),
		A3:     zero(in.A3),
		A4:     zero(in.A4),
		A6:     zero(in.A6),
		A:      zero(in.A),
		B:      zero(in.B),
		P:      in.P,
	}
	if cc.Form == "" {
		cc.Form = config.FormShort
	}
	c, preset, err := cc.Build()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	nextID++
	handle := fmt.Sprintf("curve-%d", nextID)
	eval := divpoly.New(c)
	opts := []verify.Option{}
	if preset != nil {
		opts = append(opts, verify.WithPreset(preset))
	}
	sessions[handle] = &session{
		curve:    c,
		preset:   preset,
		eval:     eval,
		verifier: verify.New(c, opts...),
	}
	return handle
}

// Psi evaluates a sequence.
// Arguments:
// 0: session handle
// 1: JSON {"x": "...", "y": "...", "from": 0, "count": 10}
// Returns:
// JSON {"values": [...], "error": "..."}; values stop at the first failure
func Psi(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (handle, jsonParams)"
	}
	s, ok := sessions[args[0].String()]
	if !ok {
		return "error: session not found"
	}
	var in struct {
		pointInput
		From  int64 `json:"from"`
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal([]byte(args[1].String()), &in); err != nil {
		return fmt.Sprintf("error: invalid json: %v", err)
	}
	pt, err := (config.PointConfig{X: in.X, Y: in.Y, Generator: in.Generator}).Build(s.curve, s.preset)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	if in.Count < 0 {
		return "error: count must not be negative"
	}
	resp := map[string]interface{}{}
	values := make([]string, 0, in.Count)
	for n := in.From; n < in.From+in.Count; n++ {
		v, err := s.eval.Psi(n, pt)
		if err != nil {
			resp["error"] = err.Error()
			break
		}
		values = append(values, v.String())
	}
	resp["values"] = values
	return marshal(resp)
}

// Verify checks the identity.
// Arguments:
// 0: session handle
// 1: JSON {"x": "...", "y": "...", "k": 2, "from": 1, "to": 10}
// Returns:
// JSON {"q": {...}, "allMatched": bool, "rows": [...]}
func Verify(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (handle, jsonParams)"
	}
	s, ok := sessions[args[0].String()]
	if !ok {
		return "error: session not found"
	}
	var in struct {
		pointInput
		K    int64 `json:"k"`
		From int64 `json:"from"`
		To   int64 `json:"to"`
	}
	if err := json.Unmarshal([]byte(args[1].String()), &in); err != nil {
		return fmt.Sprintf("error: invalid json: %v", err)
	}
	pt, err := (config.PointConfig{X: in.X, Y: in.Y, Generator: in.Generator}).Build(s.curve, s.preset)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	report, err := s.verifier.Verify(pt, in.K, verify.Range{From: in.From, To: in.To})
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	// big residues travel as strings so JS does not round them.
	type rowDTO struct {
		N       int64  `json:"n"`
		LHS     string `json:"lhs,omitempty"`
		RHS     string `json:"rhs,omitempty"`
		Matched bool   `json:"matched"`
		Error   string `json:"error,omitempty"`
	}
	rows := make([]rowDTO, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = rowDTO{N: r.N, Matched: r.Matched}
		if r.Err != nil {
			rows[i].Error = r.Err.Error()
			continue
		}
		rows[i].LHS = r.LHS.String()
		rows[i].RHS = r.RHS.String()
	}
	q := map[string]interface{}{"infinity": report.Q.Inf}
	if !report.Q.Inf {
		q["x"] = report.Q.X.String()
		q["y"] = report.Q.Y.String()
	}
	return marshal(map[string]interface{}{
		"q":          q,
		"allMatched": report.AllMatched(),
		"rows":       rows,
	})
}

// Close drops a session and its cache.
func Close(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (handle)"
	}
	delete(sessions, args[0].String())
	return nil
}

func marshal(v interface{}) interface{} {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}
