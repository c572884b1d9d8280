package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-eds-dlp/internal/config"
	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/crypto/field"
	"github.com/smallyu/go-eds-dlp/internal/verify"
)

// texter renders a view for the text output format.
type texter interface {
	text(w io.Writer)
}

func render(w io.Writer, format string, v texter) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encoding json")
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	default:
		v.text(w)
		return nil
	}
}

type pointView struct {
	X        string `json:"x,omitempty" yaml:"x,omitempty"`
	Y        string `json:"y,omitempty" yaml:"y,omitempty"`
	Infinity bool   `json:"infinity,omitempty" yaml:"infinity,omitempty"`
}

func newPointView(p curves.Point) pointView {
	if p.Inf {
		return pointView{Infinity: true}
	}
	return pointView{X: p.X.String(), Y: p.Y.String()}
}

func (p pointView) String() string {
	if p.Infinity {
		return "O"
	}
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

type sequenceView struct {
	Curve  string    `json:"curve" yaml:"curve"`
	Point  pointView `json:"point" yaml:"point"`
	Values []string  `json:"values" yaml:"values"`
	Error  string    `json:"error,omitempty" yaml:"error,omitempty"`
}

func newSequenceView(c *curves.Curve, p curves.Point, seq []field.Element, err error) sequenceView {
	v := sequenceView{
		Curve:  c.String(),
		Point:  newPointView(p),
		Values: make([]string, len(seq)),
	}
	for i, e := range seq {
		v.Values[i] = e.String()
	}
	if err != nil {
		v.Error = err.Error()
	}
	return v
}

func (v sequenceView) text(w io.Writer) {
	fmt.Fprintf(w, "%s\n", v.Curve)
	fmt.Fprintf(w, "P = %s\n", v.Point)
	fmt.Fprintf(w, "psi: [%s]\n", strings.Join(v.Values, ", "))
	if v.Error != "" {
		fmt.Fprintf(w, "stopped: %s\n", v.Error)
	}
}

type sequencesView struct {
	Sequences []sequenceView `json:"sequences" yaml:"sequences"`
}

func (v sequencesView) text(w io.Writer) {
	for i, s := range v.Sequences {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s.text(w)
	}
}

type rowView struct {
	N       int64  `json:"n" yaml:"n"`
	LHS     string `json:"lhs,omitempty" yaml:"lhs,omitempty"`
	RHS     string `json:"rhs,omitempty" yaml:"rhs,omitempty"`
	Matched bool   `json:"matched" yaml:"matched"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

type reportView struct {
	Curve      string    `json:"curve" yaml:"curve"`
	P          pointView `json:"p" yaml:"p"`
	Q          pointView `json:"q" yaml:"q"`
	K          int64     `json:"k" yaml:"k"`
	AllMatched bool      `json:"allMatched" yaml:"allMatched"`
	Rows       []rowView `json:"rows" yaml:"rows"`
}

func newReportView(r *verify.Report) reportView {
	v := reportView{
		Curve:      r.Curve.String(),
		P:          newPointView(r.P),
		Q:          newPointView(r.Q),
		K:          r.K,
		AllMatched: r.AllMatched(),
		Rows:       make([]rowView, len(r.Rows)),
	}
	for i, row := range r.Rows {
		rv := rowView{N: row.N, Matched: row.Matched}
		if row.Err != nil {
			rv.Error = row.Err.Error()
		} else {
			rv.LHS = row.LHS.String()
			rv.RHS = row.RHS.String()
		}
		v.Rows[i] = rv
	}
	return v
}

func (v reportView) text(w io.Writer) {
	fmt.Fprintf(w, "%s\n", v.Curve)
	fmt.Fprintf(w, "P = %s, k = %d, Q = [k]P = %s\n", v.P, v.K, v.Q)
	fmt.Fprintf(w, "%6s  %-20s  %-20s  %s\n", "n", "psi_n(Q)*psi_k(P)^n^2", "psi_nk(P)", "ok")
	for _, r := range v.Rows {
		if r.Error != "" {
			fmt.Fprintf(w, "%6d  error: %s\n", r.N, r.Error)
			continue
		}
		fmt.Fprintf(w, "%6d  %-20s  %-20s  %t\n", r.N, r.LHS, r.RHS, r.Matched)
	}
	if v.AllMatched {
		fmt.Fprintln(w, "identity holds for every n")
	} else {
		fmt.Fprintln(w, "identity check FAILED")
	}
}

type pointResultView struct {
	Curve  string    `json:"curve" yaml:"curve"`
	Op     string    `json:"op" yaml:"op"`
	Result pointView `json:"result" yaml:"result"`
}

func (v pointResultView) text(w io.Writer) {
	fmt.Fprintf(w, "%s = %s\n", v.Op, v.Result)
}

type demoView struct {
	Sequences []sequenceView `json:"sequences" yaml:"sequences"`
	Reports   []reportView   `json:"reports" yaml:"reports"`
}

func (v demoView) text(w io.Writer) {
	sequencesView{Sequences: v.Sequences}.text(w)
	for _, r := range v.Reports {
		fmt.Fprintln(w)
		r.text(w)
	}
}
