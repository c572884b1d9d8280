// Package verify checks the elliptic divisibility sequence identity
//
//	psi_{nk}(P) = psi_n([k]P) * psi_k(P)^(n^2)
//
// over a range of n for a fixed base point P and scalar k.
package verify

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/crypto/field"
	"github.com/smallyu/go-eds-dlp/internal/divpoly"
	"github.com/smallyu/go-eds-dlp/pkg/eds"
)

// MaxRepeatedAdd is the largest k for which Q = [k]P is derived by repeated
// addition. Larger scalars switch to double-and-add (or the preset's
// reference multiplier when P is its generator).
const MaxRepeatedAdd = 1 << 16

// Range is an inclusive range of sequence indices.
type Range struct {
	From int64
	To   int64
}

// Len returns the number of indices in r.
func (r Range) Len() int64 {
	return r.To - r.From + 1
}

func (r Range) validate() error {
	if r.From < 1 {
		return eds.Errorf(eds.ErrInvalidIndex, "verify: range must start at 1 or above, got %d", r.From)
	}
	if r.From > r.To {
		return eds.Errorf(eds.ErrInvalidIndex, "verify: empty range [%d, %d]", r.From, r.To)
	}
	return nil
}

// Row is the outcome for one n. When Err is set LHS and RHS are zero and
// Matched is false.
type Row struct {
	N       int64
	LHS     field.Element
	RHS     field.Element
	Matched bool
	Err     error
}

// Report collects every row of one verification run, in increasing n.
type Report struct {
	Curve *curves.Curve
	P     curves.Point
	Q     curves.Point
	K     int64
	Rows  []Row
}

// AllMatched reports whether every row was evaluated and matched.
func (r *Report) AllMatched() bool {
	for _, row := range r.Rows {
		if !row.Matched {
			return false
		}
	}
	return len(r.Rows) > 0
}

// Failures returns the rows that did not match, including errored rows.
func (r *Report) Failures() []Row {
	var out []Row
	for _, row := range r.Rows {
		if !row.Matched {
			out = append(out, row)
		}
	}
	return out
}

// Observer receives each row as it is produced.
type Observer interface {
	ObserveRow(row Row)
}

// Verifier runs identity checks on one curve. It owns a divpoly.Evaluator
// whose cache is shared by P and Q across runs.
type Verifier struct {
	curve    *curves.Curve
	eval     *divpoly.Evaluator
	preset   *curves.Preset
	observer Observer
	log      *zap.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger for the verifier and its evaluator.
func WithLogger(l *zap.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.log = l
		}
	}
}

// WithObserver registers an observer for produced rows.
func WithObserver(o Observer) Option {
	return func(v *Verifier) {
		v.observer = o
	}
}

// WithPreset lets the verifier use the preset's reference multiplier when
// the base point is the preset generator and k is large.
func WithPreset(p *curves.Preset) Option {
	return func(v *Verifier) {
		v.preset = p
	}
}

// New creates a Verifier for c.
func New(c *curves.Curve, opts ...Option) *Verifier {
	v := &Verifier{
		curve: c,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.eval = divpoly.New(c, divpoly.WithLogger(v.log))
	return v
}

// Evaluator returns the evaluator used for psi values.
func (v *Verifier) Evaluator() *divpoly.Evaluator {
	return v.eval
}

// Verify checks the identity for every n in r. Input validation errors are
// returned directly; failures while evaluating a row are recorded in that
// row and never stop the run.
func (v *Verifier) Verify(p curves.Point, k int64, r Range) (*Report, error) {
	if err := v.curve.Validate(p); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, eds.Errorf(eds.ErrInvalidScalar, "verify: k must be positive, got %d", k)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}

	q, err := v.multiply(k, p)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Curve: v.curve,
		P:     p,
		Q:     q,
		K:     k,
		Rows:  make([]Row, 0, r.Len()),
	}

	f := v.curve.Field()
	psiK, psiKErr := v.eval.Psi(k, p)

	for n := r.From; n <= r.To; n++ {
		row := Row{N: n}
		row.LHS, row.RHS, row.Err = v.evaluate(f, n, k, p, q, psiK, psiKErr)
		if row.Err == nil {
			row.Matched = row.LHS.Equal(row.RHS)
		}

		switch {
		case row.Err != nil:
			v.log.Warn("identity row failed", zap.Int64("n", n), zap.Int64("k", k), zap.Error(row.Err))
		case !row.Matched:
			v.log.Warn("identity mismatch",
				zap.Int64("n", n),
				zap.Int64("k", k),
				zap.Stringer("lhs", row.LHS),
				zap.Stringer("rhs", row.RHS),
			)
		}
		if v.observer != nil {
			v.observer.ObserveRow(row)
		}
		report.Rows = append(report.Rows, row)
	}

	stats := v.eval.Stats()
	v.log.Info("identity verified",
		zap.Stringer("p", p),
		zap.Stringer("q", q),
		zap.Int64("k", k),
		zap.Int64("from", r.From),
		zap.Int64("to", r.To),
		zap.Int("failures", len(report.Failures())),
		zap.Uint64("computed", stats.Computed),
		zap.Uint64("hits", stats.Hits),
	)
	return report, nil
}

func (v *Verifier) evaluate(f *field.Field, n, k int64, p, q curves.Point, psiK field.Element, psiKErr error) (lhs, rhs field.Element, err error) {
	if psiKErr != nil {
		return field.Element{}, field.Element{}, psiKErr
	}
	nk, err := divpoly.MulIndex(n, k)
	if err != nil {
		return field.Element{}, field.Element{}, eds.NewEvalError(n, p.X.String(), p.Y.String(), err)
	}
	psiNQ, err := v.eval.Psi(n, q)
	if err != nil {
		return field.Element{}, field.Element{}, err
	}
	rhs, err = v.eval.Psi(nk, p)
	if err != nil {
		return field.Element{}, field.Element{}, err
	}
	nn := new(big.Int).SetInt64(n)
	nn.Mul(nn, nn)
	lhs = f.Mul(psiNQ, f.Exp(psiK, nn))
	return lhs, rhs, nil
}

// multiply derives Q = [k]P.
func (v *Verifier) multiply(k int64, p curves.Point) (curves.Point, error) {
	if k <= MaxRepeatedAdd {
		return v.curve.ScalarMult(k, p)
	}
	kk := big.NewInt(k)
	if v.preset != nil && v.preset.Reference != nil && v.preset.Curve.Equal(v.curve) && p.Equal(v.preset.Generator) {
		v.log.Debug("deriving q with reference multiplier", zap.String("preset", v.preset.Name))
		return v.preset.Reference.ScalarBaseMult(kk)
	}
	return v.curve.ScalarMultBinary(kk, p)
}
