// Package divpoly evaluates division polynomials psi_n of an elliptic curve
// at fixed points over F_p.
//
// psi_n is never built as a polynomial in x. Each value is computed from the
// base cases psi_0..psi_4 and the recurrences
//
//	psi_{2k+1} = psi_{k+2} psi_k^3 - psi_{k-1} psi_{k+1}^3
//	psi_{2k}   = psi_k (psi_{k+2} psi_{k-1}^2 - psi_{k-2} psi_{k+1}^2) / psi_2
//
// with every intermediate value memoized in a Cache owned by the Evaluator.
// The even step divides by psi_2, so at points where psi_2 ≡ 0 (2-torsion)
// every even index from 6 on, and every index that depends on one, fails
// with eds.ErrSingularInverse.
package divpoly

import (
	"math"

	"go.uber.org/zap"

	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/crypto/field"
	"github.com/smallyu/go-eds-dlp/internal/crypto/polynomial"
	"github.com/smallyu/go-eds-dlp/pkg/eds"
)

// Stats counts evaluator work. Computed is the number of psi values derived
// from scratch (cache misses); Hits is the number of lookups served from the
// cache.
type Stats struct {
	Computed uint64
	Hits     uint64
}

// Requests is the total number of psi lookups.
func (s Stats) Requests() uint64 {
	return s.Computed + s.Hits
}

// Evaluator computes psi_n(x, y) for one curve. It can serve any number of
// points; values are cached per point. An Evaluator is not safe for
// concurrent use; create one per goroutine.
type Evaluator struct {
	curve *curves.Curve
	f     *field.Field

	// psi_3 and the cofactor of psi_2 in psi_4, as polynomials in x.
	psi3   *polynomial.Polynomial
	psi4Co *polynomial.Polynomial

	cache *Cache
	stats Stats
	log   *zap.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an Evaluator for c with an empty cache.
func New(c *curves.Curve, opts ...Option) *Evaluator {
	f := c.Field()
	b2, b4, b6, b8 := c.B2(), c.B4(), c.B6(), c.B8()

	e := &Evaluator{
		curve: c,
		f:     f,
		// psi_3 = 3x^4 + b2x^3 + 3b4x^2 + 3b6x + b8
		psi3: polynomial.New(f,
			b8,
			f.MulInt64(b6, 3),
			f.MulInt64(b4, 3),
			b2,
			f.FromInt64(3),
		),
		// psi_4 / psi_2 = 2x^6 + b2x^5 + 5b4x^4 + 10b6x^3 + 10b8x^2
		//                 + (b2b8 - b4b6)x + b4b8 - b6^2
		psi4Co: polynomial.New(f,
			f.Sub(f.Mul(b4, b8), f.Square(b6)),
			f.Sub(f.Mul(b2, b8), f.Mul(b4, b6)),
			f.MulInt64(b8, 10),
			f.MulInt64(b6, 10),
			f.MulInt64(b4, 5),
			b2,
			f.FromInt64(2),
		),
		cache: NewCache(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Curve returns the curve the evaluator was built for.
func (e *Evaluator) Curve() *curves.Curve {
	return e.curve
}

// Stats returns the work counters accumulated since creation or the last
// Reset.
func (e *Evaluator) Stats() Stats {
	return e.stats
}

// CacheLen returns the number of memoized values.
func (e *Evaluator) CacheLen() int {
	return e.cache.Len()
}

// Reset discards the cache and the work counters. Results are unaffected.
func (e *Evaluator) Reset() {
	if ce := e.log.Check(zap.DebugLevel, "discarding psi cache"); ce != nil {
		ce.Write(zap.Int("entries", e.cache.Len()), zap.Int("points", e.cache.Points()))
	}
	e.cache = NewCache()
	e.stats = Stats{}
}

// Psi returns psi_n evaluated at pt, reduced into [0, p). Failures are
// returned as *eds.EvalError carrying n and pt.
func (e *Evaluator) Psi(n int64, pt curves.Point) (field.Element, error) {
	if err := e.check(n, pt); err != nil {
		return field.Element{}, err
	}
	v, err := e.psi(n, pt, e.cache.forPoint(pointKey(e.f, pt)))
	if err != nil {
		return field.Element{}, e.wrap(n, pt, err)
	}
	return v, nil
}

// Sequence returns psi_0 .. psi_{count-1} at pt. Values are computed in
// increasing order so every recursive request below n is a cache hit.
func (e *Evaluator) Sequence(pt curves.Point, count int) ([]field.Element, error) {
	if count < 0 {
		return nil, eds.Errorf(eds.ErrInvalidIndex, "divpoly: negative sequence length %d", count)
	}
	if count > 0 {
		if err := e.check(int64(count-1), pt); err != nil {
			return nil, err
		}
	}
	pc := e.cache.forPoint(pointKey(e.f, pt))
	seq := make([]field.Element, count)
	for n := 0; n < count; n++ {
		v, err := e.psi(int64(n), pt, pc)
		if err != nil {
			return seq[:n], e.wrap(int64(n), pt, err)
		}
		seq[n] = v
	}
	return seq, nil
}

func (e *Evaluator) check(n int64, pt curves.Point) error {
	if n < 0 {
		return e.wrap(n, pt, eds.Errorf(eds.ErrInvalidIndex, "divpoly: negative index %d", n))
	}
	if pt.Inf {
		return e.wrap(n, pt, eds.NewError(eds.ErrPointAtInfinity, "divpoly: psi_n has a pole at O"))
	}
	return nil
}

func (e *Evaluator) wrap(n int64, pt curves.Point, err error) error {
	if _, ok := err.(*eds.EvalError); ok {
		return err
	}
	if pt.Inf {
		return eds.NewEvalError(n, "", "", err)
	}
	return eds.NewEvalError(n, pt.X.String(), pt.Y.String(), err)
}

func (e *Evaluator) psi(n int64, pt curves.Point, pc *pointCache) (field.Element, error) {
	if v, ok := e.cache.get(pc, n); ok {
		e.stats.Hits++
		return v, nil
	}
	e.stats.Computed++

	v, err := e.compute(n, pt, pc)
	if err != nil {
		return field.Element{}, err
	}
	e.cache.put(pc, n, v)
	return v, nil
}

func (e *Evaluator) compute(n int64, pt curves.Point, pc *pointCache) (field.Element, error) {
	f := e.f
	c := e.curve

	switch n {
	case 0:
		return f.Zero(), nil
	case 1:
		return f.One(), nil
	case 2:
		// 2y + a1x + a3
		return f.Add(f.MulInt64(pt.Y, 2), f.Add(f.Mul(c.A1(), pt.X), c.A3())), nil
	case 3:
		return e.psi3.Evaluate(pt.X), nil
	case 4:
		psi2, err := e.psi(2, pt, pc)
		if err != nil {
			return field.Element{}, err
		}
		return f.Mul(e.psi4Co.Evaluate(pt.X), psi2), nil
	}

	k := n / 2
	if n%2 == 1 {
		// psi_{k+2} psi_k^3 - psi_{k-1} psi_{k+1}^3
		vals, err := e.many(pt, pc, k-1, k, k+1, k+2)
		if err != nil {
			return field.Element{}, err
		}
		km1, k0, k1, k2 := vals[0], vals[1], vals[2], vals[3]
		t1 := f.Mul(k2, f.ExpUint64(k0, 3))
		t2 := f.Mul(km1, f.ExpUint64(k1, 3))
		return f.Sub(t1, t2), nil
	}

	// psi_k (psi_{k+2} psi_{k-1}^2 - psi_{k-2} psi_{k+1}^2) psi_2^-1
	vals, err := e.many(pt, pc, k-2, k-1, k, k+1, k+2)
	if err != nil {
		return field.Element{}, err
	}
	km2, km1, k0, k1, k2 := vals[0], vals[1], vals[2], vals[3], vals[4]
	inv, err := e.psi2Inverse(pt, pc)
	if err != nil {
		return field.Element{}, err
	}
	num := f.Sub(f.Mul(k2, f.Square(km1)), f.Mul(km2, f.Square(k1)))
	return f.Mul(f.Mul(k0, num), inv), nil
}

func (e *Evaluator) many(pt curves.Point, pc *pointCache, idx ...int64) ([]field.Element, error) {
	out := make([]field.Element, len(idx))
	for i, n := range idx {
		v, err := e.psi(n, pt, pc)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// psi2Inverse returns psi_2^-1 at pt, computed once per point.
func (e *Evaluator) psi2Inverse(pt curves.Point, pc *pointCache) (field.Element, error) {
	if pc.psi2Inv != nil {
		return *pc.psi2Inv, nil
	}
	psi2, err := e.psi(2, pt, pc)
	if err != nil {
		return field.Element{}, err
	}
	inv, err := e.f.Inverse(psi2)
	if err != nil {
		if ce := e.log.Check(zap.DebugLevel, "psi_2 vanishes, even recurrence is undefined"); ce != nil {
			ce.Write(zap.Stringer("x", pt.X), zap.Stringer("y", pt.Y))
		}
		return field.Element{}, eds.Errorf(eds.ErrSingularInverse,
			"divpoly: psi_2 ≡ 0 at %s, even recurrence needs its inverse", pt)
	}
	pc.psi2Inv = &inv
	return inv, nil
}

// MulIndex returns n*k, failing with eds.ErrInvalidIndex when the product is
// negative or does not fit in an int64.
func MulIndex(n, k int64) (int64, error) {
	if n < 0 || k < 0 {
		return 0, eds.Errorf(eds.ErrInvalidIndex, "divpoly: negative index factor in %d*%d", n, k)
	}
	if k != 0 && n > math.MaxInt64/k {
		return 0, eds.Errorf(eds.ErrInvalidIndex, "divpoly: index %d*%d overflows int64", n, k)
	}
	return n * k, nil
}
