package edsdlp

import (
	"math/big"

	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/divpoly"
	"github.com/smallyu/go-eds-dlp/internal/verify"
)

type (
	// Curve is an elliptic curve over F_p in general Weierstrass form.
	Curve = curves.Curve
	// Point is an affine point or the point at infinity.
	Point = curves.Point
	// Evaluator computes psi_n values with a reusable cache.
	Evaluator = divpoly.Evaluator
)

// Row is one checked index of VerifyIdentity.
type Row struct {
	N       int64
	LHS     *big.Int
	RHS     *big.Int
	Matched bool
	Err     error
}

// NewGeneralCurve builds y^2 + a1xy + a3y = x^3 + a2x^2 + a4x + a6 over F_p.
func NewGeneralCurve(a1, a2, a3, a4, a6, p *big.Int) (*Curve, error) {
	return curves.NewGeneral(a1, a2, a3, a4, a6, p)
}

// NewShortCurve builds y^2 = x^3 + ax + b over F_p.
func NewShortCurve(a, b, p *big.Int) (*Curve, error) {
	return curves.NewShort(a, b, p)
}

// NewPoint returns (x, y) reduced mod p, checking that it lies on c.
func NewPoint(c *Curve, x, y *big.Int) (Point, error) {
	pt := c.NewPoint(x, y)
	if err := c.Validate(pt); err != nil {
		return Point{}, err
	}
	return pt, nil
}

// NewEvaluator returns an Evaluator for c. Reuse it for many calls on the
// same curve to share the cache.
func NewEvaluator(c *Curve) *Evaluator {
	return divpoly.New(c)
}

// Psi returns psi_n(pt) in [0, p).
func Psi(c *Curve, n int64, pt Point) (*big.Int, error) {
	v, err := divpoly.New(c).Psi(n, pt)
	if err != nil {
		return nil, err
	}
	return v.BigInt(), nil
}

// PointAdd returns p + q.
func PointAdd(c *Curve, p, q Point) (Point, error) {
	return c.Add(p, q)
}

// ScalarMult returns [n]p.
func ScalarMult(c *Curve, n int64, p Point) (Point, error) {
	return c.ScalarMult(n, p)
}

// VerifyIdentity checks the identity for every n in [from, to] and returns
// one row per n. Row failures are recorded in the row; only invalid input
// returns an error.
func VerifyIdentity(c *Curve, p Point, k, from, to int64) ([]Row, error) {
	report, err := verify.New(c).Verify(p, k, verify.Range{From: from, To: to})
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = Row{N: r.N, Matched: r.Matched, Err: r.Err}
		if r.Err == nil {
			rows[i].LHS = r.LHS.BigInt()
			rows[i].RHS = r.RHS.BigInt()
		}
	}
	return rows, nil
}
