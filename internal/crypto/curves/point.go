package curves

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-eds-dlp/internal/crypto/field"
	"github.com/smallyu/go-eds-dlp/pkg/eds"
)

// Point is an affine point with coordinates reduced mod p, or the point at
// infinity O when Inf is set. Points are plain values.
type Point struct {
	X, Y field.Element
	Inf  bool
}

// Infinity returns the identity O.
func Infinity() Point {
	return Point{Inf: true}
}

// NewPoint reduces (x, y) into the curve's field. It does not check that the
// point satisfies the curve equation; use Validate for that.
func (c *Curve) NewPoint(x, y *big.Int) Point {
	return Point{X: c.f.Elem(x), Y: c.f.Elem(y)}
}

// PointFromInt64 is NewPoint for small literals.
func (c *Curve) PointFromInt64(x, y int64) Point {
	return Point{X: c.f.FromInt64(x), Y: c.f.FromInt64(y)}
}

func (p Point) Equal(q Point) bool {
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return p.X.Equal(q.X) && p.Y.Equal(q.Y)
}

func (p Point) String() string {
	if p.Inf {
		return "O"
	}
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

// IsOnCurve reports whether p satisfies the curve equation. O is on every
// curve.
func (c *Curve) IsOnCurve(p Point) bool {
	if p.Inf {
		return true
	}
	f := c.f
	// lhs = y^2 + a1*x*y + a3*y
	lhs := f.Add(f.Square(p.Y), f.Mul(f.Mul(c.a1, p.X), p.Y))
	lhs = f.Add(lhs, f.Mul(c.a3, p.Y))
	// rhs = x^3 + a2*x^2 + a4*x + a6
	x2 := f.Square(p.X)
	rhs := f.Add(f.Mul(x2, p.X), f.Mul(c.a2, x2))
	rhs = f.Add(rhs, f.Mul(c.a4, p.X))
	rhs = f.Add(rhs, c.a6)
	return lhs.Equal(rhs)
}

// Validate returns an error unless p is an affine point on the curve.
func (c *Curve) Validate(p Point) error {
	if p.Inf {
		return eds.NewError(eds.ErrPointAtInfinity, "curves: point at infinity has no affine coordinates")
	}
	if !c.IsOnCurve(p) {
		return eds.Errorf(eds.ErrPointNotOnCurve, "curves: point %s is not on %s", p, c)
	}
	return nil
}

// Neg returns -p = (x, -y - a1*x - a3).
func (c *Curve) Neg(p Point) Point {
	if p.Inf {
		return p
	}
	f := c.f
	y := f.Sub(f.Neg(p.Y), f.Add(f.Mul(c.a1, p.X), c.a3))
	return Point{X: p.X, Y: y}
}

// Double returns 2p using the tangent at p. A vertical tangent yields O.
func (c *Curve) Double(p Point) (Point, error) {
	if p.Inf {
		return p, nil
	}
	f := c.f

	// lambda = (3x^2 + 2a2*x + a4 - a1*y) / (2y + a1*x + a3)
	den := f.Add(f.MulInt64(p.Y, 2), f.Add(f.Mul(c.a1, p.X), c.a3))
	if den.IsZero() {
		return Infinity(), nil
	}
	num := f.Add(f.MulInt64(f.Square(p.X), 3), f.MulInt64(f.Mul(c.a2, p.X), 2))
	num = f.Sub(f.Add(num, c.a4), f.Mul(c.a1, p.Y))

	lam, err := f.Div(num, den)
	if err != nil {
		return Point{}, err
	}
	return c.chord(lam, p, p), nil
}

// Add returns p + q. Adding a point to its negative yields O. When x1 = x2
// but the points are neither equal nor opposite (inputs off the curve) the
// chord is vertical and Add fails with eds.ErrSingularInverse.
func (c *Curve) Add(p, q Point) (Point, error) {
	if p.Inf {
		return q, nil
	}
	if q.Inf {
		return p, nil
	}
	f := c.f

	if p.X.Equal(q.X) {
		if q.Y.Equal(c.Neg(p).Y) {
			return Infinity(), nil
		}
		if p.Y.Equal(q.Y) {
			return c.Double(p)
		}
	}

	// lambda = (y2 - y1) / (x2 - x1)
	lam, err := f.Div(f.Sub(q.Y, p.Y), f.Sub(q.X, p.X))
	if err != nil {
		return Point{}, eds.Errorf(eds.ErrSingularInverse,
			"curves: vertical chord through %s and %s: %v", p, q, err)
	}
	return c.chord(lam, p, q), nil
}

// chord completes the group law once the slope through p and q is known:
//
//	x3 = lambda^2 + a1*lambda - a2 - x1 - x2
//	y3 = -(lambda + a1)*x3 - nu - a3, nu = y1 - lambda*x1
//
// For a1=a2=a3=0 this is x3 = lambda^2 - x1 - x2, y3 = lambda(x1 - x3) - y1.
func (c *Curve) chord(lam field.Element, p, q Point) Point {
	f := c.f
	x3 := f.Add(f.Square(lam), f.Mul(c.a1, lam))
	x3 = f.Sub(f.Sub(f.Sub(x3, c.a2), p.X), q.X)

	nu := f.Sub(p.Y, f.Mul(lam, p.X))
	y3 := f.Neg(f.Mul(f.Add(lam, c.a1), x3))
	y3 = f.Sub(f.Sub(y3, nu), c.a3)
	return Point{X: x3, Y: y3}
}

// ScalarMult computes [k]p by adding p to itself k times. It performs k
// group operations; use ScalarMultBinary for large k. [0]p is O.
func (c *Curve) ScalarMult(k int64, p Point) (Point, error) {
	if k < 0 {
		return Point{}, eds.Errorf(eds.ErrInvalidScalar, "curves: negative scalar %d", k)
	}
	r := Infinity()
	for i := int64(0); i < k; i++ {
		var err error
		r, err = c.Add(r, p)
		if err != nil {
			return Point{}, err
		}
	}
	return r, nil
}

// ScalarMultBinary computes [k]p with left-to-right double-and-add. It
// returns the same point as ScalarMult.
func (c *Curve) ScalarMultBinary(k *big.Int, p Point) (Point, error) {
	if k.Sign() < 0 {
		return Point{}, eds.Errorf(eds.ErrInvalidScalar, "curves: negative scalar %s", k)
	}
	r := Infinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		var err error
		if r, err = c.Double(r); err != nil {
			return Point{}, err
		}
		if k.Bit(i) == 1 {
			if r, err = c.Add(r, p); err != nil {
				return Point{}, err
			}
		}
	}
	return r, nil
}
