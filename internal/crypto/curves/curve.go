package curves

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-eds-dlp/internal/crypto/field"
	"github.com/smallyu/go-eds-dlp/pkg/eds"
)

// Curve is an elliptic curve in general Weierstrass form
//
//	y^2 + a1*x*y + a3*y = x^3 + a2*x^2 + a4*x + a6
//
// over F_p. Short curves y^2 = x^3 + A*x + B are stored with a1=a2=a3=0,
// a4=A, a6=B so that every formula has a single code path. A Curve is
// immutable once constructed.
type Curve struct {
	f *field.Field

	a1, a2, a3, a4, a6 field.Element

	// b-invariants shared by every psi_3 and psi_4 evaluation.
	b2, b4, b6, b8 field.Element

	name string
}

// NewGeneral builds a curve from general Weierstrass coefficients. p must be
// an odd prime greater than 3; only the "odd and > 3" part is checked.
func NewGeneral(a1, a2, a3, a4, a6, p *big.Int) (*Curve, error) {
	for i, a := range []*big.Int{a1, a2, a3, a4, a6} {
		if a == nil {
			return nil, eds.Errorf(eds.ErrInvalidCurve, "curves: coefficient a%d is nil", []int{1, 2, 3, 4, 6}[i])
		}
	}
	f, err := field.New(p)
	if err != nil {
		return nil, err
	}

	c := &Curve{
		f:  f,
		a1: f.Elem(a1),
		a2: f.Elem(a2),
		a3: f.Elem(a3),
		a4: f.Elem(a4),
		a6: f.Elem(a6),
	}
	c.computeInvariants()
	return c, nil
}

// NewShort builds y^2 = x^3 + A*x + B over F_p, normalized to general form.
func NewShort(a, b, p *big.Int) (*Curve, error) {
	if a == nil || b == nil {
		return nil, eds.NewError(eds.ErrInvalidCurve, "curves: short coefficients must not be nil")
	}
	return NewGeneral(big.NewInt(0), big.NewInt(0), big.NewInt(0), a, b, p)
}

func (c *Curve) computeInvariants() {
	f := c.f
	a1sq := f.Square(c.a1)

	// b2 = a1^2 + 4a2
	c.b2 = f.Add(a1sq, f.MulInt64(c.a2, 4))
	// b4 = a1a3 + 2a4
	c.b4 = f.Add(f.Mul(c.a1, c.a3), f.MulInt64(c.a4, 2))
	// b6 = a3^2 + 4a6
	c.b6 = f.Add(f.Square(c.a3), f.MulInt64(c.a6, 4))
	// b8 = a1^2a6 - a1a3a4 + 4a2a6 + a2a3^2 - a4^2
	b8 := f.Mul(a1sq, c.a6)
	b8 = f.Sub(b8, f.Mul(f.Mul(c.a1, c.a3), c.a4))
	b8 = f.Add(b8, f.MulInt64(f.Mul(c.a2, c.a6), 4))
	b8 = f.Add(b8, f.Mul(c.a2, f.Square(c.a3)))
	c.b8 = f.Sub(b8, f.Square(c.a4))
}

// Named returns a copy of the curve labelled with name.
func (c *Curve) Named(name string) *Curve {
	cp := *c
	cp.name = name
	return &cp
}

func (c *Curve) Name() string { return c.name }

func (c *Curve) Field() *field.Field { return c.f }

// Modulus returns a copy of p.
func (c *Curve) Modulus() *big.Int { return c.f.Modulus() }

func (c *Curve) A1() field.Element { return c.a1 }
func (c *Curve) A2() field.Element { return c.a2 }
func (c *Curve) A3() field.Element { return c.a3 }
func (c *Curve) A4() field.Element { return c.a4 }
func (c *Curve) A6() field.Element { return c.a6 }

func (c *Curve) B2() field.Element { return c.b2 }
func (c *Curve) B4() field.Element { return c.b4 }
func (c *Curve) B6() field.Element { return c.b6 }
func (c *Curve) B8() field.Element { return c.b8 }

// IsShort reports whether a1 = a2 = a3 = 0.
func (c *Curve) IsShort() bool {
	return c.a1.IsZero() && c.a2.IsZero() && c.a3.IsZero()
}

// ShortCoefficients returns (A, B) when the curve is in short form.
func (c *Curve) ShortCoefficients() (a, b field.Element, ok bool) {
	if !c.IsShort() {
		return field.Element{}, field.Element{}, false
	}
	return c.a4, c.a6, true
}

// Discriminant returns -b2^2*b8 - 8b4^3 - 27b6^2 + 9b2*b4*b6.
func (c *Curve) Discriminant() field.Element {
	f := c.f
	d := f.Neg(f.Mul(f.Square(c.b2), c.b8))
	d = f.Sub(d, f.MulInt64(f.ExpUint64(c.b4, 3), 8))
	d = f.Sub(d, f.MulInt64(f.Square(c.b6), 27))
	return f.Add(d, f.MulInt64(f.Mul(f.Mul(c.b2, c.b4), c.b6), 9))
}

// IsSingular reports whether the discriminant vanishes.
func (c *Curve) IsSingular() bool {
	return c.Discriminant().IsZero()
}

// Equal reports whether both curves have the same field and coefficients.
func (c *Curve) Equal(o *Curve) bool {
	return c.f.Equal(o.f) &&
		c.a1.Equal(o.a1) && c.a2.Equal(o.a2) && c.a3.Equal(o.a3) &&
		c.a4.Equal(o.a4) && c.a6.Equal(o.a6)
}

func (c *Curve) String() string {
	var eq string
	if c.IsShort() {
		eq = fmt.Sprintf("y^2 = x^3 + %sx + %s", c.a4, c.a6)
	} else {
		eq = fmt.Sprintf("y^2 + %sxy + %sy = x^3 + %sx^2 + %sx + %s", c.a1, c.a3, c.a2, c.a4, c.a6)
	}
	if c.name != "" {
		return fmt.Sprintf("%s: %s over F_%s", c.name, eq, c.f.Modulus())
	}
	return fmt.Sprintf("%s over F_%s", eq, c.f.Modulus())
}
