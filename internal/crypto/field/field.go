package field

import (
	"math/big"

	"github.com/smallyu/go-eds-dlp/pkg/eds"
)

var (
	zero  = big.NewInt(0)
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Field is the prime field F_p. Primality of p is the caller's
// responsibility; New only rejects moduli the curve formulas cannot use.
type Field struct {
	p       *big.Int
	pMinus2 *big.Int // Fermat exponent for Inverse
	size    int      // byte length of p, used for fixed-width keys
}

// New returns the field of residues modulo p. p must be odd and greater than
// 3 so that 2 and 3 are invertible.
func New(p *big.Int) (*Field, error) {
	if p == nil {
		return nil, eds.NewError(eds.ErrInvalidCurve, "field: modulus is nil")
	}
	if p.Cmp(three) <= 0 {
		return nil, eds.Errorf(eds.ErrInvalidCurve, "field: modulus %s must be greater than 3", p)
	}
	if p.Bit(0) == 0 {
		return nil, eds.Errorf(eds.ErrInvalidCurve, "field: modulus %s must be odd", p)
	}
	return &Field{
		p:       new(big.Int).Set(p),
		pMinus2: new(big.Int).Sub(p, two),
		size:    (p.BitLen() + 7) / 8,
	}, nil
}

// Modulus returns a copy of p.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.p)
}

// ByteLen returns the number of bytes needed to encode any residue.
func (f *Field) ByteLen() int {
	return f.size
}

// Equal reports whether both fields share the same modulus.
func (f *Field) Equal(other *Field) bool {
	return f.p.Cmp(other.p) == 0
}

// Elem reduces x into [0, p). Negative inputs are reduced to their
// non-negative representative.
func (f *Field) Elem(x *big.Int) Element {
	if x == nil {
		return Element{}
	}
	// big.Int.Mod is Euclidean, the result is already non-negative.
	return Element{v: new(big.Int).Mod(x, f.p)}
}

// FromInt64 reduces a machine integer into the field.
func (f *Field) FromInt64(x int64) Element {
	return f.Elem(big.NewInt(x))
}

func (f *Field) Zero() Element { return Element{} }

func (f *Field) One() Element { return Element{v: big.NewInt(1)} }

func (f *Field) Add(a, b Element) Element {
	return f.Elem(new(big.Int).Add(a.int(), b.int()))
}

func (f *Field) Sub(a, b Element) Element {
	return f.Elem(new(big.Int).Sub(a.int(), b.int()))
}

func (f *Field) Mul(a, b Element) Element {
	return f.Elem(new(big.Int).Mul(a.int(), b.int()))
}

func (f *Field) Neg(a Element) Element {
	return f.Elem(new(big.Int).Neg(a.int()))
}

func (f *Field) Square(a Element) Element {
	return f.Mul(a, a)
}

// MulInt64 multiplies a by a small integer constant.
func (f *Field) MulInt64(a Element, k int64) Element {
	return f.Elem(new(big.Int).Mul(a.int(), big.NewInt(k)))
}

// Exp computes base^e mod p. e must be non-negative; 0^0 is 1.
func (f *Field) Exp(base Element, e *big.Int) Element {
	if e.Sign() < 0 {
		panic("field: negative exponent")
	}
	return Element{v: new(big.Int).Exp(base.int(), e, f.p)}
}

// ExpUint64 is Exp for machine-sized exponents.
func (f *Field) ExpUint64(base Element, e uint64) Element {
	return f.Exp(base, new(big.Int).SetUint64(e))
}

// Inverse returns a^(p-2) mod p, the multiplicative inverse of a when p is
// prime. Inverting zero fails with eds.ErrSingularInverse.
func (f *Field) Inverse(a Element) (Element, error) {
	if a.IsZero() {
		return Element{}, eds.Errorf(eds.ErrSingularInverse, "field: inverse of 0 mod %s", f.p)
	}
	return Element{v: new(big.Int).Exp(a.int(), f.pMinus2, f.p)}, nil
}

// Div returns a * b^-1.
func (f *Field) Div(a, b Element) (Element, error) {
	inv, err := f.Inverse(b)
	if err != nil {
		return Element{}, err
	}
	return f.Mul(a, inv), nil
}

// Sqrt returns a square root of a, or false if a is a non-residue.
func (f *Field) Sqrt(a Element) (Element, bool) {
	r := new(big.Int).ModSqrt(a.int(), f.p)
	if r == nil {
		return Element{}, false
	}
	return Element{v: r}, true
}

// Bytes encodes a as a fixed-width big-endian byte string.
func (f *Field) Bytes(a Element) []byte {
	return a.int().FillBytes(make([]byte, f.size))
}
