package curves

import (
	"math/big"

	"filippo.io/edwards25519"
	edfield "filippo.io/edwards25519/field"

	"github.com/smallyu/go-eds-dlp/internal/crypto/field"
)

// Curve25519 parameters: p = 2^255 - 19, Montgomery A = 486662, and the
// order l = 2^252 + 27742317777372353535851937790883648493 of the base point.
var (
	p25519, _     = new(big.Int).SetString("57896044618658097711785492504343953926634992332820282019728792003956564819949", 10)
	order25519, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	montgomeryA   = big.NewInt(486662)
)

// wei25519Map sends edwards25519 points to the short Weierstrass model
//
//	y^2 = x^3 + a*x + b, a = (3 - A^2)/3, b = (2A^3 - 9A)/27
//
// through the Montgomery form v^2 = u^3 + A*u^2 + u:
//
//	u = (1 + y)/(1 - y), v = sqrt(-486664)*u/x, X = u + A/3, Y = v.
type wei25519Map struct {
	curve  *Curve
	aOver3 field.Element
	scale  field.Element // sqrt(-486664)
}

func newWei25519Map() *wei25519Map {
	f, err := field.New(p25519)
	if err != nil {
		panic(err)
	}
	A := f.Elem(montgomeryA)
	inv3, _ := f.Inverse(f.FromInt64(3))
	inv27, _ := f.Inverse(f.FromInt64(27))

	a := f.Mul(f.Sub(f.FromInt64(3), f.Square(A)), inv3)
	b := f.Mul(f.Sub(f.MulInt64(f.ExpUint64(A, 3), 2), f.MulInt64(A, 9)), inv27)

	c, err := NewShort(a.BigInt(), b.BigInt(), p25519)
	if err != nil {
		panic(err)
	}
	scale, ok := f.Sqrt(f.FromInt64(-486664))
	if !ok {
		panic("curves: -486664 is not a square mod 2^255-19")
	}
	return &wei25519Map{
		curve:  c.Named("wei25519"),
		aOver3: f.Mul(A, inv3),
		scale:  scale,
	}
}

// fromEdwards converts an edwards25519 point to Weierstrass coordinates.
func (m *wei25519Map) fromEdwards(pt *edwards25519.Point) (Point, error) {
	f := m.curve.Field()
	X, Y, Z, _ := pt.ExtendedCoordinates()
	zInv, err := f.Inverse(f.Elem(leBytesToInt(Z)))
	if err != nil {
		return Point{}, err
	}
	x := f.Mul(f.Elem(leBytesToInt(X)), zInv)
	y := f.Mul(f.Elem(leBytesToInt(Y)), zInv)

	if x.IsZero() {
		if y.IsOne() {
			return Infinity(), nil
		}
		// (0, -1) has order 2 and maps to the Montgomery point (0, 0).
		return Point{X: m.aOver3, Y: f.Zero()}, nil
	}

	one := f.One()
	u, err := f.Div(f.Add(one, y), f.Sub(one, y))
	if err != nil {
		return Point{}, err
	}
	v, err := f.Div(f.Mul(m.scale, u), x)
	if err != nil {
		return Point{}, err
	}
	return Point{X: f.Add(u, m.aOver3), Y: v}, nil
}

func leBytesToInt(e *edfield.Element) *big.Int {
	b := e.Bytes()
	// Convert little-endian bytes to big.Int (big-endian)
	buf := make([]byte, len(b))
	for i := range b {
		buf[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(buf)
}

// scalarFromBigInt reduces n mod l into an edwards25519 scalar.
func scalarFromBigInt(n *big.Int) (*edwards25519.Scalar, error) {
	n = new(big.Int).Mod(n, order25519)
	bytes := n.Bytes()

	var buf [32]byte
	// Reverse bytes for little-endian
	for i := 0; i < len(bytes); i++ {
		buf[len(bytes)-1-i] = bytes[i]
	}
	return edwards25519.NewScalar().SetCanonicalBytes(buf[:])
}

// ed25519Reference multiplies by the Ed25519 base point with
// filippo.io/edwards25519 and maps the result to Weierstrass form.
type ed25519Reference struct {
	m *wei25519Map
}

func (r *ed25519Reference) ScalarBaseMult(k *big.Int) (Point, error) {
	s, err := scalarFromBigInt(k)
	if err != nil {
		return Point{}, err
	}
	return r.m.fromEdwards(edwards25519.NewIdentityPoint().ScalarBaseMult(s))
}

func newWei25519() *Preset {
	m := newWei25519Map()
	g, err := m.fromEdwards(edwards25519.NewGeneratorPoint())
	if err != nil {
		panic(err)
	}
	return &Preset{
		Name:      "wei25519",
		Curve:     m.curve,
		Generator: g,
		Order:     new(big.Int).Set(order25519),
		Reference: &ed25519Reference{m: m},
	}
}
