package curves

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// secp256k1Reference multiplies by the secp256k1 generator with the decred
// implementation.
type secp256k1Reference struct {
	curve *Curve
}

func (r *secp256k1Reference) ScalarBaseMult(k *big.Int) (Point, error) {
	x, y := secp256k1.S256().ScalarBaseMult(k.Bytes())
	// The library reports O as (0, 0), which is not on y^2 = x^3 + 7.
	if x.Sign() == 0 && y.Sign() == 0 {
		return Infinity(), nil
	}
	return r.curve.NewPoint(x, y), nil
}

func newSecp256k1() *Preset {
	params := secp256k1.S256().Params()
	c, err := NewShort(big.NewInt(0), params.B, params.P)
	if err != nil {
		panic(err)
	}
	c = c.Named("secp256k1")

	return &Preset{
		Name:      "secp256k1",
		Curve:     c,
		Generator: c.NewPoint(params.Gx, params.Gy),
		Order:     new(big.Int).Set(params.N),
		Reference: &secp256k1Reference{curve: c},
	}
}
