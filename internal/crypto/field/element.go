package field

import "math/big"

// Element is a residue normalized into [0, p). The zero value is 0.
// Elements are immutable: every Field operation returns a fresh value.
type Element struct {
	v *big.Int
}

func (e Element) int() *big.Int {
	if e.v == nil {
		return zero
	}
	return e.v
}

// BigInt returns a copy of the residue.
func (e Element) BigInt() *big.Int {
	return new(big.Int).Set(e.int())
}

func (e Element) IsZero() bool {
	return e.int().Sign() == 0
}

func (e Element) IsOne() bool {
	return e.int().Cmp(one) == 0
}

func (e Element) Equal(other Element) bool {
	return e.int().Cmp(other.int()) == 0
}

// Uint64 returns the residue truncated to 64 bits.
func (e Element) Uint64() uint64 {
	return e.int().Uint64()
}

func (e Element) String() string {
	return e.int().String()
}

// Text returns the residue in the given base.
func (e Element) Text(base int) string {
	return e.int().Text(base)
}

// MarshalText encodes the residue in decimal for JSON and YAML reports.
func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
