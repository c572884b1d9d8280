package curves

import (
	"crypto/rand"
	"math/big"
	"sort"
	"strings"
	"sync"

	"github.com/smallyu/go-eds-dlp/pkg/eds"
)

// ReferenceMultiplier computes [k]G for a preset's generator with an
// independent, audited implementation. It is used to cross-check
// ScalarMult and to derive Q = [k]P for large k.
type ReferenceMultiplier interface {
	ScalarBaseMult(k *big.Int) (Point, error)
}

// Preset is a named curve with a generator of known prime order.
type Preset struct {
	Name      string
	Curve     *Curve
	Generator Point
	Order     *big.Int
	Reference ReferenceMultiplier
}

// NewScalar generates a random scalar in [1, Order-1].
func (p *Preset) NewScalar() (*big.Int, error) {
	max := new(big.Int).Sub(p.Order, big.NewInt(1))
	k, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, err
	}
	return k.Add(k, big.NewInt(1)), nil
}

var (
	presetsOnce sync.Once
	presets     map[string]*Preset
)

func loadPresets() {
	presets = map[string]*Preset{
		"secp256k1": newSecp256k1(),
		"wei25519":  newWei25519(),
	}
}

// Lookup returns the preset registered under name (case-insensitive).
func Lookup(name string) (*Preset, error) {
	presetsOnce.Do(loadPresets)
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, eds.Errorf(eds.ErrInvalidCurve, "curves: unknown preset %q (known: %s)",
			name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames lists the registered presets in sorted order.
func PresetNames() []string {
	presetsOnce.Do(loadPresets)
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Secp256k1 returns the secp256k1 preset.
func Secp256k1() *Preset {
	p, _ := Lookup("secp256k1")
	return p
}

// Wei25519 returns the short Weierstrass model of Curve25519.
func Wei25519() *Preset {
	p, _ := Lookup("wei25519")
	return p
}
