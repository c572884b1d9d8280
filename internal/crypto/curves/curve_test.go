package curves

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-eds-dlp/pkg/eds"
)

// paperCurve is y^2 + xy + y = x^3 + x^2 + 21x over F_23.
func paperCurve(t testing.TB) *Curve {
	t.Helper()
	c, err := NewGeneral(big.NewInt(1), big.NewInt(1), big.NewInt(1), big.NewInt(21), big.NewInt(0), big.NewInt(23))
	require.NoError(t, err)
	return c
}

// shortCurve is y^2 = x^3 + x + 1 over F_23.
func shortCurve(t testing.TB) *Curve {
	t.Helper()
	c, err := NewShort(big.NewInt(1), big.NewInt(1), big.NewInt(23))
	require.NoError(t, err)
	return c
}

func TestInvariants(t *testing.T) {
	tests := []struct {
		name           string
		curve          *Curve
		b2, b4, b6, b8 string
		disc           string
	}{
		{"general", paperCurve(t), "5", "20", "1", "22", "10"},
		{"short", shortCurve(t), "0", "2", "4", "22", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.b2, tt.curve.B2().String())
			assert.Equal(t, tt.b4, tt.curve.B4().String())
			assert.Equal(t, tt.b6, tt.curve.B6().String())
			assert.Equal(t, tt.b8, tt.curve.B8().String())
			assert.Equal(t, tt.disc, tt.curve.Discriminant().String())
			assert.False(t, tt.curve.IsSingular())
		})
	}
}

func TestShortNormalization(t *testing.T) {
	short := shortCurve(t)
	assert.True(t, short.IsShort())
	assert.True(t, short.A1().IsZero())
	assert.True(t, short.A2().IsZero())
	assert.True(t, short.A3().IsZero())
	assert.Equal(t, "1", short.A4().String())
	assert.Equal(t, "1", short.A6().String())

	a, b, ok := short.ShortCoefficients()
	require.True(t, ok)
	back, err := NewShort(a.BigInt(), b.BigInt(), short.Modulus())
	require.NoError(t, err)
	assert.True(t, back.Equal(short))

	general, err := NewGeneral(big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(24), big.NewInt(-22), big.NewInt(23))
	require.NoError(t, err)
	assert.True(t, general.Equal(short))

	_, _, ok = paperCurve(t).ShortCoefficients()
	assert.False(t, ok)
}

func TestInvalidCurve(t *testing.T) {
	for _, p := range []int64{-5, 2, 3, 24} {
		_, err := NewShort(big.NewInt(1), big.NewInt(1), big.NewInt(p))
		assert.True(t, errors.Is(err, eds.ErrInvalidCurve), "p=%d", p)
	}

	_, err := NewShort(nil, big.NewInt(1), big.NewInt(23))
	assert.True(t, errors.Is(err, eds.ErrInvalidCurve))

	_, err = NewGeneral(big.NewInt(1), nil, big.NewInt(1), big.NewInt(1), big.NewInt(1), big.NewInt(23))
	assert.True(t, errors.Is(err, eds.ErrInvalidCurve))
	assert.Contains(t, err.Error(), "a2")
}

func TestSingular(t *testing.T) {
	cusp, err := NewShort(big.NewInt(0), big.NewInt(0), big.NewInt(23))
	require.NoError(t, err)
	assert.True(t, cusp.IsSingular())
}

func TestCurveString(t *testing.T) {
	assert.Equal(t, "y^2 = x^3 + 1x + 1 over F_23", shortCurve(t).String())
	assert.Equal(t, "y^2 + 1xy + 1y = x^3 + 1x^2 + 21x + 0 over F_23", paperCurve(t).String())

	named := shortCurve(t).Named("toy")
	assert.Equal(t, "toy", named.Name())
	assert.Equal(t, "toy: y^2 = x^3 + 1x + 1 over F_23", named.String())
	assert.True(t, named.Equal(shortCurve(t)))
}
