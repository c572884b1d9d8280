package polynomial

import (
	"math/big"
	"testing"

	"github.com/smallyu/go-eds-dlp/internal/crypto/field"
)

func testField(t *testing.T) *field.Field {
	t.Helper()
	f, err := field.New(big.NewInt(101))
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	return f
}

func ints(f *field.Field, vs ...int64) []field.Element {
	out := make([]field.Element, len(vs))
	for i, v := range vs {
		out[i] = f.FromInt64(v)
	}
	return out
}

func TestNew(t *testing.T) {
	f := testField(t)

	t.Run("copies coefficients", func(t *testing.T) {
		coeffs := ints(f, 1, 2, 3)
		poly := New(f, coeffs...)
		coeffs[0] = f.FromInt64(50)

		if poly.Coefficients[0].String() != "1" {
			t.Errorf("Expected a_0 = 1, got %s", poly.Coefficients[0])
		}
	})

	t.Run("degree", func(t *testing.T) {
		if d := New(f, ints(f, 1, 2, 0, 0)...).Degree(); d != 1 {
			t.Errorf("Expected degree 1, got %d", d)
		}
		if d := New(f).Degree(); d != -1 {
			t.Errorf("Expected degree -1 for zero polynomial, got %d", d)
		}
		if d := New(f, ints(f, 0, 0, 101)...).Degree(); d != -1 {
			t.Errorf("Expected degree -1 when all coefficients reduce to 0, got %d", d)
		}
	})
}

func TestEvaluate(t *testing.T) {
	f := testField(t)

	t.Run("zero polynomial", func(t *testing.T) {
		poly := New(f)
		if result := poly.Evaluate(f.FromInt64(7)); !result.IsZero() {
			t.Errorf("f(7) = %s, expected 0", result)
		}
	})

	t.Run("constant polynomial", func(t *testing.T) {
		// f(x) = 5
		poly := New(f, ints(f, 5)...)

		result := poly.Evaluate(f.FromInt64(0))
		if result.String() != "5" {
			t.Errorf("f(0) = %s, expected 5", result)
		}

		result = poly.Evaluate(f.FromInt64(100))
		if result.String() != "5" {
			t.Errorf("f(100) = %s, expected 5", result)
		}
	})

	t.Run("quadratic polynomial", func(t *testing.T) {
		// f(x) = 1 + 2x + 3x^2
		poly := New(f, ints(f, 1, 2, 3)...)

		for _, tc := range []struct{ x, want int64 }{
			{0, 1},
			{1, 6},
			{2, 17},
			{3, 34},
		} {
			result := poly.Evaluate(f.FromInt64(tc.x))
			if result.Uint64() != uint64(tc.want) {
				t.Errorf("f(%d) = %s, expected %d", tc.x, result, tc.want)
			}
		}
	})

	t.Run("modular reduction", func(t *testing.T) {
		// f(x) = (p-1) + 2x, f(1) = p+1 = 1 mod p
		poly := New(f, ints(f, -1, 2)...)

		result := poly.Evaluate(f.FromInt64(1))
		if !result.IsOne() {
			t.Errorf("f(1) = %s, expected 1 (after mod p)", result)
		}
	})

	t.Run("psi3 shape", func(t *testing.T) {
		// 3x^4 + 6x^2 + 12x - 1 over F_23 at x = 3, y^2 = x^3 + x + 1
		f23, err := field.New(big.NewInt(23))
		if err != nil {
			t.Fatal(err)
		}
		poly := New(f23, ints(f23, -1, 12, 6, 0, 3)...)
		if result := poly.Evaluate(f23.FromInt64(3)); result.String() != "10" {
			t.Errorf("psi_3(3) = %s, expected 10", result)
		}
	})
}

func TestEvaluateMulti(t *testing.T) {
	f := testField(t)

	// f(x) = 5 + 3x
	poly := New(f, ints(f, 5, 3)...)

	xs := ints(f, 0, 1, 2, 40)
	expected := []string{"5", "8", "11", "24"} // 125 mod 101 = 24

	results := poly.EvaluateMulti(xs)

	if len(results) != len(expected) {
		t.Fatalf("Expected %d results, got %d", len(expected), len(results))
	}

	for i, r := range results {
		if r.String() != expected[i] {
			t.Errorf("f(%s) = %s, expected %s", xs[i], r, expected[i])
		}
	}
}

func TestString(t *testing.T) {
	f := testField(t)
	poly := New(f, ints(f, 7, 0, 3, 0, 0, 0, 0, 0, 0, 0, 0, 2)...)
	if s := poly.String(); s != "2x^11 + 3x^2 + 7" {
		t.Errorf("String() = %q", s)
	}
	if s := New(f).String(); s != "0" {
		t.Errorf("String() = %q, expected 0", s)
	}
}
