package e2e

import (
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	edsdlp "github.com/smallyu/go-eds-dlp"
	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/divpoly"
	"github.com/smallyu/go-eds-dlp/internal/verify"
	"github.com/smallyu/go-eds-dlp/pkg/eds"
)

func TestPaperWorkedExample(t *testing.T) {
	c, err := edsdlp.NewGeneralCurve(big.NewInt(1), big.NewInt(1), big.NewInt(1), big.NewInt(21), big.NewInt(0), big.NewInt(23))
	if err != nil {
		t.Fatalf("curve: %v", err)
	}

	// 1. Derive Q = [7]P and Q + P with the group law
	p := c.PointFromInt64(0, 0)
	q, err := edsdlp.ScalarMult(c, 7, p)
	if err != nil {
		t.Fatalf("ScalarMult: %v", err)
	}
	qp, err := edsdlp.PointAdd(c, q, p)
	if err != nil {
		t.Fatalf("PointAdd: %v", err)
	}
	if !q.Equal(c.PointFromInt64(18, 14)) || !qp.Equal(c.PointFromInt64(21, 0)) {
		t.Fatalf("unexpected points Q=%s Q+P=%s", q, qp)
	}

	// 2. Sequences of all three points share one evaluator
	e := edsdlp.NewEvaluator(c)
	want := map[string][]uint64{
		p.String():  {0, 1, 1, 22, 2},
		q.String():  {0, 1, 1, 20, 1},
		qp.String(): {0, 1, 22, 11, 18},
	}
	for _, pt := range []curves.Point{p, q, qp} {
		seq, err := e.Sequence(pt, 5)
		if err != nil {
			t.Fatalf("Sequence(%s): %v", pt, err)
		}
		for n, v := range seq {
			if v.Uint64() != want[pt.String()][n] {
				t.Errorf("psi_%d(%s) = %s, want %d", n, pt, v, want[pt.String()][n])
			}
		}
	}

	// 3. The identity ties the sequence of P to that of Q
	rows, err := edsdlp.VerifyIdentity(c, p, 7, 1, 20)
	if err != nil {
		t.Fatalf("VerifyIdentity: %v", err)
	}
	for _, r := range rows {
		if r.Err != nil || !r.Matched {
			t.Errorf("n=%d: lhs=%v rhs=%v err=%v", r.N, r.LHS, r.RHS, r.Err)
		}
	}
}

func randomScalar(t *testing.T, lo, hi int64) int64 {
	t.Helper()
	n, err := rand.Int(rand.Reader, big.NewInt(hi-lo))
	if err != nil {
		t.Fatalf("rand: %v", err)
	}
	return lo + n.Int64()
}

func TestPresetIdentity(t *testing.T) {
	for _, name := range curves.PresetNames() {
		t.Run(name, func(t *testing.T) {
			preset, err := curves.Lookup(name)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			v := verify.New(preset.Curve, verify.WithPreset(preset))

			for _, k := range []int64{
				randomScalar(t, 2, 500),
				randomScalar(t, verify.MaxRepeatedAdd+1, 1<<24),
			} {
				report, err := v.Verify(preset.Generator, k, verify.Range{From: 1, To: 4})
				if err != nil {
					t.Fatalf("Verify k=%d: %v", k, err)
				}
				if !report.AllMatched() {
					t.Errorf("identity failed for k=%d: %+v", k, report.Failures())
				}
			}
		})
	}
}

func TestReferenceCrossCheck(t *testing.T) {
	for _, name := range curves.PresetNames() {
		preset, _ := curves.Lookup(name)
		k, err := preset.NewScalar()
		if err != nil {
			t.Fatalf("NewScalar: %v", err)
		}
		want, err := preset.Reference.ScalarBaseMult(k)
		if err != nil {
			t.Fatalf("%s reference: %v", name, err)
		}
		got, err := preset.Curve.ScalarMultBinary(k, preset.Generator)
		if err != nil {
			t.Fatalf("%s ScalarMultBinary: %v", name, err)
		}
		if !got.Equal(want) {
			t.Errorf("%s: [k]G mismatch for k=%s: got %s want %s", name, k, got, want)
		}
	}
}

// TestSmallCurves sweeps every point of a handful of small curves, checking
// the identity where it is defined and the singular case where psi_2 = 0.
func TestSmallCurves(t *testing.T) {
	type params struct{ a, b, p int64 }
	for _, cp := range []params{{1, 1, 23}, {2, 3, 29}, {0, 7, 31}, {5, 1, 37}} {
		c, err := curves.NewShort(big.NewInt(cp.a), big.NewInt(cp.b), big.NewInt(cp.p))
		if err != nil {
			t.Fatalf("curve %+v: %v", cp, err)
		}
		if c.IsSingular() {
			continue
		}
		e := divpoly.New(c)
		v := verify.New(c)

		for x := int64(0); x < cp.p; x++ {
			for y := int64(0); y < cp.p; y++ {
				pt := c.PointFromInt64(x, y)
				if !c.IsOnCurve(pt) {
					continue
				}
				if y == 0 {
					if _, err := e.Psi(6, pt); !errors.Is(err, eds.ErrSingularInverse) {
						t.Errorf("%s: psi_6 at 2-torsion point %s: got %v", c, pt, err)
					}
					continue
				}
				for k := int64(2); k <= 5; k++ {
					report, err := v.Verify(pt, k, verify.Range{From: 1, To: 6})
					if err != nil {
						t.Fatalf("%s: Verify(%s, %d): %v", c, pt, k, err)
					}
					for _, row := range report.Rows {
						if row.Err == nil && !row.Matched {
							t.Errorf("%s: P=%s k=%d n=%d: %s != %s", c, pt, k, row.N, row.LHS, row.RHS)
						}
						if row.Err != nil && !errors.Is(row.Err, eds.ErrSingularInverse) && !errors.Is(row.Err, eds.ErrPointAtInfinity) {
							t.Errorf("%s: P=%s k=%d n=%d: unexpected error %v", c, pt, k, row.N, row.Err)
						}
					}
				}
			}
		}
	}
}
