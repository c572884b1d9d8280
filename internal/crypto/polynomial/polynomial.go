package polynomial

import (
	"strconv"
	"strings"

	"github.com/smallyu/go-eds-dlp/internal/crypto/field"
)

// Polynomial represents a polynomial f(x) = a_0 + a_1*x + ... + a_t*x^t
// over the prime field F_p.
type Polynomial struct {
	Coefficients []field.Element
	Field        *field.Field
}

// New builds a polynomial from coefficients in ascending order of degree.
// Trailing zero coefficients are kept; Degree ignores them.
func New(f *field.Field, coeffs ...field.Element) *Polynomial {
	cs := make([]field.Element, len(coeffs))
	copy(cs, coeffs)
	return &Polynomial{
		Coefficients: cs,
		Field:        f,
	}
}

// Degree returns the index of the highest non-zero coefficient, or -1 for the
// zero polynomial.
func (p *Polynomial) Degree() int {
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		if !p.Coefficients[i].IsZero() {
			return i
		}
	}
	return -1
}

// Evaluate calculates f(x) mod p
func (p *Polynomial) Evaluate(x field.Element) field.Element {
	// Horner's method
	// result = a_t
	// for i = t-1 down to 0:
	//   result = result * x + a_i
	if len(p.Coefficients) == 0 {
		return p.Field.Zero()
	}

	degree := len(p.Coefficients) - 1
	result := p.Coefficients[degree]

	for i := degree - 1; i >= 0; i-- {
		result = p.Field.Add(p.Field.Mul(result, x), p.Coefficients[i])
	}

	return result
}

// EvaluateMulti calculates f(x) for multiple x values
func (p *Polynomial) EvaluateMulti(xs []field.Element) []field.Element {
	results := make([]field.Element, len(xs))
	for i, x := range xs {
		results[i] = p.Evaluate(x)
	}
	return results
}

func (p *Polynomial) String() string {
	var terms []string
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		c := p.Coefficients[i]
		if c.IsZero() {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, c.String())
		case 1:
			terms = append(terms, c.String()+"x")
		default:
			terms = append(terms, c.String()+"x^"+strconv.Itoa(i))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

