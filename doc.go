// Package edsdlp evaluates elliptic curve division polynomials at points over
// a prime field and checks the elliptic divisibility sequence identity
//
//	psi_{nk}(P) = psi_n([k]P) * psi_k(P)^(n^2)  (mod p)
//
// that relates the sequence of P to the sequence of its multiple [k]P.
//
// Curves are given either in general Weierstrass form
//
//	y^2 + a1xy + a3y = x^3 + a2x^2 + a4x + a6
//
// or in short form y^2 = x^3 + Ax + B; both share one representation.
//
// Evaluation failures are reported with the kinds in pkg/eds, e.g.
// eds.ErrSingularInverse when an even index is requested at a point with
// psi_2 = 0.
package edsdlp
