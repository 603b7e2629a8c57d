// Package numeric supplies the pure numerical helpers the sampler core is
// written against: the digamma and log-gamma functions, prefix summation,
// and discrete sampling from a cumulative array. None of these carry any
// topic-model semantics.
package numeric

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// Digamma returns ψ(x), the logarithmic derivative of the gamma function.
// Used by the hyperparameter optimiser's Minka fixed-point updates.
func Digamma(x float64) float64 {
	return mathext.Digamma(x)
}

// Lgamma returns ln(|Γ(x)|), used throughout the collapsed log-likelihood.
func Lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
