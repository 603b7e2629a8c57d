package model

import (
	"math"

	"github.com/jucendrero/gotomo/corpus"
	"github.com/jucendrero/gotomo/numeric"
)

// optimSubIters is the number of fixed-point refinements per optimiser
// call.
const optimSubIters = 10

// optimizeAlpha reshapes the per-topic concentration vector with
// Minka's fixed-point update,
//
//	alpha[k] <- alpha[k] * sum_d[psi(ndk+alpha[k]) - psi(alpha[k])] /
//	                       sum_d[psi(|doc|+S) - psi(S)]
//
// floored at alphaFloor. Eta is never optimised.
func (m *LDA) optimizeAlpha(docs []*corpus.Document) {
	for sub := 0; sub < optimSubIters; sub += 1 {
		salpha := 0.0
		for _, a := range m.alpha {
			salpha += a
		}

		denom := 0.0
		for _, doc := range docs {
			denom += numeric.Digamma(docWeight(doc) + salpha) - numeric.Digamma(salpha)
		}
		if denom == 0 {
			return
		}

		for k := range m.alpha {
			numer := 0.0
			for _, doc := range docs {
				numer += numeric.Digamma(doc.NDK[k] + m.alpha[k]) - numeric.Digamma(m.alpha[k])
			}
			m.alpha[k] = math.Max(m.alpha[k]*numer/denom, alphaFloor)
		}
	}
}
