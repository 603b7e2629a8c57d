package model

import (
	"math"

	"github.com/jucendrero/gotomo/corpus"
	"github.com/jucendrero/gotomo/numeric"
)

// llDoc is the document part of the collapsed log-likelihood: the
// Dirichlet-multinomial evidence of doc's topic counts under the
// current alpha.
func (m *LDA) llDoc(doc *corpus.Document) float64 {
	salpha := 0.0
	for _, a := range m.alpha {
		salpha += a
	}

	sum := 0.0
	for k := uint32(0); k < m.topicNum; k += 1 {
		sum += numeric.Lgamma(doc.NDK[k] + m.alpha[k]) - numeric.Lgamma(m.alpha[k])
	}
	sum -= numeric.Lgamma(docWeight(doc) + salpha) - numeric.Lgamma(salpha)
	return sum
}

func (m *LDA) llDocs(docs []*corpus.Document) float64 {
	sum := 0.0
	for _, doc := range docs {
		sum += m.llDoc(doc)
	}
	return sum
}

// llRest is the topic-word part of the collapsed log-likelihood over
// the given tables. Zero counts are skipped in the inner sum; they
// contribute lgamma(eta)-lgamma(eta) = 0.
func (m *LDA) llRest(st *stats) float64 {
	veta := float64(m.vocabSize) * m.eta
	lgEta := numeric.Lgamma(m.eta)

	sum := float64(m.topicNum) * numeric.Lgamma(veta)
	for k := uint32(0); k < m.topicNum; k += 1 {
		sum -= numeric.Lgamma(float64(st.nk.get(k, 0)) + veta)
		for v := uint32(0); v < m.vocabSize; v += 1 {
			if c := st.nkv.get(k, v); c > 0 {
				sum += numeric.Lgamma(float64(c) + m.eta) - lgEta
			}
		}
	}
	return sum
}

// LogLikelihood returns the collapsed log-likelihood of the current
// global state, the sum of a per-document term and a topic-word term.
// NaN is returned before Prepare.
func (m *LDA) LogLikelihood() float64 {
	if !m.prepared {
		return math.NaN()
	}
	return m.llDocs(m.data.Docs) + m.llRest(m.global)
}
