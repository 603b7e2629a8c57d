package model

import (
	"fmt"
	"math"

	"github.com/jucendrero/gotomo/corpus"
	"github.com/jucendrero/gotomo/numeric"
	"github.com/jucendrero/gotomo/sstable"
)

// localState is one worker's view of the sampler: a shadow copy of the
// global tables, a K-sized scratch vector for the conditional, and a
// private RNG. Exactly one worker touches a localState during an
// epoch.
type localState struct {
	stats   *stats
	scratch []float32
	rng     *numeric.Rand

	// wtm is the bucketed sampler's sparse word-topic mirror of the
	// local nkv table; nil under the dense conditional.
	wtm *sstable.SortedMap
}

func (m *LDA) newLocalState(global *stats, rng *numeric.Rand) *localState {
	st := &localState{
		stats:   global.clone(),
		scratch: make([]float32, m.topicNum),
		rng:     rng,
	}
	m.cond.refresh(st)
	return st
}

// conditional is the override point of the sampler. The default dense
// implementation walks all K topics; variants may specialise the
// computation and maintain caches through update/refresh, but must
// produce a cumulative array whose differences are proportional to the
// same conditional distribution.
type conditional interface {
	// zLikelihoods returns the unnormalised cumulative conditional of
	// word v in doc, written into st.scratch.
	zLikelihoods(st *localState, doc *corpus.Document, v uint32) []float32
	// update is invoked after every count-table change with the signed
	// weight that was applied, so variants can keep caches in sync.
	update(st *localState, v, k uint32, w float32)
	// refresh rebuilds caches after st's tables were overwritten
	// wholesale, e.g. at a merge boundary.
	refresh(st *localState)
}

// denseConditional computes p[k] = (ndk[k]+alpha[k]) * (nkv[k,v]+eta) /
// (nk[k]+V*eta) for every topic. The shared denominator is kept even
// though it cancels under normalisation; K is small enough that the K
// divisions are negligible and variants rely on the full form.
type denseConditional struct {
	m *LDA
}

func (c *denseConditional) zLikelihoods(st *localState, doc *corpus.Document, v uint32) []float32 {
	m := c.m
	veta := float32(float64(m.vocabSize) * m.eta)
	eta := float32(m.eta)

	p := st.scratch
	for k := uint32(0); k < m.topicNum; k += 1 {
		docPart := float32(doc.NDK[k] + m.alpha[k])
		wordPart := (st.stats.nkv.get(k, v) + eta) /
			(st.stats.nk.get(k, 0) + veta)
		p[k] = docPart * wordPart
	}
	numeric.PrefixSumFloat32(p)
	return p
}

func (c *denseConditional) update(st *localState, v, k uint32, w float32) {}

func (c *denseConditional) refresh(st *localState) {}

// addToken applies a signed weight to all three count tables and
// notifies the conditional. w < 0 is the decrement path.
func (m *LDA) addToken(st *localState, doc *corpus.Document, v, k uint32, w float32) {
	doc.NDK[k] += float64(w)
	st.stats.nk.add(k, 0, w)
	st.stats.nkv.add(k, v, w)
	m.cond.update(st, v, k, w)
}

// sampleDocument runs one collapsed Gibbs pass over doc against st:
// for each in-vocabulary token, remove its current assignment, draw a
// fresh topic from the conditional, and add it back.
func (m *LDA) sampleDocument(doc *corpus.Document, st *localState) error {
	for i, v := range doc.Words {
		if v >= m.vocabSize {
			continue
		}
		w := doc.Weight(i)
		m.addToken(st, doc, v, doc.Z[i], -w)

		cdf := m.cond.zLikelihoods(st, doc, v)
		total := cdf[len(cdf)-1]
		if total <= 0 || math.IsNaN(float64(total)) || math.IsInf(float64(total), 0) {
			return fmt.Errorf("%w: degenerate conditional for word %d (mass %g)",
				ErrTraining, v, total)
		}
		doc.Z[i] = uint32(numeric.SampleFromCumulative(cdf, st.rng.Float32()))

		m.addToken(st, doc, v, doc.Z[i], w)
	}
	return nil
}
