package model

import (
	"fmt"

	"github.com/jucendrero/gotomo/corpus"
	"github.com/jucendrero/gotomo/numeric"
	"github.com/jucendrero/gotomo/sstable"
)

func init() {
	Register("sparselda", func(dat *corpus.Corpus, cfg Config) (Model, error) {
		return NewSparseLDA(dat, cfg)
	})
}

// SparseLDA is the bucketed variant of the sampler. It draws from the
// same conditional as LDA but splits it into a smoothing-plus-document
// part, computed for every topic, and a word part that only touches
// topics where nkv[k,v] is nonzero, tracked in a sorted sparse map per
// word. Everything outside the conditional, the schedule,
// merge, optimiser and likelihood included, is inherited unchanged.
type SparseLDA struct {
	*LDA
}

// NewSparseLDA creates a bucketed sampler. The bucket decomposition
// relies on integer counts, so only uniform term weighting is
// accepted.
func NewSparseLDA(dat *corpus.Corpus, cfg Config) (*SparseLDA, error) {
	if cfg.TermWeight != TermWeightUniform {
		return nil, fmt.Errorf("%w: bucketed sampler requires uniform term weighting",
			ErrBadConfig)
	}
	base, err := NewLDA(dat, cfg)
	if err != nil {
		return nil, err
	}
	base.cond = &bucketConditional{m: base}
	return &SparseLDA{LDA: base}, nil
}

// bucketConditional decomposes the dense conditional
//
//	p[k] = (ndk[k]+alpha[k]) * (nkv[k,v]+eta) / (nk[k]+V*eta)
//	     = (ndk[k]+alpha[k]) * eta / (nk[k]+V*eta)        smoothing+doc
//	     + (ndk[k]+alpha[k]) * nkv[k,v] / (nk[k]+V*eta)   word
//
// and accumulates the word part only over the nonzero entries of the
// sparse word-topic map, largest counts first.
type bucketConditional struct {
	m *LDA
}

func (c *bucketConditional) zLikelihoods(st *localState, doc *corpus.Document, v uint32) []float32 {
	m := c.m
	veta := float32(float64(m.vocabSize) * m.eta)
	eta := float32(m.eta)

	p := st.scratch
	for k := uint32(0); k < m.topicNum; k += 1 {
		p[k] = float32(doc.NDK[k] + m.alpha[k]) * eta /
			(st.stats.nk.get(k, 0) + veta)
	}
	for i := 0; i < st.wtm.Len(v); i += 1 {
		tid, count := st.wtm.Get(v, i)
		p[tid] += float32(doc.NDK[tid] + m.alpha[tid]) * float32(count) /
			(st.stats.nk.get(tid, 0) + veta)
	}
	numeric.PrefixSumFloat32(p)
	return p
}

func (c *bucketConditional) update(st *localState, v, k uint32, w float32) {
	if w >= 0 {
		st.wtm.Incr(v, k, uint32(w))
	} else {
		st.wtm.Decr(v, k, uint32(-w))
	}
}

func (c *bucketConditional) refresh(st *localState) {
	if st.wtm == nil {
		st.wtm = sstable.NewSortedMap(c.m.topicNum)
	}
	st.wtm.FillFrom(st.stats.uintNKV())
}
