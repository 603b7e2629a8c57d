package model

import (
	"github.com/jucendrero/gotomo/corpus"
	"github.com/jucendrero/gotomo/numeric"
	"github.com/jucendrero/gotomo/pool"
)

// prepHeldOut allocates a held-out document's mutable state, weights
// its tokens and gives every in-vocabulary token a random initial
// topic, applying the increments against st rather than the trained
// global tables.
func (m *LDA) prepHeldOut(doc *corpus.Document, st *stats, rng *numeric.Rand) {
	doc.Alloc(m.topicNum, m.weighted())
	if m.weighted() {
		m.assignTokenWeights(doc)
	}
	m.initAssignments(doc, st, rng)
}

// InferTogether co-samples the held-out documents for maxIter epochs
// against a shared scratch copy of the trained state, using the same
// striped schedule and merge as training. The trained tables are never
// written. The result is the joint score
//
//	LL_docs(docs) + [LLRest(scratch) - LLRest(trained)].
//
// tolerance is accepted for interface stability but unused; inference
// always runs the full maxIter epochs.
func (m *LDA) InferTogether(docs []*corpus.Document, maxIter int, tolerance float64) (float64, error) {
	_ = tolerance
	if !m.prepared {
		return 0, ErrNotPrepared
	}

	tmp := m.global.clone()
	for _, doc := range docs {
		m.prepHeldOut(doc, tmp, m.rng)
	}

	p := pool.New(m.cfg.Workers)
	defer p.Close()

	locals := make([]*localState, p.NumWorkers())
	for i := range locals {
		locals[i] = m.newLocalState(tmp, m.rng.Fork())
	}

	for it := 0; it < maxIter; it += 1 {
		if err := m.runEpoch(p, tmp, locals, docs); err != nil {
			return 0, err
		}
		m.mergeInto(tmp, locals)
	}

	return m.llDocs(docs) + m.llRest(tmp) - m.llRest(m.global), nil
}

// InferSeparate scores each held-out document independently: a private
// copy of the trained state per document, maxIter sequential passes,
// one log-likelihood per document.
func (m *LDA) InferSeparate(docs []*corpus.Document, maxIter int, tolerance float64) ([]float64, error) {
	_ = tolerance
	if !m.prepared {
		return nil, ErrNotPrepared
	}

	baseRest := m.llRest(m.global)
	results := make([]float64, len(docs))
	for i, doc := range docs {
		tmp := m.global.clone()
		rng := m.rng.Fork()
		m.prepHeldOut(doc, tmp, rng)

		st := &localState{
			stats:   tmp,
			scratch: make([]float32, m.topicNum),
			rng:     rng,
		}
		m.cond.refresh(st)

		for it := 0; it < maxIter; it += 1 {
			if err := m.sampleDocument(doc, st); err != nil {
				return nil, err
			}
		}
		results[i] = m.llDoc(doc) + m.llRest(tmp) - baseRest
	}
	return results, nil
}
