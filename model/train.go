package model

import (
	log "github.com/golang/glog"

	"github.com/jucendrero/gotomo/corpus"
	"github.com/jucendrero/gotomo/pool"
)

// Train runs iter epochs of striped parallel Gibbs sampling over the
// corpus, merging the worker tables at every epoch boundary and
// running the alpha optimiser on its configured schedule.
func (m *LDA) Train(iter int) error {
	if !m.prepared {
		return ErrNotPrepared
	}

	p := pool.New(m.cfg.Workers)
	defer p.Close()

	locals := make([]*localState, p.NumWorkers())
	for i := range locals {
		locals[i] = m.newLocalState(m.global, m.rng.Fork())
	}

	for it := 0; it < iter; it += 1 {
		if m.cfg.LogEvery > 0 && m.epochsDone%m.cfg.LogEvery == 0 {
			log.Infof("epoch %5d, log-likelihood %f", m.epochsDone, m.LogLikelihood())
		}

		if err := m.runEpoch(p, m.global, locals, m.data.Docs); err != nil {
			log.Errorf("epoch %d aborted: %v", m.epochsDone, err)
			return err
		}
		m.mergeInto(m.global, locals)
		m.epochsDone += 1

		if m.cfg.OptimInterval > 0 && m.epochsDone > m.cfg.BurnIn &&
			m.epochsDone%m.cfg.OptimInterval == 0 {
			m.optimizeAlpha(m.data.Docs)
		}
	}
	return nil
}

// runEpoch samples every document exactly once. The document index
// space is cut into min(8*W, D) interleaved stripes; stripe s holds
// documents s, s+chunks, s+2*chunks, ... so write-sets stay balanced
// and largely disjoint across workers. Each stripe is one pool task
// and visits its documents in an order drawn from the executing
// worker's RNG.
//
// On any worker error every in-flight future is drained first, then
// the local tables are reset to global so no partial epoch leaks into
// the next merge.
func (m *LDA) runEpoch(p *pool.Pool, global *stats, locals []*localState, docs []*corpus.Document) error {
	d := len(docs)
	if d == 0 {
		return nil
	}
	chunks := min(8*p.NumWorkers(), d)

	futures := make([]pool.Future, 0, chunks)
	for s := 0; s < chunks; s += 1 {
		stripe := s
		futures = append(futures, p.Submit(func(workerID int) error {
			st := locals[workerID]

			idx := make([]int, 0, (d-stripe+chunks-1)/chunks)
			for i := stripe; i < d; i += chunks {
				idx = append(idx, i)
			}
			st.rng.Shuffle(len(idx), func(a, b int) {
				idx[a], idx[b] = idx[b], idx[a]
			})

			for _, i := range idx {
				if err := m.sampleDocument(docs[i], st); err != nil {
					return err
				}
			}
			return nil
		}))
	}

	var firstErr error
	for _, f := range futures {
		if err := f.Wait(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		for _, st := range locals {
			_ = st.stats.copyFrom(global)
			m.cond.refresh(st)
		}
		return firstErr
	}
	return nil
}

// mergeInto reconciles the worker tables into global: each worker
// contributes its delta against the pre-epoch snapshot, so disjoint
// updates combine exactly and overlapping ones approximately. Weighted
// counts are clamped at zero afterwards to absorb floating-point
// drift. The merged state is copied back into every local.
func (m *LDA) mergeInto(global *stats, locals []*localState) {
	snapshot := global.clone()
	_ = global.copyFrom(locals[0].stats)
	for i := 1; i < len(locals); i += 1 {
		_ = global.mergeDelta(locals[i].stats, snapshot)
	}
	if m.weighted() {
		global.clampZero()
	}
	for _, st := range locals {
		_ = st.stats.copyFrom(global)
		m.cond.refresh(st)
	}
}
