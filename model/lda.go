package model

import (
	"fmt"

	"github.com/jucendrero/gotomo/corpus"
	"github.com/jucendrero/gotomo/numeric"
	"github.com/jucendrero/gotomo/sstable"
)

func init() {
	Register("lda", func(dat *corpus.Corpus, cfg Config) (Model, error) {
		return NewLDA(dat, cfg)
	})
}

// LDA is the collapsed Gibbs sampler for latent Dirichlet allocation.
// It owns the corpus, the global sufficient statistics and the
// per-topic concentration vector; thread-local shadows of the tables
// exist only for the duration of a training or inference pass.
type LDA struct {
	data *corpus.Corpus
	cfg  Config

	topicNum uint32
	alpha    []float64 // per-topic Dirichlet concentration, length K
	eta      float64   // topic-word concentration, scalar

	vocabSize uint32
	vw        []float32 // per-vocabulary term weights; nil when uniform
	global    *stats
	rng       *numeric.Rand

	prepared   bool
	epochsDone int

	cond conditional
}

// NewLDA validates cfg and creates an unprepared model over dat.
// Documents may still be added to dat until Prepare is called.
func NewLDA(dat *corpus.Corpus, cfg Config) (*LDA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &LDA{
		data:     dat,
		cfg:      cfg,
		topicNum: cfg.TopicNum,
		eta:      cfg.Eta,
		rng:      numeric.NewRand(cfg.Seed),
	}
	m.cond = &denseConditional{m: m}
	return m, nil
}

func (m *LDA) weighted() bool {
	return m.cfg.TermWeight != TermWeightUniform
}

// Prepare finalises the vocabulary, allocates the count tables,
// computes term weights and assigns every in-vocabulary token a
// uniformly random initial topic. The corpus is frozen afterwards.
func (m *LDA) Prepare(minCount uint32, removeTopN int) error {
	if m.prepared {
		return corpus.ErrAlreadyPrepared
	}
	if err := m.data.Vocab.Prepare(minCount, removeTopN); err != nil {
		return err
	}
	v := m.data.Vocab.Size()
	if v == 0 {
		return fmt.Errorf("%w: vocabulary empty after pruning", ErrBadConfig)
	}
	m.vocabSize = v

	m.alpha = make([]float64, m.topicNum)
	for k := range m.alpha {
		m.alpha[k] = m.cfg.Alpha
	}
	m.global = newStats(m.topicNum, v, m.weighted())
	if m.weighted() {
		m.computeVocabWeights()
	}

	for _, doc := range m.data.Docs {
		doc.Finalize(m.data.Vocab, m.topicNum, m.weighted())
		if m.weighted() {
			m.assignTokenWeights(doc)
		}
		m.initAssignments(doc, m.global, m.rng)
	}

	m.prepared = true
	return nil
}

// initAssignments draws a uniform topic for every in-vocabulary token
// and applies the increment path against st.
func (m *LDA) initAssignments(doc *corpus.Document, st *stats, rng *numeric.Rand) {
	for i, v := range doc.Words {
		if v >= m.vocabSize {
			continue
		}
		k := uint32(rng.IntN(int(m.topicNum)))
		doc.Z[i] = k
		w := doc.Weight(i)
		doc.NDK[k] += float64(w)
		st.nk.add(k, 0, w)
		st.nkv.add(k, v, w)
	}
}

// docWeight is the document's total weight mass: its in-vocabulary
// token count under uniform weighting, the sum of token weights
// otherwise. It replaces document length in the likelihood and
// optimiser formulas.
func docWeight(doc *corpus.Document) float64 {
	var sum float64
	for _, w := range doc.NDK {
		sum += w
	}
	return sum
}

// CountByTopic returns the number of tokens assigned to each topic,
// from the raw assignments and ignoring term weighting.
func (m *LDA) CountByTopic() []uint32 {
	cnt := make([]uint32, m.topicNum)
	for _, doc := range m.data.Docs {
		for i, v := range doc.Words {
			if v >= m.vocabSize {
				continue
			}
			cnt[doc.Z[i]] += 1
		}
	}
	return cnt
}

// TopicsByDoc returns the posterior topic mixture of doc,
// (ndk[k] + alpha[k]) / (|doc| + sum(alpha)).
func (m *LDA) TopicsByDoc(doc *corpus.Document) []float64 {
	salpha := 0.0
	for _, a := range m.alpha {
		salpha += a
	}
	denom := docWeight(doc) + salpha

	theta := make([]float64, m.topicNum)
	for k := range theta {
		theta[k] = (doc.NDK[k] + m.alpha[k]) / denom
	}
	return theta
}

// WordsByTopic returns the posterior word distribution of topic k,
// (nkv[k,v] + eta) / (nk[k] + V*eta).
func (m *LDA) WordsByTopic(k uint32) ([]float64, error) {
	if k >= m.topicNum {
		return nil, fmt.Errorf("%w: %d >= %d", ErrTopicOutOfRange, k, m.topicNum)
	}
	if !m.prepared {
		return nil, ErrNotPrepared
	}
	denom := float64(m.global.nk.get(k, 0)) + float64(m.vocabSize)*m.eta
	phi := make([]float64, m.vocabSize)
	for v := uint32(0); v < m.vocabSize; v += 1 {
		phi[v] = (float64(m.global.nkv.get(k, v)) + m.eta) / denom
	}
	return phi, nil
}

// Phi returns the full topic-word posterior as a K-by-V matrix.
func (m *LDA) Phi() *sstable.Float32Matrix {
	phi := sstable.NewFloat32Matrix(m.topicNum, m.vocabSize)
	for k := uint32(0); k < m.topicNum; k += 1 {
		row, _ := m.WordsByTopic(k)
		for v := uint32(0); v < m.vocabSize; v += 1 {
			phi.Set(k, v, float32(row[v]))
		}
	}
	return phi
}

// Theta returns the full document-topic posterior as a D-by-K matrix.
func (m *LDA) Theta() *sstable.Float32Matrix {
	theta := sstable.NewFloat32Matrix(uint32(len(m.data.Docs)), m.topicNum)
	for d, doc := range m.data.Docs {
		row := m.TopicsByDoc(doc)
		for k := uint32(0); k < m.topicNum; k += 1 {
			theta.Set(uint32(d), k, float32(row[k]))
		}
	}
	return theta
}

// Alpha returns a copy of the per-topic concentration vector.
func (m *LDA) Alpha() []float64 {
	out := make([]float64, len(m.alpha))
	copy(out, m.alpha)
	return out
}

// Data returns the corpus the model was built over.
func (m *LDA) Data() *corpus.Corpus {
	return m.data
}
