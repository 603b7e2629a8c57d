package model

import (
	"github.com/chewxy/math32"

	"github.com/jucendrero/gotomo/corpus"
)

// computeVocabWeights fills the per-vocabulary weight table after the
// vocabulary is finalised. Under IDF the weight is the final per-token
// weight; under PMI it is the collection probability the per-token
// score is measured against.
func (m *LDA) computeVocabWeights() {
	v := m.vocabSize
	m.vw = make([]float32, v)

	switch m.cfg.TermWeight {
	case TermWeightIDF:
		d := float32(len(m.data.Docs))
		for id := uint32(0); id < v; id += 1 {
			m.vw[id] = math32.Log(d / float32(m.data.Vocab.DocFreq(id)))
		}
	case TermWeightPMI:
		var total float32
		for id := uint32(0); id < v; id += 1 {
			total += float32(m.data.Vocab.CollFreq(id))
		}
		for id := uint32(0); id < v; id += 1 {
			m.vw[id] = float32(m.data.Vocab.CollFreq(id)) / total
		}
	}
}

// assignTokenWeights fills doc.W. IDF weights are document independent;
// PMI weights compare a token's in-document frequency against its
// collection probability and are clamped at zero. Out-of-vocabulary
// slots keep weight zero so they contribute nothing anywhere.
func (m *LDA) assignTokenWeights(doc *corpus.Document) {
	switch m.cfg.TermWeight {
	case TermWeightIDF:
		for i, v := range doc.Words {
			if v >= m.vocabSize {
				continue
			}
			doc.W[i] = m.vw[v]
		}
	case TermWeightPMI:
		tf := make(map[uint32]float32, len(doc.Words))
		for _, v := range doc.Words {
			if v >= m.vocabSize {
				continue
			}
			tf[v] += 1
		}
		ld := float32(len(doc.Words))
		for i, v := range doc.Words {
			if v >= m.vocabSize {
				continue
			}
			doc.W[i] = math32.Max(math32.Log(tf[v]/(m.vw[v]*ld)), 0)
		}
	}
}
