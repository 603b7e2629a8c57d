package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSparseLDARejectsWeightedModes(t *testing.T) {
	c := buildCorpus(t, tinyDocs())

	_, err := NewSparseLDA(c, Config{
		TopicNum: 2, Alpha: 0.1, Eta: 0.01, TermWeight: TermWeightIDF,
	})
	assert.ErrorIs(t, err, ErrBadConfig)
}

func TestBucketConditionalMatchesDense(t *testing.T) {
	// two models over the same corpus and seed; after Prepare their
	// tables are identical, so the two conditionals must produce the
	// same cumulative array for every token
	dense, err := NewLDA(buildCorpus(t, blockDocs(10, 12, 6)), Config{
		TopicNum: 3, Alpha: 0.2, Eta: 0.05, Seed: 6,
	})
	require.NoError(t, err)
	require.NoError(t, dense.Prepare(0, 0))

	sparse, err := NewSparseLDA(buildCorpus(t, blockDocs(10, 12, 6)), Config{
		TopicNum: 3, Alpha: 0.2, Eta: 0.05, Seed: 6,
	})
	require.NoError(t, err)
	require.NoError(t, sparse.Prepare(0, 0))

	dst := dense.newLocalState(dense.global, dense.rng.Fork())
	sst := sparse.newLocalState(sparse.global, sparse.rng.Fork())

	for d, doc := range dense.data.Docs {
		sdoc := sparse.data.Docs[d]
		for i, v := range doc.Words {
			if v >= dense.vocabSize {
				continue
			}
			dp := dense.cond.zLikelihoods(dst, doc, v)
			sp := sparse.cond.zLikelihoods(sst, sdoc, v)
			for k := range dp {
				assert.InDelta(t, float64(dp[k]), float64(sp[k]), 1e-4,
					"doc %d token %d topic %d", d, i, k)
			}
		}
	}
}

func TestSparseLDATrainsWithInvariants(t *testing.T) {
	m, err := NewSparseLDA(buildCorpus(t, blockDocs(20, 15, 8)), Config{
		TopicNum: 2, Alpha: 0.5, Eta: 0.1, Seed: 8, Workers: 2,
	})
	require.NoError(t, err)
	require.NoError(t, m.Prepare(0, 0))
	require.NoError(t, m.Train(100))

	checkInvariants(t, m.LDA, 1e-6)
}

func TestSparseMirrorTracksTable(t *testing.T) {
	m, err := NewSparseLDA(buildCorpus(t, tinyDocs()), Config{
		TopicNum: 2, Alpha: 0.1, Eta: 0.01, Seed: 2,
	})
	require.NoError(t, err)
	require.NoError(t, m.Prepare(0, 0))

	st := m.newLocalState(m.global, m.rng.Fork())
	require.NoError(t, m.sampleDocument(m.data.Docs[0], st))

	// every nonzero table entry appears in the mirror with the same
	// count, and vice versa
	for k := uint32(0); k < m.topicNum; k += 1 {
		for v := uint32(0); v < m.vocabSize; v += 1 {
			want := uint32(st.stats.nkv.get(k, v))
			assert.Equal(t, want, st.wtm.Count(v, k), "topic %d word %d", k, v)
		}
	}
}
