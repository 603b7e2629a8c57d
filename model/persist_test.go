package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jucendrero/gotomo/corpus"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m, err := NewLDA(buildCorpus(t, blockDocs(10, 12, 13)), Config{
		TopicNum: 2, Alpha: 0.3, Eta: 0.05, Seed: 13, Workers: 1,
		OptimInterval: 5, BurnIn: 5,
	})
	require.NoError(t, err)
	require.NoError(t, m.Prepare(0, 0))
	require.NoError(t, m.Train(30))

	prefix := filepath.Join(t.TempDir(), "trained")
	require.NoError(t, m.Save(prefix))

	loaded, err := NewLDA(corpus.NewCorpus(), Config{TopicNum: 1, Alpha: 0.1, Eta: 0.01})
	require.NoError(t, err)
	require.NoError(t, loaded.Load(prefix))

	assert.Equal(t, m.topicNum, loaded.topicNum)
	assert.Equal(t, m.eta, loaded.eta)
	assert.Equal(t, m.Alpha(), loaded.Alpha())
	assert.Equal(t, m.vocabSize, loaded.vocabSize)
	assert.Equal(t, m.epochsDone, loaded.epochsDone)

	// tables round-trip exactly under uniform weighting
	for k := uint32(0); k < m.topicNum; k += 1 {
		assert.Equal(t, m.global.nk.get(k, 0), loaded.global.nk.get(k, 0))
		for v := uint32(0); v < m.vocabSize; v += 1 {
			assert.Equal(t, m.global.nkv.get(k, v), loaded.global.nkv.get(k, v))
		}
	}

	// assignments and recomputed per-document counts round-trip
	require.Len(t, loaded.data.Docs, len(m.data.Docs))
	for d, doc := range m.data.Docs {
		assert.Equal(t, doc.Words, loaded.data.Docs[d].Words)
		assert.Equal(t, doc.Z, loaded.data.Docs[d].Z)
		assert.Equal(t, doc.NDK, loaded.data.Docs[d].NDK)
	}

	assert.InDelta(t, m.LogLikelihood(), loaded.LogLikelihood(), 1e-9)
	checkInvariants(t, loaded, 1e-9)

	// a loaded model keeps training and serving queries
	require.NoError(t, loaded.Train(5))
	_, err = loaded.WordsByTopic(0)
	require.NoError(t, err)
}

func TestSaveLoadRoundTripWeighted(t *testing.T) {
	m, err := NewLDA(buildCorpus(t, blockDocs(10, 12, 14)), Config{
		TopicNum: 2, Alpha: 0.3, Eta: 0.05, Seed: 14, Workers: 1,
		TermWeight: TermWeightIDF,
	})
	require.NoError(t, err)
	require.NoError(t, m.Prepare(0, 0))
	require.NoError(t, m.Train(20))

	prefix := filepath.Join(t.TempDir(), "weighted")
	require.NoError(t, m.Save(prefix))

	loaded, err := NewLDA(corpus.NewCorpus(), Config{
		TopicNum: 1, Alpha: 0.1, Eta: 0.01, TermWeight: TermWeightIDF,
	})
	require.NoError(t, err)
	require.NoError(t, loaded.Load(prefix))

	assert.Equal(t, TermWeightIDF, loaded.cfg.TermWeight)
	for d, doc := range m.data.Docs {
		assert.Equal(t, doc.Words, loaded.data.Docs[d].Words)
		assert.Equal(t, doc.Z, loaded.data.Docs[d].Z)
		for i := range doc.W {
			assert.InDelta(t, float64(doc.W[i]), float64(loaded.data.Docs[d].W[i]), 1e-6)
		}
	}
	for k := uint32(0); k < m.topicNum; k += 1 {
		assert.InDelta(t, float64(m.global.nk.get(k, 0)),
			float64(loaded.global.nk.get(k, 0)), 1e-3)
	}
}

func TestSaveBeforePrepareFails(t *testing.T) {
	m, err := NewLDA(buildCorpus(t, tinyDocs()), Config{TopicNum: 2, Alpha: 0.1, Eta: 0.01})
	require.NoError(t, err)
	assert.ErrorIs(t, m.Save(filepath.Join(t.TempDir(), "x")), ErrNotPrepared)
}

func TestSavePhiTheta(t *testing.T) {
	m, err := NewLDA(buildCorpus(t, tinyDocs()), Config{
		TopicNum: 2, Alpha: 0.1, Eta: 0.01, Seed: 1, Workers: 1,
	})
	require.NoError(t, err)
	require.NoError(t, m.Prepare(0, 0))
	require.NoError(t, m.Train(10))

	prefix := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, m.SavePhi(prefix))
	require.NoError(t, m.SaveTheta(prefix))
}
