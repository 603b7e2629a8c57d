package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeAlphaFollowsSkewedCounts(t *testing.T) {
	m, err := NewLDA(buildCorpus(t, blockDocs(10, 20, 1)), Config{
		TopicNum: 2, Alpha: 0.5, Eta: 0.1, Seed: 1,
	})
	require.NoError(t, err)
	require.NoError(t, m.Prepare(0, 0))

	// force every document's mass onto topic 0
	for _, doc := range m.data.Docs {
		total := doc.NDK[0] + doc.NDK[1]
		doc.NDK[0] = total
		doc.NDK[1] = 0
	}

	m.optimizeAlpha(m.data.Docs)

	assert.Greater(t, m.alpha[0], m.alpha[1])
	for _, a := range m.alpha {
		assert.GreaterOrEqual(t, a, alphaFloor)
		assert.False(t, math.IsNaN(a))
		assert.False(t, math.IsInf(a, 0))
	}
}

func TestOptimizerRunsOnSchedule(t *testing.T) {
	m, err := NewLDA(buildCorpus(t, blockDocs(20, 15, 4)), Config{
		TopicNum: 2, Alpha: 0.5, Eta: 0.1, Seed: 4, Workers: 1,
		OptimInterval: 5, BurnIn: 10,
	})
	require.NoError(t, err)
	require.NoError(t, m.Prepare(0, 0))

	// during burn-in alpha stays at its initial symmetric value
	require.NoError(t, m.Train(10))
	assert.Equal(t, []float64{0.5, 0.5}, m.Alpha())

	// after burn-in the optimiser reshapes it
	require.NoError(t, m.Train(20))
	alpha := m.Alpha()
	assert.NotEqual(t, []float64{0.5, 0.5}, alpha)
	for _, a := range alpha {
		assert.GreaterOrEqual(t, a, alphaFloor)
		assert.False(t, math.IsNaN(a))
	}
}
