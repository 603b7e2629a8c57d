package sstable

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat32MatrixShape(t *testing.T) {
	m := NewFloat32Matrix(uint32(2), uint32(3))

	r, c := m.Shape()

	assert.Equal(t, uint32(2), r)
	assert.Equal(t, uint32(3), c)
}

func TestFloat32MatrixGet(t *testing.T) {
	m := NewFloat32Matrix(uint32(2), uint32(3))

	val := float32(0.0)
	for r := 0; r < 2; r += 1 {
		for c := 0; c < 3; c += 1 {
			m.Set(uint32(r), uint32(c), val)
			val += float32(1.0)
		}
	}

	assert.Equal(t, float32(0), m.Get(0, 0))
	assert.Equal(t, float32(1), m.Get(0, 1))
	assert.Equal(t, float32(2), m.Get(0, 2))
	assert.Equal(t, float32(3), m.Get(1, 0))
	assert.Equal(t, float32(4), m.Get(1, 1))
	assert.Equal(t, float32(5), m.Get(1, 2))
}

func TestFloat32MatrixClampZero(t *testing.T) {
	m := NewFloat32Matrix(uint32(1), uint32(3))
	m.Set(0, 0, -0.25)
	m.Set(0, 1, 1.5)

	m.ClampZero()

	assert.Equal(t, float32(0), m.Get(0, 0))
	assert.Equal(t, float32(1.5), m.Get(0, 1))
	assert.Equal(t, float32(0), m.Get(0, 2))
}

func TestFloat32MatrixAddDelta(t *testing.T) {
	global := NewFloat32Matrix(uint32(1), uint32(2))
	global.Set(0, 0, 4)

	snapshot := global.Clone()
	local := global.Clone()
	local.Decr(0, 0, 1.5)
	local.Incr(0, 1, 1.5)

	require.NoError(t, global.AddDelta(local, snapshot))
	assert.InDelta(t, 2.5, float64(global.Get(0, 0)), 1e-6)
	assert.InDelta(t, 1.5, float64(global.Get(0, 1)), 1e-6)
}

func TestFloat32SerializeRoundTrip(t *testing.T) {
	m := NewFloat32Matrix(uint32(2), uint32(2))
	m.Set(0, 1, 0.5)
	m.Set(1, 0, 2.25)

	fn := filepath.Join(t.TempDir(), "weights")
	require.NoError(t, Float32Serialize(m, fn))

	got, err := Float32Deserialize(fn)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, float64(got.Get(0, 1)), 1e-6)
	assert.InDelta(t, 2.25, float64(got.Get(1, 0)), 1e-6)
	assert.Equal(t, float32(0), got.Get(0, 0))
}
