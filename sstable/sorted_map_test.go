package sstable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedMapPackingAndOrder(t *testing.T) {
	m := NewSortedMap(uint32(10))

	// minimum representational bits for 10 topics
	assert.Equal(t, uint32(4), m.RotateLen)

	m.Incr(uint32(123), uint32(1), uint32(4))
	assert.Equal(t, uint32((4<<4)+1), m.Data[uint32(123)][0])

	tid, count := m.Get(uint32(123), 0)
	assert.Equal(t, uint32(4), count)
	assert.Equal(t, uint32(1), tid)

	// a larger count for another topic moves to the front
	m.Incr(uint32(123), uint32(2), uint32(6))
	tid, count = m.Get(uint32(123), 0)
	assert.Equal(t, uint32(2), tid)
	assert.Equal(t, uint32(6), count)

	// growing topic 1 past topic 2 swaps them back
	m.Incr(uint32(123), uint32(1), uint32(3))
	tid, count = m.Get(uint32(123), 0)
	assert.Equal(t, uint32(1), tid)
	assert.Equal(t, uint32(7), count)
}

func TestSortedMapDecrRemovesZeroEntries(t *testing.T) {
	m := NewSortedMap(uint32(4))
	m.Incr(uint32(7), uint32(0), uint32(2))
	m.Incr(uint32(7), uint32(3), uint32(5))

	m.Decr(uint32(7), uint32(3), uint32(5))
	assert.Equal(t, 1, m.Len(uint32(7)))
	assert.Equal(t, uint32(2), m.Count(uint32(7), uint32(0)))
	assert.Equal(t, uint32(0), m.Count(uint32(7), uint32(3)))

	// decrementing an absent entry is a no-op
	m.Decr(uint32(9), uint32(1), uint32(1))
	assert.Equal(t, 0, m.Len(uint32(9)))
}

func TestSortedMapFillFrom(t *testing.T) {
	nkv := NewUint32Matrix(uint32(2), uint32(3))
	nkv.Set(0, 1, 4)
	nkv.Set(1, 1, 7)
	nkv.Set(1, 2, 1)

	m := NewSortedMap(uint32(2))
	m.FillFrom(nkv)

	assert.Equal(t, 2, m.Len(uint32(1)))
	tid, count := m.Get(uint32(1), 0)
	assert.Equal(t, uint32(1), tid)
	assert.Equal(t, uint32(7), count)
	assert.Equal(t, uint32(1), m.Count(uint32(2), uint32(1)))
	assert.Equal(t, 0, m.Len(uint32(0)))
}
