package sstable

import (
	"math/bits"
)

// SortedMap caches the nonzero topic counts of each word, sorted by
// count in descending order. Each entry is a single uint32 where the
// lower RotateLen bits hold the topic id and the upper bits hold the
// count, so comparing packed values orders primarily by count. The
// bucketed sampler walks these entries to accumulate the word-topic
// bucket without touching zero-count topics.
type SortedMap struct {
	Data      map[uint32][]uint32
	RotateLen uint32
	TopicMask uint32
}

// NewSortedMap creates an empty map sized for topicNum topics.
func NewSortedMap(topicNum uint32) *SortedMap {
	rotateLen := uint32(bits.Len32(topicNum))
	return &SortedMap{
		Data:      make(map[uint32][]uint32),
		RotateLen: rotateLen,
		TopicMask: (uint32(1) << rotateLen) - 1,
	}
}

// get the i-th entry of the value slice of wordId and return the
// parsed topicId and count
func (m *SortedMap) Get(wordId uint32, idx int) (uint32, uint32) {
	if idx >= len(m.Data[wordId]) {
		panic(ErrIndexOutOfRange)
	}
	val := m.Data[wordId][idx]
	count := val >> m.RotateLen
	topicId := val & m.TopicMask
	return topicId, count
}

// Count returns the count stored for (wordId, topicId), zero if absent.
func (m *SortedMap) Count(wordId, topicId uint32) uint32 {
	for _, v := range m.Data[wordId] {
		if v&m.TopicMask == topicId {
			return v >> m.RotateLen
		}
	}
	return 0
}

// Len returns the number of nonzero topics for wordId.
func (m *SortedMap) Len(wordId uint32) int {
	return len(m.Data[wordId])
}

// Incr adds count to the (wordId, topicId) entry, inserting it if
// absent, and restores descending count order.
func (m *SortedMap) Incr(wordId uint32, topicId uint32, count uint32) {
	if count == 0 {
		return
	}

	idx := -1
	for i, v := range m.Data[wordId] {
		if v&m.TopicMask == topicId {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.Data[wordId] = append(m.Data[wordId],
			(count<<m.RotateLen)+topicId)
		idx = len(m.Data[wordId]) - 1
	} else {
		_, oldCount := m.Get(wordId, idx)
		m.Data[wordId][idx] = ((count + oldCount) << m.RotateLen) + topicId
	}

	// bubble the grown entry toward the front
	for k := idx; k > 0; k -= 1 {
		if m.Data[wordId][k] > m.Data[wordId][k-1] {
			m.Data[wordId][k], m.Data[wordId][k-1] =
				m.Data[wordId][k-1], m.Data[wordId][k]
			continue
		}
		break
	}
}

// Decr subtracts count from the (wordId, topicId) entry, removing it
// when it reaches zero, and restores descending count order.
func (m *SortedMap) Decr(wordId uint32, topicId uint32, count uint32) {
	if count == 0 {
		return
	}
	if _, ok := m.Data[wordId]; !ok {
		return
	}

	idx := -1
	for i, v := range m.Data[wordId] {
		if v&m.TopicMask == topicId {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	_, oldCount := m.Get(wordId, idx)
	if count > oldCount {
		count = oldCount
	}
	if oldCount-count == 0 {
		// delete the entry, shifting smaller values forward
		curLen := len(m.Data[wordId])
		for k := idx + 1; k < curLen; k += 1 {
			m.Data[wordId][k-1] = m.Data[wordId][k]
		}
		m.Data[wordId] = m.Data[wordId][0 : curLen-1]
		return
	}

	m.Data[wordId][idx] = ((oldCount - count) << m.RotateLen) + topicId
	// bubble the shrunk entry toward the back
	for k := idx; k < len(m.Data[wordId])-1; k += 1 {
		if m.Data[wordId][k] < m.Data[wordId][k+1] {
			m.Data[wordId][k], m.Data[wordId][k+1] =
				m.Data[wordId][k+1], m.Data[wordId][k]
			continue
		}
		break
	}
}

// FillFrom rebuilds the map from a dense topic-by-word count matrix.
func (m *SortedMap) FillFrom(nkv *Uint32Matrix) {
	m.Data = make(map[uint32][]uint32)
	nrow, ncol := nkv.Shape()
	for k := uint32(0); k < nrow; k += 1 {
		for v := uint32(0); v < ncol; v += 1 {
			if cnt := nkv.Get(k, v); cnt > 0 {
				m.Incr(v, k, cnt)
			}
		}
	}
}
