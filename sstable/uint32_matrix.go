// Package sstable holds the sufficient-statistics tables of the sampler:
// dense topic-by-word and topic-total count matrices (integer counts for
// uniform term weighting, float counts otherwise) and a sorted sparse
// word-topic map used by the bucketed sampler. Matrices are row major
// with topics as rows.
package sstable

import (
	"errors"
)

var (
	ErrIndexOutOfRange = errors.New("sstable: index out of range")
	ErrShapeMismatch   = errors.New("sstable: shape mismatch")
)

// internal Uint32 matrix representation
type Uint32Matrix struct {
	nrow uint32
	ncol uint32
	data []uint32
}

// NewUint32Matrix creates a new Uint32Matrix with r rows and c columns.
// If r*c == 0, it will panic. A uint32 slice is used as the underlying
// storage and the data layout is in row major order, i.e. the (i*c + j)-th
// element in the data slice is the [i, j]-th element in the matrix.
// Vector is defined as a matrix with one column, i.e. a column vector.
func NewUint32Matrix(r, c uint32) *Uint32Matrix {
	if r == 0 || c == 0 {
		panic(ErrIndexOutOfRange)
	}
	return &Uint32Matrix{
		nrow: r,
		ncol: c,
		data: make([]uint32, r*c),
	}
}

// get the shape of the matrix
func (m *Uint32Matrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *Uint32Matrix) Get(r, c uint32) uint32 {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[r*m.ncol+c]
}

// get a copy of the r-th row of the matrix
func (m *Uint32Matrix) GetRow(r uint32) []uint32 {
	if r >= m.nrow {
		panic(ErrIndexOutOfRange)
	}
	row := make([]uint32, m.ncol)
	copy(row, m.data[r*m.ncol:(r+1)*m.ncol])
	return row
}

// get a copy of the c-th column of the matrix
func (m *Uint32Matrix) GetCol(c uint32) []uint32 {
	if c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	column := make([]uint32, m.nrow)
	for r := uint32(0); r < m.nrow; r += 1 {
		column[r] = m.data[r*m.ncol+c]
	}
	return column
}

// set val to the [r, c]-th element of the matrix
func (m *Uint32Matrix) Set(r, c uint32, val uint32) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] = val
}

// increment the [r, c]-th element of the matrix by val
func (m *Uint32Matrix) Incr(r, c uint32, val uint32) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] += val
}

// decrement the [r, c]-th element of the matrix by val
func (m *Uint32Matrix) Decr(r, c uint32, val uint32) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	m.data[r*m.ncol+c] -= val
}

// Clone returns an independent copy of the matrix, used to seed
// per-worker shadow tables at the start of a parallel pass.
func (m *Uint32Matrix) Clone() *Uint32Matrix {
	c := NewUint32Matrix(m.nrow, m.ncol)
	copy(c.data, m.data)
	return c
}

// CopyFrom overwrites the matrix with the contents of o. Shapes must
// agree.
func (m *Uint32Matrix) CopyFrom(o *Uint32Matrix) error {
	if m.nrow != o.nrow || m.ncol != o.ncol {
		return ErrShapeMismatch
	}
	copy(m.data, o.data)
	return nil
}

// AddDelta accumulates plus-minus elementwise into the matrix, i.e.
// m[i,j] += plus[i,j] - minus[i,j]. Unsigned wraparound in the
// intermediate cancels as long as the mathematical result is
// non-negative, which the caller guarantees for count tables.
func (m *Uint32Matrix) AddDelta(plus, minus *Uint32Matrix) error {
	if m.nrow != plus.nrow || m.ncol != plus.ncol ||
		m.nrow != minus.nrow || m.ncol != minus.ncol {
		return ErrShapeMismatch
	}
	for i := range m.data {
		m.data[i] += plus.data[i] - minus.data[i]
	}
	return nil
}

// Sum returns the total of all elements.
func (m *Uint32Matrix) Sum() uint32 {
	return Uint32VectorSum(m.data)
}
