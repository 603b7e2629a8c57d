package model

import (
	"github.com/jucendrero/gotomo/sstable"
)

// counts is the storage contract behind the sufficient-statistics
// tables. Uniform term weighting stores exact integer counts; weighted
// modes store single-precision floats. The sampler only ever adds or
// subtracts a token's weight and reads back float values, so the two
// storages are interchangeable behind this interface.
type counts interface {
	get(r, c uint32) float32
	// add applies a signed delta; negative w decrements.
	add(r, c uint32, w float32)
	clone() counts
	copyFrom(o counts) error
	// mergeDelta accumulates local-snapshot into the receiver.
	mergeDelta(local, snapshot counts) error
	// clampZero raises negative elements to zero; a no-op for integer
	// storage, which cannot go negative without breaking invariants
	// elsewhere.
	clampZero()
	serialize(fn string) error
}

type uintCounts struct {
	m *sstable.Uint32Matrix
}

func newUintCounts(r, c uint32) *uintCounts {
	return &uintCounts{m: sstable.NewUint32Matrix(r, c)}
}

func (u *uintCounts) get(r, c uint32) float32 {
	return float32(u.m.Get(r, c))
}

func (u *uintCounts) add(r, c uint32, w float32) {
	if w >= 0 {
		u.m.Incr(r, c, uint32(w))
	} else {
		u.m.Decr(r, c, uint32(-w))
	}
}

func (u *uintCounts) clone() counts {
	return &uintCounts{m: u.m.Clone()}
}

func (u *uintCounts) copyFrom(o counts) error {
	return u.m.CopyFrom(o.(*uintCounts).m)
}

func (u *uintCounts) mergeDelta(local, snapshot counts) error {
	return u.m.AddDelta(local.(*uintCounts).m, snapshot.(*uintCounts).m)
}

func (u *uintCounts) clampZero() {}

func (u *uintCounts) serialize(fn string) error {
	return sstable.Uint32Serialize(u.m, fn)
}

type floatCounts struct {
	m *sstable.Float32Matrix
}

func newFloatCounts(r, c uint32) *floatCounts {
	return &floatCounts{m: sstable.NewFloat32Matrix(r, c)}
}

func (f *floatCounts) get(r, c uint32) float32 {
	return f.m.Get(r, c)
}

func (f *floatCounts) add(r, c uint32, w float32) {
	f.m.Incr(r, c, w)
}

func (f *floatCounts) clone() counts {
	return &floatCounts{m: f.m.Clone()}
}

func (f *floatCounts) copyFrom(o counts) error {
	return f.m.CopyFrom(o.(*floatCounts).m)
}

func (f *floatCounts) mergeDelta(local, snapshot counts) error {
	return f.m.AddDelta(local.(*floatCounts).m, snapshot.(*floatCounts).m)
}

func (f *floatCounts) clampZero() {
	f.m.ClampZero()
}

func (f *floatCounts) serialize(fn string) error {
	return sstable.Float32Serialize(f.m, fn)
}

// stats bundles the two global tables: nk, the K-vector of topic
// totals, stored as a K-by-one matrix, and nkv, the K-by-V topic-word
// count matrix.
type stats struct {
	nk  counts
	nkv counts
}

func newStats(k, v uint32, weighted bool) *stats {
	if weighted {
		return &stats{nk: newFloatCounts(k, 1), nkv: newFloatCounts(k, v)}
	}
	return &stats{nk: newUintCounts(k, 1), nkv: newUintCounts(k, v)}
}

func (s *stats) clone() *stats {
	return &stats{nk: s.nk.clone(), nkv: s.nkv.clone()}
}

func (s *stats) copyFrom(o *stats) error {
	if err := s.nk.copyFrom(o.nk); err != nil {
		return err
	}
	return s.nkv.copyFrom(o.nkv)
}

func (s *stats) mergeDelta(local, snapshot *stats) error {
	if err := s.nk.mergeDelta(local.nk, snapshot.nk); err != nil {
		return err
	}
	return s.nkv.mergeDelta(local.nkv, snapshot.nkv)
}

func (s *stats) clampZero() {
	s.nk.clampZero()
	s.nkv.clampZero()
}

// statsFromUint wraps deserialised integer tables.
func statsFromUint(nk, nkv *sstable.Uint32Matrix) *stats {
	return &stats{nk: &uintCounts{m: nk}, nkv: &uintCounts{m: nkv}}
}

// statsFromFloat wraps deserialised float tables.
func statsFromFloat(nk, nkv *sstable.Float32Matrix) *stats {
	return &stats{nk: &floatCounts{m: nk}, nkv: &floatCounts{m: nkv}}
}

// uintNKV exposes the integer topic-word matrix, or nil for weighted
// storage. The bucketed sampler rebuilds its sparse mirror from it.
func (s *stats) uintNKV() *sstable.Uint32Matrix {
	if u, ok := s.nkv.(*uintCounts); ok {
		return u.m
	}
	return nil
}
