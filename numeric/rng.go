package numeric

import "math/rand"

// Source is the random-source contract the sampler consumes: any PRNG
// returning uniform 32-bit integers. The core builds U[0,1) and U[0,R)
// draws from it on demand rather than requiring those directly.
type Source interface {
	Uint32() uint32
}

// Rand wraps math/rand.Rand to satisfy Source and adds the derived draws
// the sampler actually needs.
type Rand struct {
	*rand.Rand
}

// NewRand builds a Rand seeded deterministically from seed.
func NewRand(seed int64) *Rand {
	return &Rand{Rand: rand.New(rand.NewSource(seed))}
}

// Uint32 returns a uniform 32-bit draw.
func (r *Rand) Uint32() uint32 {
	return r.Rand.Uint32()
}

// Float32 returns a uniform draw in [0, 1).
func (r *Rand) Float32() float32 {
	return r.Rand.Float32()
}

// IntN returns a uniform draw in [0, n).
func (r *Rand) IntN(n int) int {
	return r.Rand.Intn(n)
}

// Fork derives a new, independent Rand from this one, used to seed
// per-worker RNGs from a single main-thread RNG outside parallel
// regions.
func (r *Rand) Fork() *Rand {
	return NewRand(int64(r.Rand.Uint64()))
}
