// Package model implements collapsed Gibbs sampling for latent
// Dirichlet allocation: the per-token update, a striped parallel epoch
// schedule with an approximate distributed merge, asymmetric alpha
// optimisation, three term-weighting modes, and held-out inference.
package model

import (
	"errors"
	"fmt"
)

var (
	// ErrBadConfig marks constructor-time configuration errors; the
	// model is unusable when one is returned.
	ErrBadConfig = errors.New("model: bad configuration")

	// ErrNotPrepared is returned by operations that require Prepare to
	// have run.
	ErrNotPrepared = errors.New("model: not prepared")

	// ErrTopicOutOfRange is returned when a per-topic query names a
	// topic id >= K.
	ErrTopicOutOfRange = errors.New("model: topic out of range")

	// ErrTraining marks a numerical failure inside a sampling pass.
	// The model state is unchanged from the last merge boundary.
	ErrTraining = errors.New("model: training failed")
)

// TermWeight selects how much mass a token contributes to the count
// tables: a unit count, its inverse document frequency, or a
// document-local pointwise mutual information score.
type TermWeight int

const (
	TermWeightUniform TermWeight = iota
	TermWeightIDF
	TermWeightPMI
)

// ParseTermWeight maps a mode name to its TermWeight value.
func ParseTermWeight(s string) (TermWeight, error) {
	switch s {
	case "uniform", "":
		return TermWeightUniform, nil
	case "idf":
		return TermWeightIDF, nil
	case "pmi":
		return TermWeightPMI, nil
	}
	return 0, fmt.Errorf("%w: unknown term weight %q", ErrBadConfig, s)
}

func (t TermWeight) String() string {
	switch t {
	case TermWeightUniform:
		return "uniform"
	case TermWeightIDF:
		return "idf"
	case TermWeightPMI:
		return "pmi"
	}
	return fmt.Sprintf("TermWeight(%d)", int(t))
}

// alphaFloor keeps the optimiser's fixed-point updates strictly
// positive.
const alphaFloor = 1e-5

// Config carries the construction-time options of a model. TopicNum,
// Eta and TermWeight are fixed for the model's lifetime; Alpha seeds
// the per-topic concentration vector the optimiser may later reshape.
type Config struct {
	TopicNum   uint32
	Alpha      float64
	Eta        float64
	TermWeight TermWeight

	// OptimInterval is the number of epochs between alpha-optimiser
	// calls; zero disables optimisation. BurnIn is the number of
	// initial epochs during which the optimiser never runs.
	OptimInterval int
	BurnIn        int

	// Seed initialises the main-thread RNG; per-worker RNGs are forked
	// from it. Workers sizes the pool, zero meaning hardware
	// concurrency.
	Seed    int64
	Workers int

	// LogEvery is the epoch interval of progress logging; zero
	// disables it.
	LogEvery int
}

// Validate checks the configuration synchronously, before any state is
// allocated.
func (c *Config) Validate() error {
	if c.TopicNum == 0 {
		return fmt.Errorf("%w: topic number must be positive", ErrBadConfig)
	}
	if c.Alpha <= 0 {
		return fmt.Errorf("%w: alpha must be positive", ErrBadConfig)
	}
	if c.Eta <= 0 {
		return fmt.Errorf("%w: eta must be positive", ErrBadConfig)
	}
	switch c.TermWeight {
	case TermWeightUniform, TermWeightIDF, TermWeightPMI:
	default:
		return fmt.Errorf("%w: unknown term weight %d", ErrBadConfig, int(c.TermWeight))
	}
	if c.OptimInterval < 0 || c.BurnIn < 0 {
		return fmt.Errorf("%w: negative epoch interval", ErrBadConfig)
	}
	return nil
}
