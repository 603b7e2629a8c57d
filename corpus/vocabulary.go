// Package corpus owns the vocabulary and document store the sampler core
// is trained against: it maps raw tokens to dense integer ids and holds
// the immutable per-document word-id sequences the sampler mutates
// topic assignments on top of. Beyond id assignment and frequency
// pruning it offers only a minimal lowercase-and-split-on-whitespace
// Tokenize and a line-per-document loader built on it; stop-word
// filtering and smarter tokenisation are left to the caller.
package corpus

import (
	"errors"
	"sort"
)

var (
	// ErrAlreadyPrepared is returned by mutating vocabulary operations
	// once Prepare has finalised the id space.
	ErrAlreadyPrepared = errors.New("corpus: vocabulary already prepared")

	// ErrNotPrepared is returned by operations that require a
	// finalised vocabulary.
	ErrNotPrepared = errors.New("corpus: vocabulary not prepared")
)

// Vocabulary maps tokens to dense integer ids. Before Prepare is called
// it grows without bound as new tokens are observed; after Prepare the
// id space is frozen at size V and out-of-vocabulary tokens map to the
// sentinel id V (or above).
type Vocabulary struct {
	tokens []string
	rawID  map[string]uint32
	cf     []uint32 // collection frequency, indexed by raw id
	df     []uint32 // document frequency, indexed by raw id

	prepared bool
	remap    []uint32 // raw id -> final id; final id >= V means pruned
	finalTok []string // final id -> token, length V
	finalDF  []uint32 // final id -> document frequency, length V
	finalCF  []uint32 // final id -> collection frequency, length V
	v        uint32
}

// NewVocabulary creates an empty, growable vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		rawID: make(map[string]uint32),
	}
}

// NewPreparedVocabulary rebuilds a finalised vocabulary from its saved
// token list and frequency tables, e.g. when loading a trained model.
// Final ids equal the slice positions.
func NewPreparedVocabulary(tokens []string, df, cf []uint32) *Vocabulary {
	v := NewVocabulary()
	v.finalTok = tokens
	v.finalDF = df
	v.finalCF = cf
	v.remap = make([]uint32, len(tokens))
	for i, tok := range tokens {
		v.rawID[tok] = uint32(i)
		v.remap[i] = uint32(i)
	}
	v.v = uint32(len(tokens))
	v.prepared = true
	return v
}

// rawIDFor returns the raw id for token, assigning a fresh one on first
// sight. Panics if called after Prepare — callers must route through
// Corpus.AddDocument, which checks this before tokens are observed.
func (v *Vocabulary) rawIDFor(token string) uint32 {
	if v.prepared {
		panic(ErrAlreadyPrepared)
	}
	if id, ok := v.rawID[token]; ok {
		return id
	}
	id := uint32(len(v.tokens))
	v.tokens = append(v.tokens, token)
	v.rawID[token] = id
	v.cf = append(v.cf, 0)
	v.df = append(v.df, 0)
	return id
}

// observeDoc registers one document's tokens, returning their raw ids
// and bumping collection/document frequency bookkeeping.
func (v *Vocabulary) observeDoc(tokens []string) []uint32 {
	ids := make([]uint32, len(tokens))
	seen := make(map[uint32]bool, len(tokens))
	for i, tok := range tokens {
		id := v.rawIDFor(tok)
		ids[i] = id
		v.cf[id]++
		if !seen[id] {
			seen[id] = true
			v.df[id]++
		}
	}
	return ids
}

// Prepare finalises the vocabulary: tokens with collection frequency
// below minCount, and the removeTopN most frequent remaining tokens,
// are pruned (mapped to ids >= V); the rest keep their relative
// insertion order and are assigned dense final ids [0, V).
func (v *Vocabulary) Prepare(minCount uint32, removeTopN int) error {
	if v.prepared {
		return ErrAlreadyPrepared
	}

	kept := make([]uint32, 0, len(v.tokens))
	for id := range v.tokens {
		if v.cf[id] >= minCount {
			kept = append(kept, uint32(id))
		}
	}

	if removeTopN > 0 {
		byFreq := append([]uint32(nil), kept...)
		sort.SliceStable(byFreq, func(i, j int) bool {
			return v.cf[byFreq[i]] > v.cf[byFreq[j]]
		})
		drop := make(map[uint32]bool, removeTopN)
		for i := 0; i < removeTopN && i < len(byFreq); i++ {
			drop[byFreq[i]] = true
		}
		filtered := kept[:0:0]
		for _, id := range kept {
			if !drop[id] {
				filtered = append(filtered, id)
			}
		}
		kept = filtered
	}

	v.remap = make([]uint32, len(v.tokens))
	for i := range v.remap {
		v.remap[i] = uint32(len(kept)) // default: pruned, points past V
	}
	v.finalTok = make([]string, len(kept))
	v.finalDF = make([]uint32, len(kept))
	v.finalCF = make([]uint32, len(kept))
	for newID, rawID := range kept {
		v.remap[rawID] = uint32(newID)
		v.finalTok[newID] = v.tokens[rawID]
		v.finalDF[newID] = v.df[rawID]
		v.finalCF[newID] = v.cf[rawID]
	}

	v.v = uint32(len(kept))
	v.prepared = true
	return nil
}

// Size returns the effective vocabulary size V, valid after Prepare.
func (v *Vocabulary) Size() uint32 {
	return v.v
}

// Prepared reports whether Prepare has been called.
func (v *Vocabulary) Prepared() bool {
	return v.prepared
}

// FinalID maps a raw id (as returned at AddDocument time) to its final,
// V-bounded id, or a sentinel >= V if the token was pruned.
func (v *Vocabulary) FinalID(rawID uint32) uint32 {
	if int(rawID) >= len(v.remap) {
		return v.v
	}
	return v.remap[rawID]
}

// ID maps a token to its final id, valid after Prepare. Unknown or
// pruned tokens map to the out-of-vocabulary sentinel V.
func (v *Vocabulary) ID(token string) uint32 {
	raw, ok := v.rawID[token]
	if !ok {
		return v.v
	}
	return v.remap[raw]
}

// Token returns the surface token for a final id, valid after Prepare.
func (v *Vocabulary) Token(finalID uint32) string {
	if finalID >= v.v {
		return ""
	}
	return v.finalTok[finalID]
}

// DocFreq returns the document frequency of a final id, valid after Prepare.
func (v *Vocabulary) DocFreq(finalID uint32) uint32 {
	if finalID >= v.v {
		return 0
	}
	return v.finalDF[finalID]
}

// CollFreq returns the collection frequency of a final id, valid after Prepare.
func (v *Vocabulary) CollFreq(finalID uint32) uint32 {
	if finalID >= v.v {
		return 0
	}
	return v.finalCF[finalID]
}
