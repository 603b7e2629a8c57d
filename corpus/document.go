package corpus

// Document is one training or held-out document: an ordered sequence of
// V-bounded word ids, a parallel sequence of topic assignments, and (for
// non-uniform term weighting) a parallel sequence of per-token weights.
// NDK is the per-document topic-count vector of length K. All three
// mutable slices are owned by the document and touched by exactly one
// worker per epoch, so they need no synchronisation.
type Document struct {
	// Raw holds the vocabulary's raw (pre-Prepare) ids, preserved so
	// Finalize can remap them once the vocabulary is frozen.
	Raw []uint32

	Words []uint32 // final, V-bounded ids (or sentinel >= V for OOV)
	Z     []uint32 // topic assignment per token
	W     []float32 // per-token weight; nil under uniform weighting
	NDK   []float64 // per-document topic counts, length K
}

// NewDocument allocates a document for the given raw ids.
func NewDocument(raw []uint32) *Document {
	return &Document{Raw: raw}
}

// Finalize remaps Raw ids through vocab and allocates Z/NDK (and W, if
// weighted) ahead of initial random topic assignment.
func (d *Document) Finalize(vocab *Vocabulary, k uint32, weighted bool) {
	d.Words = make([]uint32, len(d.Raw))
	for i, raw := range d.Raw {
		d.Words[i] = vocab.FinalID(raw)
	}
	d.Alloc(k, weighted)
}

// Alloc allocates the mutable per-token state (Z, NDK and, when
// weighted, W) for a document whose Words are already final ids.
func (d *Document) Alloc(k uint32, weighted bool) {
	d.Z = make([]uint32, len(d.Words))
	d.NDK = make([]float64, k)
	if weighted {
		d.W = make([]float32, len(d.Words))
	}
}

// Weight returns the effective per-token weight at position i: the
// stored weight under non-uniform term weighting, or 1 under uniform
// weighting.
func (d *Document) Weight(i int) float32 {
	if d.W == nil {
		return 1
	}
	return d.W[i]
}

// SumWeight returns the document's total weight: token count under
// uniform weighting, or the sum of per-token weights otherwise. Under
// uniform weighting every slot counts, out-of-vocabulary ones included.
// The model's likelihood and optimiser formulas do not call it; they
// use the sum of NDK as the document length.
func (d *Document) SumWeight() float64 {
	if d.W == nil {
		return float64(len(d.Words))
	}
	var sum float64
	for _, w := range d.W {
		sum += float64(w)
	}
	return sum
}

// Len returns the number of tokens in the document.
func (d *Document) Len() int {
	return len(d.Words)
}
