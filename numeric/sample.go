package numeric

// PrefixSumFloat32 turns p into its in-place running sum, i.e.
// p[k] <- sum(p[0..k]), and returns the final total.
func PrefixSumFloat32(p []float32) float32 {
	var total float32
	for k := range p {
		total += p[k]
		p[k] = total
	}
	return total
}

// SampleFromCumulative draws u ~ Uniform(0, cdf[len(cdf)-1]) using u01 (a
// caller-supplied draw in [0,1)) and returns the smallest index k with
// cdf[k] > u, i.e. a lower bound on the cumulative array. cdf must be
// non-negative, non-decreasing and non-empty; callers are expected to
// have validated this (the core does not re-validate on the hot path).
func SampleFromCumulative(cdf []float32, u01 float32) int {
	total := cdf[len(cdf)-1]
	u := u01 * total
	for k, v := range cdf {
		if v > u {
			return k
		}
	}
	return len(cdf) - 1
}
