package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixSumFloat32(t *testing.T) {
	p := []float32{1, 2, 3, 4}
	total := PrefixSumFloat32(p)
	assert.Equal(t, []float32{1, 3, 6, 10}, p)
	assert.Equal(t, float32(10), total)
}

func TestSampleFromCumulativeBounds(t *testing.T) {
	cdf := []float32{1, 3, 6, 10}
	assert.Equal(t, 0, SampleFromCumulative(cdf, 0))
	assert.Equal(t, 3, SampleFromCumulative(cdf, 0.9999))
}

func TestSampleFromCumulativeBuckets(t *testing.T) {
	cdf := []float32{1, 3, 6, 10}
	// u01*total = 2 falls in [1, 3) -> bucket 1
	assert.Equal(t, 1, SampleFromCumulative(cdf, 0.2))
	// u01*total = 5 falls in [3, 6) -> bucket 2
	assert.Equal(t, 2, SampleFromCumulative(cdf, 0.5))
}
