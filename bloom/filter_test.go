package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/cabinet/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("/a/doc.txt"))

	f.Add("/a/doc.txt")

	assert.True(t, f.Test("/a/doc.txt"))
	assert.False(t, f.Test("/b/doc-copy.txt"))
}

func TestFilter_EmptyCapacity(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0.01)

	for i := range 100 {
		f.Add(fmt.Sprintf("/data/file-%d.txt", i))
	}

	for i := range 100 {
		assert.True(t, f.Test(fmt.Sprintf("/data/file-%d.txt", i)))
	}
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("/indexed/%d.txt", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("/unindexed/%d.txt", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
