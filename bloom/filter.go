// Package bloom provides a probabilistic set of known incarnation URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// minCapacity keeps the filter usable when a cabinet starts out empty.
const minCapacity = 1024

// Filter wraps a Bloom filter over incarnation URLs. A negative Test is
// definitive, so callers can skip a repository lookup for URLs never seen.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n < minCapacity {
		n = minCapacity
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}
