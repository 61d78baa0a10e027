package latency

import "math/rand/v2"

// RandomSource yields uniform draws in [0,1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns the process-wide generator. It is safe for
// concurrent use.
func DefaultSource() RandomSource {
	return globalSource{}
}
