// Package sampler implements the stateful uniform-sample producer
// contract from spec §4.8: Independent (PCG32) and Halton, both
// per-thread cloneable and deterministic given a seed. Grounded on
// pkg/core/sampling.go's Sampler interface/RandomSampler, generalized
// from math/rand to an explicit seed(pixel, sampleIndex)/clone() contract.
package sampler

// Sampler is implemented by Independent and Halton.
type Sampler interface {
	Next1D() float64
	Next2D() (float64, float64)
	SeedSample(sampleIndex int)
	SeedPixel(pixelX, pixelY, sampleIndex int)
	Clone() Sampler
	SamplesPerPixel() int
}
