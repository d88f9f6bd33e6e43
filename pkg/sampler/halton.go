package sampler

// primeBases are the bases used for successive Halton dimensions.
var primeBases = []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}

// Halton draws dimension d of sample i as the radical inverse of i in
// primeBases[d], Cranley-Patterson-rotated by a single per-pixel scramble
// mask shared across every dimension. Spec §9's open question on whether
// the mask is per-dimension or shared picks "shared" explicitly; this
// sampler implements that reading.
type Halton struct {
	index           int
	dimension       int
	mask            float64
	samplesPerPixel int
}

func NewHalton(samplesPerPixel int) *Halton {
	return &Halton{samplesPerPixel: samplesPerPixel}
}

func (h *Halton) Next1D() float64 {
	v := radicalInverse(h.index, primeBases[h.dimension%len(primeBases)])
	h.dimension++
	return cranleyPatterson(v, h.mask)
}

func (h *Halton) Next2D() (float64, float64) {
	return h.Next1D(), h.Next1D()
}

func (h *Halton) SeedSample(sampleIndex int) {
	h.index = sampleIndex
	h.dimension = 0
}

// SeedPixel draws the shared scramble mask from a PCG32 seeded on the
// pixel coordinate, per spec §4.8's "per-pixel scramble mask derived by
// PCG32 from the pixel coordinate".
func (h *Halton) SeedPixel(pixelX, pixelY, sampleIndex int) {
	rng := newPCG32(hashPixel(pixelX, pixelY, 0), 0)
	h.mask = rng.Float64()
	h.index = sampleIndex
	h.dimension = 0
}

func (h *Halton) Clone() Sampler {
	return &Halton{samplesPerPixel: h.samplesPerPixel}
}

func (h *Halton) SamplesPerPixel() int { return h.samplesPerPixel }

func radicalInverse(index, base int) float64 {
	inv := 1.0 / float64(base)
	f := inv
	result := 0.0
	for index > 0 {
		result += float64(index%base) * f
		index /= base
		f *= inv
	}
	return result
}

func cranleyPatterson(v, mask float64) float64 {
	r := v + mask
	if r >= 1 {
		r -= 1
	}
	return r
}
