package sampler

// Independent is the PCG32-backed sampler: every dimension is an
// independent uniform draw, with no stratification across samples.
type Independent struct {
	rng              *pcg32
	samplesPerPixel int
	streamSeq       uint64
}

func NewIndependent(samplesPerPixel int) *Independent {
	return &Independent{samplesPerPixel: samplesPerPixel, rng: newPCG32(0, 0)}
}

func (s *Independent) Next1D() float64 { return s.rng.Float64() }

func (s *Independent) Next2D() (float64, float64) { return s.rng.Float64(), s.rng.Float64() }

// SeedSample deterministically initializes the sequence from a single
// sample index (spec §4.8's seed(sampleIndex)).
func (s *Independent) SeedSample(sampleIndex int) {
	s.rng = newPCG32(uint64(sampleIndex), s.streamSeq)
}

// SeedPixel deterministically initializes the sequence from a pixel
// coordinate and sample index, guaranteeing different pixels produce
// uncorrelated sequences (spec §4.8's seed(pixel, sampleIndex)).
func (s *Independent) SeedPixel(pixelX, pixelY, sampleIndex int) {
	s.rng = newPCG32(hashPixel(pixelX, pixelY, sampleIndex), s.streamSeq)
}

// Clone returns a copy on the next PCG32 stream (the source's stream + 1),
// so a clone's sequence differs from its source's even when both are
// seeded identically; clones of the same source share one stream. This
// satisfies
// §5's "cloning must produce a sampler whose sequence is independent of
// the source's".
func (s *Independent) Clone() Sampler {
	return &Independent{samplesPerPixel: s.samplesPerPixel, rng: newPCG32(0, s.streamSeq+1), streamSeq: s.streamSeq + 1}
}

func (s *Independent) SamplesPerPixel() int { return s.samplesPerPixel }
