package sampler

// pcg32 is the standard O'Neill PCG32 generator (public-domain algorithm,
// not sourced from any example repo — no pack repo or ecosystem library
// implements this specific PRNG, so it is one of the few hand-rolled
// pieces in this module; see DESIGN.md). Independent and Halton both use
// it, Independent directly as the sample stream and Halton to derive the
// per-pixel Cranley-Patterson scramble mask.
type pcg32 struct {
	state uint64
	inc   uint64
}

const pcgMultiplier = 6364136223846793005

func newPCG32(seed, seq uint64) *pcg32 {
	p := &pcg32{}
	p.inc = (seq << 1) | 1
	p.step()
	p.state += seed
	p.step()
	return p
}

func (p *pcg32) step() {
	p.state = p.state*pcgMultiplier + p.inc
}

func (p *pcg32) Uint32() uint32 {
	oldState := p.state
	p.step()
	xorshifted := uint32(((oldState >> 18) ^ oldState) >> 27)
	rot := uint32(oldState >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Float64 returns a value in [0,1).
func (p *pcg32) Float64() float64 {
	return float64(p.Uint32()) / 4294967296.0
}

// hashPixel combines a pixel coordinate and sample index into a single
// 64-bit seed for deterministic, per-pixel-independent sequences.
func hashPixel(px, py, sampleIndex int) uint64 {
	h := uint64(px)*2654435761 + uint64(py)*2246822519 + uint64(sampleIndex)*3266489917
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}
