package render

import (
	"math"
	"sync/atomic"

	"github.com/dlaurent/photonforge/pkg/pfmath"
)

// AtomicPixel accumulates one pixel's RGB sum with compare-and-swap loops
// over each channel's 32-bit float bit pattern. Spec §5: "if a single
// pixel is ever written by multiple workers (progressive modes), stores
// must be atomic per color channel, implemented as compare-and-swap loops
// on the 32-bit float representation." Only ProgressiveRun exercises this
// type; the default single-owner-per-pixel Run writes through plain
// Image.Set.
type AtomicPixel struct {
	r, g, b atomic.Uint32
	count   atomic.Uint32
}

// Add accumulates one sample's contribution.
func (p *AtomicPixel) Add(c pfmath.RGB) {
	addChannel(&p.r, float32(c.R))
	addChannel(&p.g, float32(c.G))
	addChannel(&p.b, float32(c.B))
	p.count.Add(1)
}

func addChannel(bits *atomic.Uint32, delta float32) {
	for {
		old := bits.Load()
		next := math.Float32bits(math.Float32frombits(old) + delta)
		if bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// Mean returns the running per-sample average; zero count returns black.
func (p *AtomicPixel) Mean() pfmath.RGB {
	n := p.count.Load()
	if n == 0 {
		return pfmath.Black
	}
	scale := 1 / float64(n)
	return pfmath.RGB{
		R: float64(math.Float32frombits(p.r.Load())) * scale,
		G: float64(math.Float32frombits(p.g.Load())) * scale,
		B: float64(math.Float32frombits(p.b.Load())) * scale,
	}
}
