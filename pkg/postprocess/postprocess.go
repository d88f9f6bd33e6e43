// Package postprocess defines the two output-stage contracts spec.md §1
// names and excludes an implementation for: denoising and bloom. Building a
// real OIDN binding would mean a cgo dependency none of the example repos
// carry, so this package only fixes the interface shape a future
// implementation would satisfy, following the same structural-contract
// pattern pkg/render.Previewer uses to keep an optional stage decoupled
// from the render core.
package postprocess

import "github.com/dlaurent/photonforge/pkg/render"

// Denoiser removes Monte Carlo noise from a finished render. A real
// implementation (e.g. an OIDN binding) would consume auxiliary albedo/
// normal buffers; this contract is intentionally minimal since none is
// built here.
type Denoiser interface {
	Denoise(img *render.Image) *render.Image
}

// Bloom applies an energy-conserving glow to over-bright pixels.
type Bloom interface {
	Apply(img *render.Image) *render.Image
}

// Identity is a Denoiser and a Bloom that returns its input unchanged. It
// is the default when no real implementation is configured, so the CLI's
// post-process stage is never nil.
type Identity struct{}

func (Identity) Denoise(img *render.Image) *render.Image { return img }
func (Identity) Apply(img *render.Image) *render.Image   { return img }
