// Package render implements the sample-driven concurrency core from spec
// §5: a fixed-size worker pool draining a block-spiral tile queue, with
// each worker owning a cloned sampler and writing disjoint pixel regions.
// Grounded on pkg/renderer/{worker_pool,tile_renderer,progressive}.go,
// adapted from their adaptive-sampling pixel loop to a simpler
// fixed-samples-per-pixel contract.
package render

import "github.com/dlaurent/photonforge/pkg/pfmath"

// Image is the plain RGB framebuffer spec §3 describes. The renderer owns
// it for the duration of a Run and relies on disjoint tile ownership for
// thread safety (spec §5) rather than synchronizing every pixel write.
type Image struct {
	Width, Height int
	Pixels        []pfmath.RGB // row-major, top to bottom
}

func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pixels: make([]pfmath.RGB, width*height)}
}

func (img *Image) At(x, y int) pfmath.RGB { return img.Pixels[y*img.Width+x] }

func (img *Image) Set(x, y int, c pfmath.RGB) { img.Pixels[y*img.Width+x] = c }
