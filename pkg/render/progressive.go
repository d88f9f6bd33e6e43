package render

import (
	"runtime"
	"sync"

	"github.com/dlaurent/photonforge/pkg/integrator"
	"github.com/dlaurent/photonforge/pkg/sampler"
	"github.com/dlaurent/photonforge/pkg/scene"
)

// Previewer streams completed tiles to an external viewer. pkg/tev.Client
// satisfies this structurally; render never imports pkg/tev to avoid a
// dependency from the rendering core onto a glue package (spec §5's
// "no I/O in the hot path" — only the previewer does socket I/O, and only
// from this optional mode).
type Previewer interface {
	UpdateTile(img *Image, tile Tile)
}

// ProgressiveConfig controls ProgressiveRun: a sequence of passes with
// increasing target sample counts, each pass's completed tiles streamed to
// preview. Grounded on pkg/renderer/progressive.go's ProgressiveConfig,
// adapted from its adaptive per-pixel stopping rule (out of scope here)
// to a fixed target-samples-per-pass schedule.
type ProgressiveConfig struct {
	Width, Height      int
	TileSize           int
	NumWorkers         int
	InitialSamples     int
	MaxSamplesPerPixel int
	MaxPasses          int
}

func (c ProgressiveConfig) resolved() ProgressiveConfig {
	if c.TileSize <= 0 {
		c.TileSize = 64
	}
	if c.NumWorkers <= 0 {
		c.NumWorkers = runtime.NumCPU()
	}
	if c.InitialSamples <= 0 {
		c.InitialSamples = 1
	}
	if c.MaxSamplesPerPixel <= 0 {
		c.MaxSamplesPerPixel = 1
	}
	if c.MaxPasses <= 0 {
		c.MaxPasses = 1
	}
	return c
}

// samplesForPass mirrors pkg/renderer/progressive.go's getSamplesForPass:
// pass 1 renders InitialSamples, the remaining budget is split evenly
// across the remaining passes, and the final pass always reaches
// MaxSamplesPerPixel exactly.
func (c ProgressiveConfig) samplesForPass(pass int) int {
	if c.MaxPasses == 1 {
		return c.MaxSamplesPerPixel
	}
	if pass == 1 {
		return c.InitialSamples
	}
	remainingSamples := c.MaxSamplesPerPixel - c.InitialSamples
	remainingPasses := c.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses
	target := c.InitialSamples + (pass-1)*samplesPerPass
	if pass == c.MaxPasses {
		target = c.MaxSamplesPerPixel
	}
	return target
}

// ProgressiveRun renders successive passes of increasing sample count,
// accumulating into a pixel grid of AtomicPixel so a preview read and a
// later pass's write can race harmlessly (spec §5's documented progressive-
// mode case), and streams a snapshot of the image to preview after every
// completed tile. Returns the final Image.
func ProgressiveRun(sc *scene.Scene, integ integrator.Integrator, baseSampler sampler.Sampler, cfg ProgressiveConfig, preview Previewer) *Image {
	cfg = cfg.resolved()
	pixels := make([]AtomicPixel, cfg.Width*cfg.Height)
	tiles := SpiralTiles(cfg.Width, cfg.Height, cfg.TileSize)

	samplesDone := 0
	for pass := 1; pass <= cfg.MaxPasses; pass++ {
		target := cfg.samplesForPass(pass)
		passSamples := target - samplesDone
		if passSamples <= 0 {
			continue
		}

		queue := make(chan Tile, len(tiles))
		for _, t := range tiles {
			queue <- t
		}
		close(queue)

		var wg sync.WaitGroup
		for w := 0; w < cfg.NumWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s := baseSampler.Clone()
				for tile := range queue {
					renderTileProgressive(pixels, cfg.Width, cfg.Height, sc, integ, s, tile, samplesDone, passSamples)
					if preview != nil {
						preview.UpdateTile(snapshot(pixels, cfg.Width, cfg.Height), tile)
					}
				}
			}()
		}
		wg.Wait()

		samplesDone = target
		if samplesDone >= cfg.MaxSamplesPerPixel {
			break
		}
	}

	return snapshot(pixels, cfg.Width, cfg.Height)
}

func renderTileProgressive(pixels []AtomicPixel, width, height int, sc *scene.Scene, integ integrator.Integrator, s sampler.Sampler, tile Tile, samplesAlready, passSamples int) {
	cam := sc.Camera
	for y := tile.Y0; y < tile.Y1; y++ {
		for x := tile.X0; x < tile.X1; x++ {
			p := &pixels[y*width+x]
			for i := 0; i < passSamples; i++ {
				sampleIndex := samplesAlready + i
				s.SeedPixel(x, y, sampleIndex)
				jx, jy := s.Next2D()
				u := (float64(x) + jx) / float64(width)
				v := 1 - (float64(y)+jy)/float64(height)
				ray := cam.GenerateRay(u, v, s)
				p.Add(integ.Li(ray, sc, s))
			}
		}
	}
}

func snapshot(pixels []AtomicPixel, width, height int) *Image {
	img := NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, pixels[y*width+x].Mean())
		}
	}
	return img
}
