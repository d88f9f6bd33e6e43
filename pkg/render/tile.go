package render

import "sort"

// Tile is one disjoint work item for the worker pool: a pixel rectangle
// [X0,X1) x [Y0,Y1).
type Tile struct {
	X0, Y0, X1, Y1 int
}

func (t Tile) Width() int  { return t.X1 - t.X0 }
func (t Tile) Height() int { return t.Y1 - t.Y0 }

// SpiralTiles partitions the image into tileSize x tileSize blocks (the
// last row/column may be smaller) and orders them center-out: the block
// nearest the image center first, then square rings expanding outward,
// per spec §5. Blocks within one ring keep row-major order. Grounded on pkg/renderer/progressive.go's NewTileGrid,
// extended with the center-out ordering beyond its row-major grid.
func SpiralTiles(width, height, tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = 64
	}
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize
	if tilesX == 0 || tilesY == 0 {
		return nil
	}

	tiles := make([]Tile, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * tileSize
			y0 := ty * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)
			tiles[ty*tilesX+tx] = Tile{X0: x0, Y0: y0, X1: x1, Y1: y1}
		}
	}

	centerX := float64(tilesX-1) / 2
	centerY := float64(tilesY-1) / 2

	idx := make([]int, len(tiles))
	for i := range idx {
		idx[i] = i
	}
	ring := func(i int) float64 {
		tx := float64(i%tilesX) - centerX
		ty := float64(i/tilesX) - centerY
		// Chebyshev distance matches the concentric-square rings a
		// block-spiral walk visits.
		if d := abs(tx); d > abs(ty) {
			return d
		}
		return abs(ty)
	}
	sort.SliceStable(idx, func(a, b int) bool { return ring(idx[a]) < ring(idx[b]) })

	out := make([]Tile, len(tiles))
	for i, j := range idx {
		out[i] = tiles[j]
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
