// Package texture implements the constant/checkerboard/image texture
// variants named in the component table (spec §2 "Emission, Texture": 6%)
// with filtering and border modes, grounded on pkg/material/procedural_textures.go
// and pkg/material/image_texture.go.
package texture

import "github.com/dlaurent/photonforge/pkg/pfmath"

// Texture evaluates a color at a uv coordinate.
type Texture interface {
	Eval(uv [2]float64) pfmath.RGB
}

// Constant is a texture that ignores its uv argument.
type Constant struct {
	Color pfmath.RGB
}

func NewConstant(c pfmath.RGB) *Constant { return &Constant{Color: c} }

func (c *Constant) Eval([2]float64) pfmath.RGB { return c.Color }

// Checkerboard alternates between two colors on a uv grid; grounded on
// pkg/material/procedural_textures.go's CheckerTexture.
type Checkerboard struct {
	Odd, Even       pfmath.RGB
	ScaleU, ScaleV float64
}

func NewCheckerboard(odd, even pfmath.RGB, scaleU, scaleV float64) *Checkerboard {
	if scaleU == 0 {
		scaleU = 1
	}
	if scaleV == 0 {
		scaleV = 1
	}
	return &Checkerboard{Odd: odd, Even: even, ScaleU: scaleU, ScaleV: scaleV}
}

func (c *Checkerboard) Eval(uv [2]float64) pfmath.RGB {
	u := int(floor(uv[0] * c.ScaleU))
	v := int(floor(uv[1] * c.ScaleV))
	if (u+v)%2 == 0 {
		return c.Even
	}
	return c.Odd
}

func floor(x float64) float64 {
	i := float64(int(x))
	if x < 0 && i != x {
		i--
	}
	return i
}

// BorderMode controls sampling outside [0,1]^2 for Image textures.
type BorderMode int

const (
	BorderClamp BorderMode = iota
	BorderRepeat
)

// FilterMode selects how an Image texture samples between texel centers.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Image is a 2D grid of linear RGB texels sampled with a filter/border
// policy, grounded on pkg/material/image_texture.go.
type Image struct {
	Width, Height int
	Pixels        []pfmath.RGB // row-major, top to bottom
	Filter        FilterMode
	Border        BorderMode
}

func NewImage(width, height int, pixels []pfmath.RGB) *Image {
	return &Image{Width: width, Height: height, Pixels: pixels, Filter: FilterBilinear, Border: BorderClamp}
}

func (img *Image) at(x, y int) pfmath.RGB {
	x = img.wrap(x, img.Width)
	y = img.wrap(y, img.Height)
	return img.Pixels[y*img.Width+x]
}

func (img *Image) wrap(v, n int) int {
	switch img.Border {
	case BorderRepeat:
		v = v % n
		if v < 0 {
			v += n
		}
		return v
	default:
		if v < 0 {
			return 0
		}
		if v >= n {
			return n - 1
		}
		return v
	}
}

func (img *Image) Eval(uv [2]float64) pfmath.RGB {
	fx := uv[0]*float64(img.Width) - 0.5
	fy := uv[1]*float64(img.Height) - 0.5

	if img.Filter == FilterNearest {
		return img.at(int(fx+0.5), int(fy+0.5))
	}

	x0, y0 := int(floor(fx)), int(floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)
	c00 := img.at(x0, y0)
	c10 := img.at(x0+1, y0)
	c01 := img.at(x0, y0+1)
	c11 := img.at(x0+1, y0+1)
	top := c00.Scale(1 - tx).Add(c10.Scale(tx))
	bot := c01.Scale(1 - tx).Add(c11.Scale(tx))
	return top.Scale(1 - ty).Add(bot.Scale(ty))
}
