package image

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/dlaurent/photonforge/pkg/pfmath"
	"github.com/dlaurent/photonforge/pkg/texture"
)

// LoadLDR decodes a PNG or JPEG file into a texture.Image, grounded on
// pkg/loaders/image.go's decode-then-convert-to-Vec3 approach in the
// teacher. When linear is false (the default for an ordinary color/
// albedo map), each channel is inverse-sRGB decoded before being stored;
// linear textures (e.g. already-linear roughness or normal maps) skip
// this step.
func LoadLDR(path string, linear bool) (*texture.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image: opening %s: %w", path, err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("image: decoding %s: %w", path, err)
	}

	bounds := decoded.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]pfmath.RGB, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := decoded.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			c := pfmath.NewRGB(float64(r)/65535, float64(g)/65535, float64(b)/65535)
			if !linear {
				c = inverseSRGB(c)
			}
			pixels[y*width+x] = c
		}
	}

	return texture.NewImage(width, height, pixels), nil
}

func inverseSRGB(c pfmath.RGB) pfmath.RGB {
	return pfmath.NewRGB(inverseSRGBChannel(c.R), inverseSRGBChannel(c.G), inverseSRGBChannel(c.B))
}

func inverseSRGBChannel(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
