// Package image implements the float-linear EXR output/input and the
// LDR texture input from spec §6: OpenEXR via go-openexr for render
// output and HDRI input, PNG/JPEG via the standard library (with
// inverse-sRGB decode) for ordinary texture maps. Grounded on
// pkg/loaders/image.go's PNG/JPEG-to-Vec3 conversion for the LDR path;
// the EXR path has no analog there, so it is grounded on
// other_examples/FreakyLittleDawg-go-openexr's FrameBuffer/Slice/Header
// surface instead.
package image

import (
	"fmt"

	exr "github.com/mrjoshuak/go-openexr/exr"

	"github.com/dlaurent/photonforge/pkg/pfmath"
)

// SaveEXR writes a linear-RGB float image, the render output format spec
// §6 names.
func SaveEXR(path string, width, height int, pixels []pfmath.RGB) error {
	if len(pixels) != width*height {
		return fmt.Errorf("image: SaveEXR got %d pixels for a %dx%d image", len(pixels), width, height)
	}

	dataWindow := exr.Box2i{Min: exr.V2i{X: 0, Y: 0}, Max: exr.V2i{X: int32(width - 1), Y: int32(height - 1)}}
	header := exr.NewHeader(dataWindow)
	header.Channels().Insert("R", exr.PixelTypeFloat)
	header.Channels().Insert("G", exr.PixelTypeFloat)
	header.Channels().Insert("B", exr.PixelTypeFloat)

	fb := exr.NewFrameBuffer(width, height)
	fb.Insert("R", exr.PixelTypeFloat)
	fb.Insert("G", exr.PixelTypeFloat)
	fb.Insert("B", exr.PixelTypeFloat)

	rSlice, gSlice, bSlice := fb.Get("R"), fb.Get("G"), fb.Get("B")
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x]
			rSlice.SetFloat32(x, y, float32(c.R))
			gSlice.SetFloat32(x, y, float32(c.G))
			bSlice.SetFloat32(x, y, float32(c.B))
		}
	}

	writer, err := exr.NewScanlineWriter(path, header)
	if err != nil {
		return fmt.Errorf("image: opening %s for write: %w", path, err)
	}
	defer writer.Close()

	writer.SetFrameBuffer(fb)
	if err := writer.WritePixels(height); err != nil {
		return fmt.Errorf("image: writing %s: %w", path, err)
	}
	return nil
}

// LoadEXR reads a linear-RGB float image back, used for environment-map
// HDRI textures (spec §4.5's EnvironmentMap radiance source).
func LoadEXR(path string) (width, height int, pixels []pfmath.RGB, err error) {
	reader, err := exr.NewScanlineReader(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("image: opening %s: %w", path, err)
	}
	defer reader.Close()

	dw := reader.Header().DataWindow()
	width = int(dw.Width()) + 1
	height = int(dw.Height()) + 1

	fb := exr.NewFrameBuffer(width, height)
	fb.Insert("R", exr.PixelTypeFloat)
	fb.Insert("G", exr.PixelTypeFloat)
	fb.Insert("B", exr.PixelTypeFloat)
	reader.SetFrameBuffer(fb)

	if err := reader.ReadPixels(int(dw.Min.Y), int(dw.Max.Y)); err != nil {
		return 0, 0, nil, fmt.Errorf("image: reading %s: %w", path, err)
	}

	rSlice, gSlice, bSlice := fb.Get("R"), fb.Get("G"), fb.Get("B")
	pixels = make([]pfmath.RGB, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels[y*width+x] = pfmath.NewRGB(
				float64(rSlice.GetFloat32(x, y)),
				float64(gSlice.GetFloat32(x, y)),
				float64(bSlice.GetFloat32(x, y)),
			)
		}
	}
	return width, height, pixels, nil
}
