package image

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 128, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
}

func TestLoadLDR_DimensionsAndPixelCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, path)

	tex, err := LoadLDR(path, true)
	if err != nil {
		t.Fatalf("LoadLDR: %v", err)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Errorf("got %dx%d, want 2x2", tex.Width, tex.Height)
	}
	if len(tex.Pixels) != 4 {
		t.Errorf("got %d pixels, want 4", len(tex.Pixels))
	}
}

func TestLoadLDR_LinearSkipsGammaDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, path)

	tex, err := LoadLDR(path, true)
	if err != nil {
		t.Fatalf("LoadLDR: %v", err)
	}
	white := tex.Eval([2]float64{0.25, 0.25})
	if math.Abs(white.R-1) > 1e-3 {
		t.Errorf("linear white channel = %v, want ~1", white.R)
	}
}

func TestLoadLDR_NonLinearAppliesInverseSRGB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, path)

	tex, err := LoadLDR(path, false)
	if err != nil {
		t.Fatalf("LoadLDR: %v", err)
	}
	// The red texel's sRGB channel value (128/255) decodes to well below
	// 0.5 in linear light, per the inverse-sRGB transfer curve.
	red := tex.Eval([2]float64{0.75, 0.25})
	if red.R >= 0.5 {
		t.Errorf("decoded red channel = %v, want < 0.5 after inverse-sRGB", red.R)
	}
}

func TestInverseSRGBChannel_MapsEndpointsToThemselves(t *testing.T) {
	if v := inverseSRGBChannel(0); v != 0 {
		t.Errorf("inverseSRGBChannel(0) = %v, want 0", v)
	}
	if v := inverseSRGBChannel(1); math.Abs(v-1) > 1e-9 {
		t.Errorf("inverseSRGBChannel(1) = %v, want 1", v)
	}
}
