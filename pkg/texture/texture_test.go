package texture

import (
	"testing"

	"github.com/dlaurent/photonforge/pkg/pfmath"
)

func TestCheckerboard_Alternates(t *testing.T) {
	c := NewCheckerboard(pfmath.Black, pfmath.White, 2, 2)
	if c.Eval([2]float64{0.1, 0.1}) != pfmath.White {
		t.Error("expected even cell to be white")
	}
	if c.Eval([2]float64{0.6, 0.1}) != pfmath.Black {
		t.Error("expected odd cell to be black")
	}
}

func TestImage_BilinearMatchesTexelAtCenter(t *testing.T) {
	px := []pfmath.RGB{
		pfmath.NewRGB(0, 0, 0), pfmath.NewRGB(1, 0, 0),
		pfmath.NewRGB(0, 1, 0), pfmath.NewRGB(1, 1, 0),
	}
	img := NewImage(2, 2, px)
	got := img.Eval([2]float64{0.75, 0.25})
	want := pfmath.NewRGB(1, 0, 0)
	if got.Sub(want).Luminance() > 1e-9 {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestImage_ClampBorder(t *testing.T) {
	img := NewImage(1, 1, []pfmath.RGB{pfmath.NewRGB(0.5, 0.5, 0.5)})
	got := img.Eval([2]float64{2, -2})
	if got != pfmath.NewRGB(0.5, 0.5, 0.5) {
		t.Errorf("clamp border should return the single texel, got %+v", got)
	}
}
