package xmlscene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dlaurent/photonforge/pkg/bsdf"
	"github.com/dlaurent/photonforge/pkg/registry"
	"github.com/dlaurent/photonforge/pkg/shape"
	"github.com/dlaurent/photonforge/pkg/texture"
)

func writeTestTexturePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
}

func TestLoad_BitmapTextureFeedsNestedBSDFReflectance(t *testing.T) {
	dir := t.TempDir()
	texPath := filepath.Join(dir, "albedo.png")
	writeTestTexturePNG(t, texPath)

	scenePath := writeScene(t, dir, "scene.xml", `<scene>
		<object category="camera" type="perspective">
			<float name="fov" value="40"/>
		</object>
		<object category="light" type="point">
			<vector name="position" value="0 5 0"/>
			<color name="power" value="200 200 200"/>
		</object>
		<object category="shape" type="sphere">
			<object name="bsdf" category="bsdf" type="diffuse">
				<object name="reflectance" category="texture" type="bitmap">
					<string name="filename" value="`+texPath+`"/>
					<bool name="linear" value="true"/>
				</object>
			</object>
		</object>
	</scene>`)

	sc, err := Load(scenePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	inst, ok := sc.TopShape.(*shape.Instance)
	if !ok {
		t.Fatalf("expected TopShape to be a *shape.Instance for a single-shape scene, got %T", sc.TopShape)
	}
	diffuse, ok := inst.BSDF.(*bsdf.Diffuse)
	if !ok {
		t.Fatalf("expected a *bsdf.Diffuse, got %T", inst.BSDF)
	}
	if _, ok := diffuse.Reflectance.(*texture.Image); !ok {
		t.Errorf("expected reflectance to be a *texture.Image loaded from the PNG, got %T", diffuse.Reflectance)
	}
}

func TestBuildBitmapTexture_MissingFilenameErrors(t *testing.T) {
	props := registry.NewProperties()
	if _, err := buildBitmapTexture(props); err == nil {
		t.Error("expected an error when filename is missing")
	}
}
