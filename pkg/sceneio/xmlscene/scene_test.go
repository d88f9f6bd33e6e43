package xmlscene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dlaurent/photonforge/pkg/shape"
)

func writeScene(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoad_CameraShapeAndLightAssemble(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "scene.xml", `<scene>
		<object category="camera" type="perspective">
			<vector name="origin" value="0 0 4"/>
			<vector name="lookAt" value="0 0 0"/>
			<float name="fov" value="40"/>
		</object>
		<object category="light" type="point">
			<vector name="position" value="0 5 0"/>
			<color name="power" value="200 200 200"/>
		</object>
		<object category="shape" type="sphere">
			<transform>
				<scale value="1.5"/>
			</transform>
			<object name="bsdf" category="bsdf" type="diffuse">
				<color name="reflectance" value="0.5 0.5 0.5"/>
			</object>
		</object>
	</scene>`)

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Camera == nil {
		t.Error("expected a camera")
	}
	if sc.TopShape == nil {
		t.Error("expected a top shape")
	}
	if len(sc.Lights) != 1 {
		t.Errorf("got %d lights, want 1", len(sc.Lights))
	}
	if sc.BackgroundLight != nil {
		t.Error("expected no background light")
	}
}

func TestLoad_EmissiveShapeBecomesAreaLight(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "scene.xml", `<scene>
		<object category="camera" type="perspective">
			<vector name="origin" value="0 0 4"/>
		</object>
		<object category="shape" type="sphere">
			<object name="bsdf" category="bsdf" type="diffuse"/>
			<object name="emission" category="texture" type="constant">
				<color name="color" value="10 10 10"/>
			</object>
		</object>
	</scene>`)

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Lights) != 1 {
		t.Fatalf("got %d lights, want 1 (the area light from the emissive shape)", len(sc.Lights))
	}
	if sc.Lights[0].CanBeIntersected() {
		t.Error("area light should report CanBeIntersected() == false; only background lights return true")
	}
}

func TestLoad_MultipleShapesAutoWrapInGroup(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "scene.xml", `<scene>
		<object category="camera" type="perspective">
			<vector name="origin" value="0 0 4"/>
		</object>
		<object category="shape" type="sphere">
			<transform><translate x="-1" y="0" z="0"/></transform>
		</object>
		<object category="shape" type="sphere">
			<transform><translate x="1" y="0" z="0"/></transform>
		</object>
	</scene>`)

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.TopShape == nil {
		t.Fatal("expected a top shape")
	}
	if _, ok := sc.TopShape.(*shape.Group); !ok {
		t.Errorf("expected TopShape to be a *shape.Group for a two-shape scene, got %T", sc.TopShape)
	}
}

func TestLoad_IncludeIsResolved(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, dir, "light.xml", `<scene>
		<object category="light" type="point">
			<vector name="position" value="0 5 0"/>
		</object>
	</scene>`)
	path := writeScene(t, dir, "scene.xml", `<scene>
		<object category="camera" type="perspective">
			<vector name="origin" value="0 0 4"/>
		</object>
		<include filename="light.xml"/>
	</scene>`)

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Lights) != 1 {
		t.Errorf("got %d lights, want 1 from the included file", len(sc.Lights))
	}
}

func TestLoad_RefReusesNamedObject(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "scene.xml", `<scene>
		<object category="camera" type="perspective">
			<vector name="origin" value="0 0 4"/>
		</object>
		<object category="bsdf" type="diffuse" id="shared">
			<color name="reflectance" value="0.2 0.2 0.2"/>
		</object>
		<object category="shape" type="sphere">
			<ref id="shared" name="bsdf"/>
		</object>
	</scene>`)

	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoad_MissingCameraErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "scene.xml", `<scene>
		<object category="shape" type="sphere"/>
	</scene>`)

	if _, err := Load(path); err == nil {
		t.Error("expected an error for a scene with no camera")
	}
}
