package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sakura/config"
)

func testConfig() config.CameraConfig {
	return config.CameraConfig{Fovy: 115, Near: 0.1, Far: 1000, Z: 5}
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, testConfig())

	if cam.Position != (mgl32.Vec3{0, 0, 5}) {
		t.Errorf("expected camera at (0, 0, 5), got %v", cam.Position)
	}
	if math.Abs(float64(cam.Aspect()-1280.0/720.0)) > 1e-6 {
		t.Errorf("expected aspect 1.777, got %f", cam.Aspect())
	}
}

func TestNewGuardsEmptyViewport(t *testing.T) {
	cam := New(0, 0, testConfig())
	if cam.ViewportW <= 0 || cam.ViewportH <= 0 {
		t.Errorf("viewport not guarded: %fx%f", cam.ViewportW, cam.ViewportH)
	}
}

func TestResize(t *testing.T) {
	cam := New(1280, 720, testConfig())

	cam.Resize(800, 800)
	if cam.Aspect() != 1 {
		t.Errorf("aspect after resize = %v, want 1", cam.Aspect())
	}

	cam.Resize(0, 0)
	if cam.ViewportW != 800 || cam.ViewportH != 800 {
		t.Errorf("minimized resize changed viewport to %vx%v", cam.ViewportW, cam.ViewportH)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, testConfig())

	// The look-at target maps to screen center
	sx, sy, ok := cam.WorldToScreen(mgl32.Vec3{0, 0, 0})
	if !ok {
		t.Fatal("origin should be in front of the camera")
	}
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestWorldToScreenAxes(t *testing.T) {
	cam := New(1280, 720, testConfig())

	right, _, _ := cam.WorldToScreen(mgl32.Vec3{1, 0, 0})
	if right <= 640 {
		t.Errorf("+X should land right of center, got x=%f", right)
	}
	_, up, _ := cam.WorldToScreen(mgl32.Vec3{0, 1, 0})
	if up >= 360 {
		t.Errorf("+Y should land above center, got y=%f", up)
	}
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	cam := New(1280, 720, testConfig())
	if _, _, ok := cam.WorldToScreen(mgl32.Vec3{0, 0, 10}); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestVisibleHeightMatchesProjection(t *testing.T) {
	cam := New(1280, 720, testConfig())

	// A point at the top edge of the view at z=0 projects to screen row 0
	h := cam.VisibleHeight(5)
	_, sy, ok := cam.WorldToScreen(mgl32.Vec3{0, h / 2, 0})
	if !ok {
		t.Fatal("expected point to project")
	}
	if math.Abs(float64(sy)) > 0.5 {
		t.Errorf("expected top edge at y=0, got %f", sy)
	}
}

func TestWorldSizeForPixels(t *testing.T) {
	cam := New(1280, 720, testConfig())

	size := cam.WorldSizeForPixels(9, mgl32.Vec3{0, 0, 0})
	want := 9 * cam.VisibleHeight(5) / 720
	if math.Abs(float64(size-want)) > 1e-5 {
		t.Errorf("expected %f, got %f", want, size)
	}

	// Farther points need a larger world size for the same pixel footprint
	far := cam.WorldSizeForPixels(9, mgl32.Vec3{0, 0, -5})
	if far <= size {
		t.Errorf("expected far size > near size, got %f <= %f", far, size)
	}
}

func TestBackToFront(t *testing.T) {
	cam := New(1280, 720, testConfig())

	points := []mgl32.Vec3{
		{0, 0, 0},  // 5 away
		{0, 0, -6}, // 11 away
		{0, 0, 4},  // 1 away
		{0, 0, 0},  // tie with 0
	}
	got := cam.BackToFront(points)
	want := []int{1, 0, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	if len(cam.BackToFront(nil)) != 0 {
		t.Error("expected empty order for no points")
	}
}
