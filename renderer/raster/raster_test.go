package raster

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestTextDrawsGlyphs(t *testing.T) {
	img := Text("Welcome my Page!", FallbackFace(), color.White)

	b := img.Bounds()
	// Face7x13 advances 7 pixels per rune
	if b.Dx() != 16*7+2 {
		t.Errorf("width = %d, want %d", b.Dx(), 16*7+2)
	}
	if b.Dy() < 13 {
		t.Errorf("height = %d, want >= 13", b.Dy())
	}

	lit := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no glyph pixels drawn")
	}

	// Margin stays transparent
	for x := b.Min.X; x < b.Max.X; x++ {
		if img.NRGBAAt(x, 0).A != 0 {
			t.Fatalf("top margin pixel %d is drawn", x)
		}
	}
}

func TestTextEmpty(t *testing.T) {
	img := Text("", FallbackFace(), color.White)
	if img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
		t.Errorf("empty text produced %v", img.Bounds())
	}
}

func TestLoadFaceErrors(t *testing.T) {
	if _, err := LoadFace(filepath.Join(t.TempDir(), "missing.ttf"), 32); err == nil {
		t.Error("expected error for missing file")
	}

	// A three.js typeface JSON is not an OpenType font
	path := filepath.Join(t.TempDir(), "helvetiker_regular.typeface.json")
	if err := os.WriteFile(path, []byte(`{"glyphs":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFace(path, 32); err == nil {
		t.Error("expected parse error for non-font file")
	}
}

func TestDisplacement(t *testing.T) {
	grid := []float32{0, 0.5, 1, 2}
	img := Displacement(grid, 2)

	want := []uint8{0, 128, 255, 255}
	for i, w := range want {
		if got := img.GrayAt(i%2, i/2).Y; got != w {
			t.Errorf("pixel %d = %d, want %d", i, got, w)
		}
	}
}

func TestDisplacementShortGrid(t *testing.T) {
	img := Displacement([]float32{1}, 4)
	if img.Bounds().Dx() != 4 {
		t.Fatalf("size = %v", img.Bounds())
	}
	if img.GrayAt(0, 0).Y != 0 {
		t.Error("short grid should leave image black")
	}
}

func TestSolid(t *testing.T) {
	img := Solid(0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if img.Bounds().Dx() != 1 {
		t.Fatalf("size = %v, want 1x1", img.Bounds())
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}
