package renderer

import (
	"image"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// LoadTexture loads an image file as a texture. A missing or unreadable file
// logs a warning and uploads fallback instead, so the frame loop never stops
// on assets.
//
// Images are flipped vertically on load so v = 1 is the top row, the layout
// the plane geometry and shaders expect.
func LoadTexture(path string, fallback image.Image) rl.Texture2D {
	img := loadImage(path)
	if img == nil {
		slog.Warn("texture unavailable, using fallback", "path", path)
		img = rl.NewImageFromImage(fallback)
	}
	defer rl.UnloadImage(img)

	rl.ImageFlipVertical(img)
	tex := rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}

// TextureFromImage uploads an in-memory image with the same orientation as
// LoadTexture.
func TextureFromImage(src image.Image) rl.Texture2D {
	img := rl.NewImageFromImage(src)
	defer rl.UnloadImage(img)

	rl.ImageFlipVertical(img)
	tex := rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}

func loadImage(path string) *rl.Image {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	img := rl.LoadImage(path)
	if img == nil || img.Data == nil || img.Width == 0 {
		return nil
	}
	return img
}
