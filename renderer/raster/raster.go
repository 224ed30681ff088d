// Package raster draws CPU-side images that the renderer uploads as textures.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace parses a TTF/OTF file into a face of the given pixel size.
func LoadFace(path string, pixelSize float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    pixelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face: %w", err)
	}
	return face, nil
}

// FallbackFace is the built-in bitmap face used when no font file loads.
func FallbackFace() font.Face {
	return basicfont.Face7x13
}

// Text renders a single line onto a transparent image sized to the text.
// The image has a one pixel margin on every side.
func Text(content string, face font.Face, col color.Color) *image.NRGBA {
	metrics := face.Metrics()
	width := font.MeasureString(face, content).Ceil() + 2
	height := (metrics.Ascent + metrics.Descent).Ceil() + 2
	if width < 1 {
		width = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(1), Y: metrics.Ascent + fixed.I(1)},
	}
	d.DrawString(content)
	return img
}

// Displacement converts a size*size grid of [0,1] values into a grayscale image.
// Row 0 of the grid becomes the top row of the image.
func Displacement(grid []float32, size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	if len(grid) < size*size {
		return img
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := grid[y*size+x]
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

// Solid returns a size x size image filled with col.
func Solid(size int, col color.Color) *image.NRGBA {
	if size < 1 {
		size = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	return img
}
