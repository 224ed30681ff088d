package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/sakura/config"
)

// NoiseParams controls the FBM used for the fallback displacement texture.
type NoiseParams struct {
	Size       int
	Scale      float64
	Octaves    int
	Lacunarity float64
	Gain       float64
	Seed       int64
}

// NoiseParamsFromConfig converts the noise config section.
func NoiseParamsFromConfig(c config.NoiseConfig) NoiseParams {
	return NoiseParams{
		Size:       c.Size,
		Scale:      c.Scale,
		Octaves:    c.Octaves,
		Lacunarity: c.Lacunarity,
		Gain:       c.Gain,
		Seed:       c.Seed,
	}
}

// GenerateDisplacement fills a Size*Size grid with tileable FBM noise in [0,1].
// The vertex shader only samples the red channel, so a single channel is enough.
// Tiling comes from sampling a torus in 4D, which keeps the texture seamless
// under the shader's repeating uv lookups.
func GenerateDisplacement(p NoiseParams) []float32 {
	size := p.Size
	if size <= 0 {
		return nil
	}
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}

	noise := opensimplex.NewNormalized(p.Seed)
	grid := make([]float32, size*size)

	for y := 0; y < size; y++ {
		v := (float64(y) + 0.5) / float64(size)
		for x := 0; x < size; x++ {
			u := (float64(x) + 0.5) / float64(size)

			sum := 0.0
			norm := 0.0
			amp := 1.0
			freq := p.Scale
			for o := 0; o < octaves; o++ {
				sum += amp * torusSample(noise, u, v, freq)
				norm += amp
				freq *= p.Lacunarity
				amp *= p.Gain
			}
			grid[y*size+x] = clamp01(float32(sum / norm))
		}
	}
	return grid
}

// torusSample maps (u, v) onto two circles so the result wraps in both axes.
func torusSample(noise opensimplex.Noise, u, v, freq float64) float64 {
	r := freq / (2 * math.Pi)
	a := u * 2 * math.Pi
	b := v * 2 * math.Pi
	return noise.Eval4(r*math.Cos(a), r*math.Sin(a), r*math.Cos(b), r*math.Sin(b))
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
