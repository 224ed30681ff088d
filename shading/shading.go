// Package shading holds the GLSL sources of the template material and a CPU
// mirror of their math. The mirror lets the displacement and colouring rules be
// tested without a GL context.
package shading

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed glsl/instance.vs
var InstanceVertexShader string

//go:embed glsl/instance.fs
var InstanceFragmentShader string

// Constants baked into the instance vertex shader.
const (
	NoiseIntensity = 0.5
	NoiseSpeed     = 0.2
	TimeSpeed      = 0.5
	TimePeriod     = 4.0 * 3.33333
	NoiseUVScale   = 10.0
	PositionW      = 2.0
)

// InstanceOffset is the uv offset every instance applies before sampling noise.
var InstanceOffset = mgl32.Vec2{1, 2}

// Sampler returns the red channel of a texture at uv.
type Sampler func(uv mgl32.Vec2) float32

// DisplaceVertex mirrors the instance vertex shader up to the model transform.
func DisplaceVertex(pos mgl32.Vec3, uv mgl32.Vec2, t float32, noise Sampler) mgl32.Vec3 {
	newY := pos.Y()
	newZ := sin(t) + pos.Z()

	sampleUV := uv.Add(InstanceOffset).Mul(NoiseUVScale)
	newY += noise(sampleUV) * NoiseIntensity

	timeOffset := Mod(t*TimeSpeed, TimePeriod)
	newY += timeOffset * NoiseSpeed

	return mgl32.Vec3{pos.X(), newY, newZ}
}

// WorldPosition applies the model matrix with the shader's w of 2.0.
func WorldPosition(model mgl32.Mat4, displaced mgl32.Vec3) mgl32.Vec4 {
	return model.Mul4x1(displaced.Vec4(PositionW))
}

// ClipPosition runs the full vertex stage.
func ClipPosition(projection, view, model mgl32.Mat4, pos mgl32.Vec3, uv mgl32.Vec2, t float32, noise Sampler) mgl32.Vec4 {
	world := WorldPosition(model, DisplaceVertex(pos, uv, t, noise))
	return projection.Mul4(view).Mul4x1(world)
}

// PetalColor is the time-varying hue computed by the fragment shader.
func PetalColor(t float32) mgl32.Vec3 {
	return mgl32.Vec3{1, 0.5 + 0.5*sin(t), 0.8}
}

// WindAlpha is the wind-swayed alpha mask computed by the fragment shader.
func WindAlpha(uv mgl32.Vec2, t float32) float32 {
	const particleSize = 0.02
	const windIntensity = 0.1
	wind := sin(uv.Y()*10+t) * windIntensity
	center := mgl32.Vec2{0.5 + wind, 0.5}
	return Smoothstep(0, particleSize, 1-uv.Sub(center).Len())
}

// FragmentColor mirrors the fragment shader. The shader overwrites the petal
// colour and wind alpha with the texel, so the output is the texture sample.
func FragmentColor(texel mgl32.Vec4) mgl32.Vec4 {
	return texel
}

// PetalGradient mixes the two petal colours by height, like the point shader.
// GLSL mix does not clamp the factor.
func PetalGradient(c1, c2 mgl32.Vec3, y float32) mgl32.Vec3 {
	f := (y + 0.5) / 1.0
	return c1.Mul(1 - f).Add(c2.Mul(f))
}

// ParseHexColor parses "#rrggbb" into a 0-1 colour.
func ParseHexColor(s string) (mgl32.Vec3, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return mgl32.Vec3{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("color %q: %w", s, err)
	}
	return mgl32.Vec3{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// RGBA converts a colour to 8-bit channels, clamping each to [0,1] as the
// framebuffer does.
func RGBA(c mgl32.Vec3, alpha float32) color.RGBA {
	return color.RGBA{R: unorm8(c.X()), G: unorm8(c.Y()), B: unorm8(c.Z()), A: unorm8(alpha)}
}

func unorm8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// ClampSampler samples a size*size single-channel grid with nearest filtering
// and clamp-to-edge wrapping, matching the displacement texture setup.
// Row 0 is v = 0.
func ClampSampler(grid []float32, size int) Sampler {
	return func(uv mgl32.Vec2) float32 {
		if size <= 0 || len(grid) < size*size {
			return 0
		}
		x := clampIndex(uv.X(), size)
		y := clampIndex(uv.Y(), size)
		return grid[y*size+x]
	}
}

func clampIndex(c float32, size int) int {
	i := int(math.Floor(float64(c * float32(size))))
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

// Mod is GLSL mod: x - y*floor(x/y).
func Mod(x, y float32) float32 {
	return x - y*float32(math.Floor(float64(x/y)))
}

// Smoothstep is GLSL smoothstep.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}
