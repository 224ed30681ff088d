package systems

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/sakura/config"
)

// PetalParams controls how petals are spawned and recycled.
type PetalParams struct {
	SpreadX     float32 // x = (rand-0.5)*SpreadX
	SpreadY     float32 // y = (rand-0.5)*SpreadY
	AnglePeriod float32 // particles per full turn of the z wave
	RadiusMax   float32
	SpeedMin    float32
	SpeedRange  float32
	DriftZ      float32
	Floor       float32 // recycle when y < Floor
	Ceiling     float32 // recycled particles jump to this y
}

// DefaultPetalParams returns the stock petal rain: 20x5 spread, falling
// between 0.01 and 0.03 per frame, recycled from -5 to 5.
func DefaultPetalParams() PetalParams {
	return PetalParams{
		SpreadX:     20,
		SpreadY:     5,
		AnglePeriod: 200,
		RadiusMax:   2,
		SpeedMin:    0.01,
		SpeedRange:  0.02,
		DriftZ:      0.005,
		Floor:       -5,
		Ceiling:     5,
	}
}

// PetalParamsFromConfig converts the petals config section.
func PetalParamsFromConfig(c config.PetalsConfig) PetalParams {
	return PetalParams{
		SpreadX:     float32(c.SpreadX),
		SpreadY:     float32(c.SpreadY),
		AnglePeriod: float32(c.AnglePeriod),
		RadiusMax:   float32(c.RadiusMax),
		SpeedMin:    float32(c.SpeedMin),
		SpeedRange:  float32(c.SpeedRange),
		DriftZ:      float32(c.DriftZ),
		Floor:       float32(c.Floor),
		Ceiling:     float32(c.Ceiling),
	}
}

// PetalField owns a fixed number of falling petals stored as flat xyz buffers.
// Positions and velocities are index-aligned: particle i lives at [3i, 3i+3).
type PetalField struct {
	positions  []float32
	velocities []float32
	params     PetalParams
	dirty      bool
	recycled   int64
}

// NewPetalField spawns count petals.
func NewPetalField(count int, rng *rand.Rand, params PetalParams) *PetalField {
	if count < 0 {
		count = 0
	}
	f := &PetalField{
		positions:  make([]float32, 3*count),
		velocities: make([]float32, 3*count),
		params:     params,
	}

	for i := 0; i < count; i++ {
		var angle float64
		if params.AnglePeriod != 0 {
			angle = float64(i) / float64(params.AnglePeriod) * 2 * math.Pi
		}
		radius := rng.Float32() * params.RadiusMax

		x := (rng.Float32() - 0.5) * params.SpreadX
		y := (rng.Float32() - 0.5) * params.SpreadY
		z := float32(math.Sin(angle)) * radius

		speed := rng.Float32()*params.SpeedRange + params.SpeedMin

		f.positions[3*i] = x
		f.positions[3*i+1] = y
		f.positions[3*i+2] = z

		f.velocities[3*i] = 0
		f.velocities[3*i+1] = -speed
		f.velocities[3*i+2] = params.DriftZ
	}

	// The freshly spawned buffer has never been uploaded
	f.dirty = true
	return f
}

// NewPetalFieldFromBuffers builds a field from explicit buffers. The slices are copied.
func NewPetalFieldFromBuffers(positions, velocities []float32, params PetalParams) (*PetalField, error) {
	if len(positions) != len(velocities) {
		return nil, fmt.Errorf("buffer length mismatch: %d positions, %d velocities", len(positions), len(velocities))
	}
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("buffer length %d is not a multiple of 3", len(positions))
	}
	for i := 1; i < len(velocities); i += 3 {
		if velocities[i] >= 0 {
			return nil, fmt.Errorf("petal %d: velocity y = %v, must be negative", i/3, velocities[i])
		}
	}
	f := &PetalField{
		positions:  append([]float32(nil), positions...),
		velocities: append([]float32(nil), velocities...),
		params:     params,
		dirty:      true,
	}
	return f, nil
}

// Advance moves every petal by its velocity and recycles the ones that fell
// below the floor back to the ceiling. Only Y is reset; X and Z keep drifting.
func (f *PetalField) Advance() {
	if n := len(f.positions); n > 0 {
		pos := blas32.Vector{N: n, Inc: 1, Data: f.positions}
		vel := blas32.Vector{N: n, Inc: 1, Data: f.velocities}
		blas32.Axpy(1, vel, pos)

		for i := 1; i < n; i += 3 {
			if f.positions[i] < f.params.Floor {
				f.positions[i] = f.params.Ceiling
				f.recycled++
			}
		}
	}

	// Raised on every call, even for an empty field
	f.dirty = true
}

// Dirty reports whether positions changed since the renderer last consumed them.
func (f *PetalField) Dirty() bool {
	return f.dirty
}

// ClearDirty is called by the renderer after it consumed the position buffer.
func (f *PetalField) ClearDirty() {
	f.dirty = false
}

// Count returns the number of petals.
func (f *PetalField) Count() int {
	return len(f.positions) / 3
}

// Positions returns the live position buffer (xyz per petal).
func (f *PetalField) Positions() []float32 {
	return f.positions
}

// Velocities returns the live velocity buffer (xyz per petal).
func (f *PetalField) Velocities() []float32 {
	return f.velocities
}

// Position returns the position of petal i.
func (f *PetalField) Position(i int) (x, y, z float32) {
	return f.positions[3*i], f.positions[3*i+1], f.positions[3*i+2]
}

// Velocity returns the velocity of petal i.
func (f *PetalField) Velocity(i int) (vx, vy, vz float32) {
	return f.velocities[3*i], f.velocities[3*i+1], f.velocities[3*i+2]
}

// Recycled returns how many times any petal has been moved back to the ceiling.
func (f *PetalField) Recycled() int64 {
	return f.recycled
}

// Params returns the spawn and recycle parameters.
func (f *PetalField) Params() PetalParams {
	return f.params
}
