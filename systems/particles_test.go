package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestSpawnPetals(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f := NewPetalField(800, rng, DefaultPetalParams())

	if f.Count() != 800 {
		t.Fatalf("Count() = %d, want 800", f.Count())
	}
	if len(f.Positions()) != 2400 || len(f.Velocities()) != 2400 {
		t.Fatalf("buffer lengths = %d/%d, want 2400", len(f.Positions()), len(f.Velocities()))
	}

	for i := 0; i < f.Count(); i++ {
		x, y, z := f.Position(i)
		vx, vy, vz := f.Velocity(i)

		if vy >= 0 {
			t.Errorf("petal %d: vy = %v, want < 0", i, vy)
		}
		if vy > -0.01 || vy < -0.03 {
			t.Errorf("petal %d: vy = %v, want in [-0.03, -0.01]", i, vy)
		}
		if vx != 0 {
			t.Errorf("petal %d: vx = %v, want 0", i, vx)
		}
		if vz != float32(0.005) {
			t.Errorf("petal %d: vz = %v, want 0.005", i, vz)
		}
		if x < -10 || x >= 10 {
			t.Errorf("petal %d: x = %v, want in [-10, 10)", i, x)
		}
		if y < -2.5 || y >= 2.5 {
			t.Errorf("petal %d: y = %v, want in [-2.5, 2.5)", i, y)
		}
		if math.Abs(float64(z)) > 2 {
			t.Errorf("petal %d: z = %v, want |z| <= 2", i, z)
		}
	}
}

func TestSpawnZFollowsAngleWave(t *testing.T) {
	// Every 100th petal sits on a zero of sin(i/200 * 2pi)
	f := NewPetalField(401, rand.New(rand.NewSource(7)), DefaultPetalParams())
	for _, i := range []int{0, 100, 200, 300, 400} {
		_, _, z := f.Position(i)
		if math.Abs(float64(z)) > 1e-5 {
			t.Errorf("petal %d: z = %v, want ~0", i, z)
		}
	}
}

func TestSpawnIsDeterministicPerSeed(t *testing.T) {
	a := NewPetalField(50, rand.New(rand.NewSource(99)), DefaultPetalParams())
	b := NewPetalField(50, rand.New(rand.NewSource(99)), DefaultPetalParams())
	for i, v := range a.Positions() {
		if b.Positions()[i] != v {
			t.Fatalf("position[%d] differs between identical seeds: %v vs %v", i, v, b.Positions()[i])
		}
	}
}

func TestAdvanceAddsVelocity(t *testing.T) {
	f := NewPetalField(800, rand.New(rand.NewSource(1)), DefaultPetalParams())
	before := append([]float32(nil), f.Positions()...)

	f.Advance()

	params := f.Params()
	for i := 0; i < f.Count(); i++ {
		vx, vy, vz := f.Velocity(i)
		x, y, z := f.Position(i)

		wantY := before[3*i+1] + vy
		if wantY < params.Floor {
			wantY = params.Ceiling
		}
		if y != wantY {
			t.Errorf("petal %d: y = %v, want %v", i, y, wantY)
		}
		if x != before[3*i]+vx {
			t.Errorf("petal %d: x = %v, want %v", i, x, before[3*i]+vx)
		}
		if z != before[3*i+2]+vz {
			t.Errorf("petal %d: z = %v, want %v", i, z, before[3*i+2]+vz)
		}
	}
}

func TestAdvanceRecyclesBelowFloor(t *testing.T) {
	f, err := NewPetalFieldFromBuffers(
		[]float32{1.5, -5.01, -0.75},
		[]float32{0, -0.01, 0},
		DefaultPetalParams(),
	)
	if err != nil {
		t.Fatal(err)
	}

	f.Advance()

	x, y, z := f.Position(0)
	if y != 5 {
		t.Errorf("y = %v, want 5 after recycling", y)
	}
	if f.Recycled() != 1 {
		t.Errorf("Recycled() = %d, want 1", f.Recycled())
	}
	if x != 1.5 || z != -0.75 {
		t.Errorf("x, z = %v, %v, want 1.5, -0.75 unchanged", x, z)
	}
}

func TestAdvanceDoesNotRecycleAtFloor(t *testing.T) {
	// The rule is strictly "below": landing exactly on the floor keeps the petal
	f, err := NewPetalFieldFromBuffers([]float32{0, -4.5, 0}, []float32{0, -0.5, 0}, DefaultPetalParams())
	if err != nil {
		t.Fatal(err)
	}
	f.Advance()
	if _, y, _ := f.Position(0); y != -5 {
		t.Errorf("y = %v, want -5", y)
	}
	if f.Recycled() != 0 {
		t.Errorf("Recycled() = %d, want 0", f.Recycled())
	}
}

func TestAdvanceLeavesLateralDriftUnbounded(t *testing.T) {
	f, err := NewPetalFieldFromBuffers(
		[]float32{9, 0, 0},
		[]float32{0.25, -0.5, 0.125},
		DefaultPetalParams(),
	)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		f.Advance()
	}

	x, y, z := f.Position(0)
	if x != 259 {
		t.Errorf("x = %v, want 259 (no lateral bound)", x)
	}
	if z != 125 {
		t.Errorf("z = %v, want 125 (no depth bound)", z)
	}
	if y < -5 || y > 5 {
		t.Errorf("y = %v, want inside the recycle band", y)
	}
}

func TestZeroAdvancesKeepSpawnBuffer(t *testing.T) {
	f := NewPetalField(10, rand.New(rand.NewSource(5)), DefaultPetalParams())
	want := append([]float32(nil), f.Positions()...)

	// Reading and clearing state must not move anything
	f.Dirty()
	f.ClearDirty()
	for i := 0; i < f.Count(); i++ {
		f.Position(i)
		f.Velocity(i)
	}
	_ = f.Params()
	_ = f.Velocities()

	if f.Recycled() != 0 {
		t.Errorf("Recycled() = %d, want 0", f.Recycled())
	}
	for i, v := range f.Positions() {
		if v != want[i] {
			t.Fatalf("position[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestAdvanceEndToEnd(t *testing.T) {
	f, err := NewPetalFieldFromBuffers(
		[]float32{
			0, 1, 0,
			2, -4.5, 1,
			-3, 0, 0.5,
		},
		[]float32{
			0, -0.5, 0.25,
			0, -0.375, 0.5,
			1, -1, 0,
		},
		DefaultPetalParams(),
	)
	if err != nil {
		t.Fatal(err)
	}

	f.Advance()
	f.Advance()

	want := []float32{
		0, 0, 0.5,
		2, 5, 2, // fell to -5.25 on frame 2 and was recycled
		-1, -2, 0.5,
	}
	got := f.Positions()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("positions[%d] = %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestAdvanceSetsDirtyEveryFrame(t *testing.T) {
	f := NewPetalField(3, rand.New(rand.NewSource(3)), DefaultPetalParams())
	if !f.Dirty() {
		t.Error("freshly spawned field should be dirty")
	}

	for frame := 0; frame < 3; frame++ {
		f.ClearDirty()
		f.Advance()
		if !f.Dirty() {
			t.Errorf("frame %d: Dirty() = false after Advance", frame)
		}
	}
}

func TestAdvanceEmptyField(t *testing.T) {
	f := NewPetalField(0, rand.New(rand.NewSource(1)), DefaultPetalParams())
	f.Advance()
	if f.Count() != 0 || len(f.Positions()) != 0 {
		t.Errorf("empty field changed size: count %d", f.Count())
	}
}

func TestNewPetalFieldFromBuffersValidation(t *testing.T) {
	tests := []struct {
		name     string
		pos, vel []float32
	}{
		{"length mismatch", []float32{0, 0, 0}, []float32{0, 0}},
		{"not xyz", []float32{0, 0}, []float32{0, 0}},
		{"rising petal", []float32{0, 0, 0}, []float32{0, 0.01, 0}},
		{"motionless petal", []float32{0, 0, 0, 1, 1, 1}, []float32{0, -0.01, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPetalFieldFromBuffers(tt.pos, tt.vel, DefaultPetalParams()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewPetalFieldFromBuffersCopies(t *testing.T) {
	pos := []float32{0, 0, 0}
	f, err := NewPetalFieldFromBuffers(pos, []float32{0, -1, 0}, DefaultPetalParams())
	if err != nil {
		t.Fatal(err)
	}
	f.Advance()
	if pos[1] != 0 {
		t.Errorf("caller buffer mutated: %v", pos)
	}
}
