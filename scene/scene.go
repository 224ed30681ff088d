// Package scene owns the simulation context: the petal field, the placed
// instances, the shared material uniforms and the clock. One ordered frame
// task drives it: advance petals, update the time uniform, render.
package scene

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sakura/camera"
	"github.com/pthm-cable/sakura/components"
	"github.com/pthm-cable/sakura/config"
	"github.com/pthm-cable/sakura/systems"
	"github.com/pthm-cable/sakura/telemetry"
)

// Drawer renders a view of the scene. The raylib implementation lives in the
// renderer package; headless runs have none.
type Drawer interface {
	Draw(v *View)
	Unload()
}

// View is the read-only state handed to a Drawer each frame.
type View struct {
	Petals    *systems.PetalField
	Material  *systems.MaterialState
	Instances []components.Transform
	Camera    *camera.Camera

	Frame   int64
	Elapsed float64
	Seed    int64
	Perf    telemetry.PerfStats
}

// Options configures a new scene.
type Options struct {
	Config *config.Config

	// Seed for petal spawn, instance placement and material colour.
	// 0 picks a time-based seed.
	Seed int64

	// Viewport size in pixels, used by the camera
	Width, Height int

	// Resume from a saved snapshot instead of spawning fresh state
	Snapshot *telemetry.Snapshot

	// Output sink for CSV telemetry (nil disables)
	Output *telemetry.OutputManager

	// Drawer renders frames; nil runs headless
	Drawer Drawer

	// Now overrides the wall clock (tests)
	Now func() time.Time

	// PerfLog logs rolling frame timing every perf window
	PerfLog bool
}

// Scene holds the complete scene state.
type Scene struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	// ECS world holding the placed instances
	world  *ecs.World
	placer *systems.InstancePlacer

	petals    *systems.PetalField
	instances []components.Transform
	material  systems.MaterialState
	driver    systems.TimeDriver

	clock         *systems.Clock
	elapsedOffset float64 // scene time at resume
	resumedFrame  int64
	fixedDT       float64

	cam *camera.Camera

	// State
	frame   int64
	elapsed float64

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	perfLog   bool

	drawer Drawer
}

// NewScene creates the scene: material colour, petals and instances are
// drawn from one seeded source in that order.
func NewScene(opts Options) (*Scene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if opts.Snapshot != nil {
		seed = opts.Snapshot.RNGSeed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}

	world := ecs.NewWorld()
	s := &Scene{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		seed:      seed,
		world:     world,
		placer:    systems.NewInstancePlacer(world),
		driver:    systems.TimeDriver{Scale: cfg.Derived.TimeScale32},
		clock:     systems.NewClockWithSource(now),
		fixedDT:   1 / float64(fps),
		cam:       camera.New(float32(opts.Width), float32(opts.Height), cfg.Camera),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		output:    opts.Output,
		perfLog:   opts.PerfLog,
		drawer:    opts.Drawer,
	}

	if opts.Snapshot != nil {
		if err := s.restore(opts.Snapshot); err != nil {
			return nil, err
		}
	} else {
		s.spawn()
	}
	s.instances = s.placer.Transforms()

	// The first frame must upload every uniform
	s.material.Dirty = true

	slog.Info("scene created",
		"seed", s.seed,
		"petals", s.petals.Count(),
		"instances", len(s.instances),
		"headless", s.drawer == nil,
	)
	return s, nil
}

func (s *Scene) spawn() {
	s.material.Color = [3]float32{1, 1, s.rng.Float32()}
	s.petals = systems.NewPetalField(s.cfg.Petals.Count, s.rng, systems.PetalParamsFromConfig(s.cfg.Petals))

	bounds := components.Bounds{Min: s.cfg.Derived.InstanceMin, Max: s.cfg.Derived.InstanceMax}
	s.placer.Place(s.cfg.Instances.Count, bounds, s.rng)
}

func (s *Scene) restore(snap *telemetry.Snapshot) error {
	petals, err := systems.NewPetalFieldFromBuffers(snap.Positions, snap.Velocities, systems.PetalParamsFromConfig(s.cfg.Petals))
	if err != nil {
		return fmt.Errorf("restoring petals: %w", err)
	}
	s.petals = petals
	s.placer.Restore(snap.Instances)
	s.material.Color = [3]float32{1, 1, snap.ColorB}

	s.frame = snap.Frame
	s.elapsed = snap.Elapsed
	s.elapsedOffset = snap.Elapsed
	s.resumedFrame = snap.Frame
	s.collector.Resume(snap.Elapsed)
	return nil
}

// Frame returns the number of completed frame tasks.
func (s *Scene) Frame() int64 {
	return s.frame
}

// Elapsed returns scene time in seconds at the last step.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Seed returns the seed the scene was built from.
func (s *Scene) Seed() int64 {
	return s.seed
}

// Petals returns the petal field.
func (s *Scene) Petals() *systems.PetalField {
	return s.petals
}

// Material returns the shared material uniforms.
func (s *Scene) Material() *systems.MaterialState {
	return &s.material
}

// Instances returns the placed instance transforms in insertion order.
func (s *Scene) Instances() []components.Transform {
	return s.instances
}

// Camera returns the scene camera.
func (s *Scene) Camera() *camera.Camera {
	return s.cam
}

// PerfStats returns the rolling frame timing.
func (s *Scene) PerfStats() telemetry.PerfStats {
	return s.perf.Stats()
}

// Snapshot captures the state needed to resume this scene.
func (s *Scene) Snapshot() *telemetry.Snapshot {
	return &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RNGSeed:    s.seed,
		RunID:      s.output.RunID(),
		Frame:      s.frame,
		Elapsed:    s.elapsed,
		Positions:  append([]float32(nil), s.petals.Positions()...),
		Velocities: append([]float32(nil), s.petals.Velocities()...),
		Instances:  append([]components.Transform(nil), s.instances...),
		ColorB:     s.material.Color[2],
	}
}
