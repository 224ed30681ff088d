// Package config provides configuration loading and access for the scene.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Camera     CameraConfig     `yaml:"camera"`
	Background BackgroundConfig `yaml:"background"`
	Text       TextConfig       `yaml:"text"`
	Petals     PetalsConfig     `yaml:"petals"`
	Instances  InstancesConfig  `yaml:"instances"`
	Material   MaterialConfig   `yaml:"material"`
	Noise      NoiseConfig      `yaml:"noise"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// Width or height of 0 means "ask the display server at startup".
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// CameraConfig holds the perspective camera parameters.
type CameraConfig struct {
	Fovy  float64 `yaml:"fovy"` // vertical field of view in degrees
	Near  float64 `yaml:"near"`
	Far   float64 `yaml:"far"`
	Z     float64 `yaml:"z"`     // camera distance along +Z, looking at the origin
	Clear [4]int  `yaml:"clear"` // RGBA clear colour, 0-255
}

// BackgroundConfig holds the background plane settings.
type BackgroundConfig struct {
	Image string  `yaml:"image"`
	Size  float64 `yaml:"size"` // side length of the square plane
}

// TextConfig holds the floating text settings.
type TextConfig struct {
	Content   string     `yaml:"content"`
	Font      string     `yaml:"font"`       // TTF/OTF path; empty or unreadable = built-in bitmap face
	Size      float64    `yaml:"size"`       // world-space height of the text quad
	PixelSize float64    `yaml:"pixel_size"` // rasterization size in points
	Color     [3]float64 `yaml:"color"`
}

// PetalsConfig holds the falling petal particle parameters.
type PetalsConfig struct {
	Count       int     `yaml:"count"`
	SpreadX     float64 `yaml:"spread_x"`     // x = (rand-0.5)*spread_x
	SpreadY     float64 `yaml:"spread_y"`     // y = (rand-0.5)*spread_y
	AnglePeriod float64 `yaml:"angle_period"` // particles per full turn of the z wave
	RadiusMax   float64 `yaml:"radius_max"`
	SpeedMin    float64 `yaml:"speed_min"`
	SpeedRange  float64 `yaml:"speed_range"`
	DriftZ      float64 `yaml:"drift_z"`
	Floor       float64 `yaml:"floor"`   // recycle when y drops below this
	Ceiling     float64 `yaml:"ceiling"` // recycled particles reappear at this y
	PointSize   float64 `yaml:"point_size"`
	Color1      string  `yaml:"color1"`
	Color2      string  `yaml:"color2"`
}

// InstancesConfig holds the randomized instance placement parameters.
type InstancesConfig struct {
	Count int         `yaml:"count"`
	Min   [3]float64  `yaml:"min"` // inclusive lower corner
	Max   [3]float64  `yaml:"max"` // exclusive upper corner
	Plane PlaneConfig `yaml:"plane"`
}

// PlaneConfig describes the shared template plane geometry.
type PlaneConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	ResX   int     `yaml:"res_x"`
	ResZ   int     `yaml:"res_z"`
}

// MaterialConfig holds the shared shader material parameters.
type MaterialConfig struct {
	Texture      string  `yaml:"texture"`
	Displacement string  `yaml:"displacement"`
	TimeScale    float64 `yaml:"time_scale"` // uTime = elapsed * time_scale
}

// NoiseConfig holds the fallback displacement texture generator parameters.
type NoiseConfig struct {
	Size       int     `yaml:"size"`
	Scale      float64 `yaml:"scale"`
	Octaves    int     `yaml:"octaves"`
	Lacunarity float64 `yaml:"lacunarity"`
	Gain       float64 `yaml:"gain"`
	Seed       int64   `yaml:"seed"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // frames per rolling window
	StatsWindow float64 `yaml:"stats_window"` // seconds per telemetry.csv window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TimeScale32 float32    // Material.TimeScale as float32
	InstanceMin [3]float32 // Instances.Min as float32
	InstanceMax [3]float32 // Instances.Max as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

const maxPlaneVertices = 1 << 16

func (c *Config) validate() error {
	if c.Petals.Count < 0 {
		return fmt.Errorf("petals.count must be >= 0, got %d", c.Petals.Count)
	}
	if c.Instances.Count < 0 {
		return fmt.Errorf("instances.count must be >= 0, got %d", c.Instances.Count)
	}
	if c.Petals.SpeedMin <= 0 {
		return fmt.Errorf("petals.speed_min must be > 0 so petals fall, got %v", c.Petals.SpeedMin)
	}
	if c.Petals.SpeedRange < 0 {
		return fmt.Errorf("petals.speed_range must be >= 0, got %v", c.Petals.SpeedRange)
	}
	if c.Petals.Ceiling < c.Petals.Floor {
		return fmt.Errorf("petals.ceiling (%v) below petals.floor (%v)", c.Petals.Ceiling, c.Petals.Floor)
	}
	// Plane indices are uint16
	p := c.Instances.Plane
	if p.ResX < 0 || p.ResZ < 0 || (p.ResX+1)*(p.ResZ+1) > maxPlaneVertices {
		return fmt.Errorf("instances.plane res %dx%d out of range (at most %d vertices)", p.ResX, p.ResZ, maxPlaneVertices)
	}
	for i := range c.Instances.Min {
		if c.Instances.Max[i] < c.Instances.Min[i] {
			return fmt.Errorf("instances.max[%d] (%v) below instances.min[%d] (%v)",
				i, c.Instances.Max[i], i, c.Instances.Min[i])
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TimeScale32 = float32(c.Material.TimeScale)
	for i := 0; i < 3; i++ {
		c.Derived.InstanceMin[i] = float32(c.Instances.Min[i])
		c.Derived.InstanceMax[i] = float32(c.Instances.Max[i])
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 60
	}
	if c.Noise.Size <= 0 {
		c.Noise.Size = 256
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
