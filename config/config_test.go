package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Petals.Count != 800 {
		t.Errorf("petals.count = %d, want 800", cfg.Petals.Count)
	}
	if cfg.Instances.Count != 55 {
		t.Errorf("instances.count = %d, want 55", cfg.Instances.Count)
	}
	if cfg.Material.TimeScale != 10 {
		t.Errorf("material.time_scale = %v, want 10", cfg.Material.TimeScale)
	}
	if cfg.Camera.Fovy != 115 || cfg.Camera.Z != 5 {
		t.Errorf("camera = %+v, want fovy 115 z 5", cfg.Camera)
	}
	if cfg.Petals.Floor != -5 || cfg.Petals.Ceiling != 5 {
		t.Errorf("petal recycle band = [%v, %v], want [-5, 5]", cfg.Petals.Floor, cfg.Petals.Ceiling)
	}

	wantMin := [3]float32{-4, -11, -6}
	wantMax := [3]float32{9, 9, 7}
	if cfg.Derived.InstanceMin != wantMin || cfg.Derived.InstanceMax != wantMax {
		t.Errorf("derived bounds = %v..%v, want %v..%v",
			cfg.Derived.InstanceMin, cfg.Derived.InstanceMax, wantMin, wantMax)
	}
	if cfg.Derived.TimeScale32 != 10 {
		t.Errorf("derived time scale = %v, want 10", cfg.Derived.TimeScale32)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("petals:\n  count: 3\nmaterial:\n  time_scale: 2.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Petals.Count != 3 {
		t.Errorf("petals.count = %d, want 3", cfg.Petals.Count)
	}
	// Untouched fields keep their defaults
	if cfg.Petals.SpreadX != 20 {
		t.Errorf("petals.spread_x = %v, want default 20", cfg.Petals.SpreadX)
	}
	if cfg.Instances.Count != 55 {
		t.Errorf("instances.count = %d, want default 55", cfg.Instances.Count)
	}
	if cfg.Derived.TimeScale32 != 2.5 {
		t.Errorf("derived time scale = %v, want 2.5", cfg.Derived.TimeScale32)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative petals", "petals:\n  count: -1\n"},
		{"negative instances", "instances:\n  count: -2\n"},
		{"inverted recycle band", "petals:\n  floor: 5\n  ceiling: -5\n"},
		{"inverted bounds", "instances:\n  min: [0, 0, 0]\n  max: [1, -1, 1]\n"},
		{"rising petals", "petals:\n  speed_min: -0.05\n  speed_range: 0.02\n"},
		{"motionless petals", "petals:\n  speed_min: 0\n"},
		{"negative speed range", "petals:\n  speed_range: -0.01\n"},
		{"plane exceeds uint16 indices", "instances:\n  plane:\n    res_x: 256\n    res_z: 256\n"},
		{"negative plane segments", "instances:\n  plane:\n    res_x: -3\n"},
		{"malformed yaml", "petals: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %q", tt.yaml)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Petals.Count = 42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if reloaded.Petals.Count != 42 {
		t.Errorf("reloaded petals.count = %d, want 42", reloaded.Petals.Count)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected Cfg() to panic before Init()")
		}
	}()
	Cfg()
}
