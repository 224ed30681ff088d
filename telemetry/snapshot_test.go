package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/sakura/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:    SnapshotVersion,
		RNGSeed:    42,
		RunID:      "run-1",
		Frame:      1000,
		Elapsed:    16.5,
		Positions:  []float32{0, 1, 0, 2, -4.5, 1},
		Velocities: []float32{0, -0.5, 0.005, 0, -0.375, 0.005},
		Instances: []components.Transform{
			{X: -4, Y: -11, Z: -6},
			{X: 8.5, Y: 8.9, Z: 6.9},
		},
		ColorB: 0.25,
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if filepath.Base(path) != "snapshot_1000.json" {
		t.Errorf("unexpected filename: %s", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != 42 || loaded.Frame != 1000 || loaded.Elapsed != 16.5 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Positions) != 6 || loaded.Positions[4] != -4.5 {
		t.Errorf("positions mismatch: %v", loaded.Positions)
	}
	if len(loaded.Velocities) != 6 || loaded.Velocities[2] != 0.005 {
		t.Errorf("velocities mismatch: %v", loaded.Velocities)
	}
	if len(loaded.Instances) != 2 || loaded.Instances[1] != snapshot.Instances[1] {
		t.Errorf("instances mismatch: %v", loaded.Instances)
	}
	if loaded.ColorB != 0.25 {
		t.Errorf("ColorB = %v, want 0.25", loaded.ColorB)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	data, err := json.Marshal(Snapshot{Version: SnapshotVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
