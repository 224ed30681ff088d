package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few frames
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseAdvance)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}

	if _, ok := stats.PhaseAvg[PhaseAdvance]; !ok {
		t.Error("expected advance phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseRender]; !ok {
		t.Error("expected render phase to be tracked")
	}

	if stats.MinFrameDuration > stats.MaxFrameDuration {
		t.Errorf("min %v > max %v", stats.MinFrameDuration, stats.MaxFrameDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseAdvance)
		time.Sleep(10 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration after window filled")
	}

	if stats.FramesPerSecond <= 0 {
		t.Error("expected positive frames per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate with uneven phase durations
	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUniforms)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(500 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.PhasePct[PhaseRender] <= stats.PhasePct[PhaseUniforms] {
		t.Errorf("expected render (%v%%) > uniforms (%v%%)",
			stats.PhasePct[PhaseRender], stats.PhasePct[PhaseUniforms])
	}

	row := stats.ToCSV(300)
	if row.WindowEnd != 300 {
		t.Errorf("WindowEnd = %d, want 300", row.WindowEnd)
	}
	if row.RenderPct != stats.PhasePct[PhaseRender] {
		t.Errorf("RenderPct = %v, want %v", row.RenderPct, stats.PhasePct[PhaseRender])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordPresent()
	time.Sleep(16 * time.Millisecond) // ~60fps frame time
	pc.RecordPresent()

	stats := pc.Stats()

	if stats.FrameInterval < 15*time.Millisecond {
		t.Errorf("expected frame interval >= 15ms, got %v", stats.FrameInterval)
	}

	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}
