package scene

import (
	"log/slog"

	"github.com/pthm-cable/sakura/telemetry"
)

// Step runs the simulation half of the frame task for the given scene time:
// advance petals, then write the time uniform. Rendering, when there is a
// drawer, follows in Draw.
func (s *Scene) Step(elapsed float64) {
	s.perf.StartFrame()

	s.perf.StartPhase(telemetry.PhaseAdvance)
	s.petals.Advance()

	s.perf.StartPhase(telemetry.PhaseUniforms)
	s.driver.Apply(&s.material, elapsed)

	s.elapsed = elapsed
	s.frame++
}

// Update steps the scene at the current time: wall clock with a drawer,
// fixed steps at the target frame rate when headless.
func (s *Scene) Update() {
	if s.drawer == nil {
		s.Step(s.elapsedOffset + float64(s.frame+1-s.resumedFrame)*s.fixedDT)
		s.finishFrame()
		return
	}
	s.Step(s.elapsedOffset + s.clock.Elapsed())
}

// Draw renders the current state and closes the frame task.
func (s *Scene) Draw() {
	if s.drawer == nil {
		return
	}
	s.perf.StartPhase(telemetry.PhaseRender)
	s.drawer.Draw(s.View())
	s.perf.RecordPresent()
	s.finishFrame()
}

// View returns the current state for drawing.
func (s *Scene) View() *View {
	return &View{
		Petals:    s.petals,
		Material:  &s.material,
		Instances: s.instances,
		Camera:    s.cam,
		Frame:     s.frame,
		Elapsed:   s.elapsed,
		Seed:      s.seed,
		Perf:      s.perf.Stats(),
	}
}

// RunHeadless steps the scene until maxFrames frames have run in total.
// maxFrames <= 0 runs forever.
func (s *Scene) RunHeadless(maxFrames int64) {
	for maxFrames <= 0 || s.frame < maxFrames {
		s.Update()
	}
}

// finishFrame flushes telemetry windows and closes the frame sample.
func (s *Scene) finishFrame() {
	s.perf.StartPhase(telemetry.PhaseTelemetry)

	if s.collector.ShouldFlush(s.elapsed) {
		stats := s.collector.Flush(s.frame, s.elapsed, telemetry.FieldSample{
			Positions: s.petals.Positions(),
			Recycled:  s.petals.Recycled(),
			Instances: len(s.instances),
			UTime:     s.material.Time,
		})
		stats.LogStats()
		if err := s.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}

	s.perf.EndFrame()

	if window := int64(s.cfg.Telemetry.PerfWindow); window > 0 && s.frame%window == 0 {
		ps := s.perf.Stats()
		if s.perfLog {
			ps.LogStats()
		}
		if err := s.output.WritePerf(ps, s.frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// Unload frees drawer resources and closes the output files.
func (s *Scene) Unload() {
	if s.drawer != nil {
		s.drawer.Unload()
	}
	if err := s.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
