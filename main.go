package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/config"
	"github.com/pthm-cable/sakura/display"
	"github.com/pthm-cable/sakura/renderer"
	"github.com/pthm-cable/sakura/scene"
	"github.com/pthm-cable/sakura/systems"
	"github.com/pthm-cable/sakura/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Step the scene without opening a window")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshots")
	snapshotPath := flag.String("snapshot", "", "Resume from a snapshot file")
	statsWindow := flag.Float64("stats-window", 0, "Telemetry window in seconds (0 = use config)")
	perfLog := flag.Bool("perf", false, "Log frame timing every perf window")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	opts := scene.Options{
		Config:  cfg,
		Seed:    *seed,
		Output:  output,
		PerfLog: *perfLog,
	}
	if *snapshotPath != "" {
		snap, err := telemetry.LoadSnapshot(*snapshotPath)
		if err != nil {
			slog.Error("failed to load snapshot", "path", *snapshotPath, "error", err)
			os.Exit(1)
		}
		opts.Snapshot = snap
	}

	if *headless {
		// Headless mode - fixed steps, no raylib needed
		opts.Width, opts.Height = display.Resolve(cfg.Screen.Width, cfg.Screen.Height, nil)
		s, err := scene.NewScene(opts)
		if err != nil {
			slog.Error("failed to create scene", "error", err)
			os.Exit(1)
		}

		slog.Info("starting headless run", "seed", s.Seed(), "max_frames", *maxFrames)
		s.RunHeadless(*maxFrames)
		slog.Info("max frames reached", "frame", s.Frame())

		saveSnapshot(s, output)
		s.Unload()
		return
	}

	// Graphical mode
	width, height := display.Resolve(cfg.Screen.Width, cfg.Screen.Height, display.ScreenSize)
	opts.Width, opts.Height = width, height

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(width), int32(height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	displacement := systems.GenerateDisplacement(systems.NoiseParamsFromConfig(cfg.Noise))
	opts.Drawer = renderer.NewStage(cfg, displacement)

	s, err := scene.NewScene(opts)
	if err != nil {
		slog.Error("failed to create scene", "error", err)
		opts.Drawer.Unload()
		output.Close()
		rl.CloseWindow()
		os.Exit(1)
	}
	defer s.Unload()

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			s.Camera().Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		}
		s.Update()
		s.Draw()

		if *maxFrames > 0 && s.Frame() >= *maxFrames {
			break
		}
	}

	saveSnapshot(s, output)
}

// saveSnapshot writes the final state next to the CSV output.
func saveSnapshot(s *scene.Scene, output *telemetry.OutputManager) {
	if output == nil {
		return
	}
	path, err := telemetry.SaveSnapshot(s.Snapshot(), output.Dir())
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "frame", s.Frame())
}
