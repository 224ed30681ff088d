package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/sakura/config"
)

// csvSink is one CSV file. The header goes out with the first row.
type csvSink struct {
	name   string
	file   *os.File
	header bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, file: f}, nil
}

func writeRow[T any](s *csvSink, row T) error {
	rows := []T{row}
	var err error
	if s.header {
		err = gocsv.MarshalWithoutHeaders(rows, s.file)
	} else {
		err = gocsv.Marshal(rows, s.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	s.header = true
	return nil
}

// OutputManager owns a run's output directory: telemetry.csv, frames.csv and
// the effective config. Every row carries the run id so several runs can be
// concatenated and still told apart. A nil manager discards everything.
type OutputManager struct {
	dir   string
	runID string

	stats  *csvSink
	frames *csvSink
}

// NewOutputManager creates dir and opens the CSV files in it.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	stats, err := openSink(dir, "telemetry.csv")
	if err != nil {
		return nil, err
	}
	frames, err := openSink(dir, "frames.csv")
	if err != nil {
		stats.file.Close()
		return nil, err
	}

	return &OutputManager{
		dir:    dir,
		runID:  uuid.NewString(),
		stats:  stats,
		frames: frames,
	}, nil
}

// RunID returns the identifier stamped on every row of this run.
func (om *OutputManager) RunID() string {
	if om == nil {
		return ""
	}
	return om.runID
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves cfg as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a stats window to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	stats.RunID = om.runID
	return writeRow(om.stats, stats)
}

// WritePerf appends the frame timing window ending at windowEnd to frames.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	row := stats.ToCSV(windowEnd)
	row.RunID = om.runID
	return writeRow(om.frames, row)
}

// Close closes both CSV files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, s := range []*csvSink{om.stats, om.frames} {
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing %s: %w", s.name, err)
		}
	}
	return firstErr
}
