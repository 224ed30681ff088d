package telemetry

import (
	"log/slog"
	"math"
	"sort"
)

// WindowStats holds aggregated scene statistics for a time window.
type WindowStats struct {
	RunID          string  `csv:"run_id"`
	WindowStartSec float64 `csv:"-"`
	WindowEndFrame int64   `csv:"window_end"`
	SimTimeSec     float64 `csv:"sim_time"`
	UTime          float32 `csv:"u_time"`

	Petals    int `csv:"petals"`
	Instances int `csv:"instances"`

	// Recycling during the window
	Recycled    int64   `csv:"recycled"`
	RecycleRate float64 `csv:"recycle_rate"` // per second

	// Petal height distribution (sampled at window end)
	HeightMean float64 `csv:"height_mean"`
	HeightP10  float64 `csv:"height_p10"`
	HeightP50  float64 `csv:"height_p50"`
	HeightP90  float64 `csv:"height_p90"`

	// Lateral and depth extent. These grow without bound as petals drift.
	MinX float64 `csv:"min_x"`
	MaxX float64 `csv:"max_x"`
	MinZ float64 `csv:"min_z"`
	MaxZ float64 `csv:"max_z"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles of values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// Extent returns the smallest and largest value, or zeros for an empty slice.
func Extent(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("u_time", float64(s.UTime)),
		slog.Int("petals", s.Petals),
		slog.Int("instances", s.Instances),
		slog.Int64("recycled", s.Recycled),
		slog.Float64("recycle_rate", s.RecycleRate),
		slog.Float64("height_mean", s.HeightMean),
		slog.Float64("height_p10", s.HeightP10),
		slog.Float64("height_p50", s.HeightP50),
		slog.Float64("height_p90", s.HeightP90),
		slog.Float64("min_x", s.MinX),
		slog.Float64("max_x", s.MaxX),
		slog.Float64("min_z", s.MinZ),
		slog.Float64("max_z", s.MaxZ),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"u_time", s.UTime,
		"petals", s.Petals,
		"recycled", s.Recycled,
		"recycle_rate", s.RecycleRate,
		"height_mean", s.HeightMean,
		"max_x", s.MaxX,
		"max_z", s.MaxZ,
	)
}
