package telemetry

// FieldSample is the scene state handed to Flush at the end of a window.
type FieldSample struct {
	Positions []float32 // xyz per petal
	Recycled  int64     // lifetime recycle counter of the field
	Instances int
	UTime     float32
}

// Collector accumulates per-window scene statistics.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartSec      float64
	windowStartRecycled int64

	// Scratch buffers reused across flushes
	xs, ys, zs []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in scene seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Resume starts the first window at elapsed instead of zero.
func (c *Collector) Resume(elapsed float64) {
	c.windowStartSec = elapsed
}

// ShouldFlush returns true if the current window has run its full duration.
func (c *Collector) ShouldFlush(elapsed float64) bool {
	return elapsed-c.windowStartSec >= c.windowDurationSec
}

// Flush produces a WindowStats and starts the next window.
func (c *Collector) Flush(frame int64, elapsed float64, sample FieldSample) WindowStats {
	n := len(sample.Positions) / 3
	c.xs = c.xs[:0]
	c.ys = c.ys[:0]
	c.zs = c.zs[:0]
	for i := 0; i < n; i++ {
		c.xs = append(c.xs, float64(sample.Positions[3*i]))
		c.ys = append(c.ys, float64(sample.Positions[3*i+1]))
		c.zs = append(c.zs, float64(sample.Positions[3*i+2]))
	}

	recycled := sample.Recycled - c.windowStartRecycled
	var rate float64
	if span := elapsed - c.windowStartSec; span > 0 {
		rate = float64(recycled) / span
	}

	mean, p10, p50, p90 := ComputeDistribution(c.ys)
	minX, maxX := Extent(c.xs)
	minZ, maxZ := Extent(c.zs)

	stats := WindowStats{
		WindowStartSec: c.windowStartSec,
		WindowEndFrame: frame,
		SimTimeSec:     elapsed,
		UTime:          sample.UTime,

		Petals:    n,
		Instances: sample.Instances,

		Recycled:    recycled,
		RecycleRate: rate,

		HeightMean: mean,
		HeightP10:  p10,
		HeightP50:  p50,
		HeightP90:  p90,

		MinX: minX,
		MaxX: maxX,
		MinZ: minZ,
		MaxZ: maxZ,
	}

	// Reset for next window
	c.windowStartSec = elapsed
	c.windowStartRecycled = sample.Recycled

	return stats
}

// WindowDurationSec returns the length of each window in seconds.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}
