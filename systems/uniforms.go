package systems

import "time"

// MaterialState holds the uniforms of the shared template material.
// The renderer uploads them when Dirty is set and then clears it.
type MaterialState struct {
	Time  float32
	Color [3]float32
	Dirty bool
}

// TimeDriver feeds the elapsed time into the material's time uniform.
type TimeDriver struct {
	Scale float32
}

// Apply writes elapsed*Scale into the time uniform and marks the uniforms dirty.
func (d TimeDriver) Apply(state *MaterialState, elapsed float64) {
	state.Time = float32(elapsed) * d.Scale
	state.Dirty = true
}

// Clock reports seconds elapsed since it was started.
type Clock struct {
	start time.Time
	now   func() time.Time
}

// NewClock starts a clock at the current time.
func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource starts a clock that reads time from now.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{start: now(), now: now}
}

// Elapsed returns seconds since start. time.Time carries a monotonic reading,
// so wall clock adjustments do not move it backwards.
func (c *Clock) Elapsed() float64 {
	return c.now().Sub(c.start).Seconds()
}
