package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/telemetry"
)

// HUDData holds the data shown by the status panel.
type HUDData struct {
	Title     string
	Frame     int64
	Elapsed   float64
	UTime     float32
	ColorB    float32
	Seed      int64
	Petals    int
	Recycled  int64
	Instances int
	FPS       int32
}

// HUD renders the status panel.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the HUD and returns the y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	padding := r.Theme.Padding
	lines := int32(8)
	height := lines*r.Theme.LineHeight + padding*2 + r.Theme.LineHeight

	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + padding
	y := r.DrawSectionHeader(x, h.y+padding, data.Title)
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%d", data.Frame))
	y = r.DrawLabelValue(x, y, "Elapsed", fmt.Sprintf("%.2fs", data.Elapsed))
	y = r.DrawLabelValue(x, y, "uTime", fmt.Sprintf("%.2f", data.UTime))
	y = r.DrawLabelValue(x, y, "uColor.b", fmt.Sprintf("%.3f", data.ColorB))
	y = r.DrawLabelValue(x, y, "Seed", fmt.Sprintf("%d", data.Seed))
	y = r.DrawLabelValue(x, y, "Petals", fmt.Sprintf("%d (%d recycled)", data.Petals, data.Recycled))
	r.DrawLabelValue(x, y, "Instances", fmt.Sprintf("%d", data.Instances))

	return h.y + height
}

// PerfPanel renders frame task timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

var perfPhases = []string{
	telemetry.PhaseAdvance,
	telemetry.PhaseUniforms,
	telemetry.PhaseRender,
	telemetry.PhaseTelemetry,
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	padding := r.Theme.Padding
	height := int32(len(perfPhases)+3)*(r.Theme.LineHeight+2) + padding*2

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	inner := p.width - padding*2
	y := r.DrawSectionHeader(x, p.y+padding, "Frame Timing")
	y = r.DrawLabelValue(x, y, "Task", fmt.Sprintf("%s avg, %s max",
		stats.AvgFrameDuration.Round(time.Microsecond),
		stats.MaxFrameDuration.Round(time.Microsecond)))
	y = r.DrawLabelValue(x, y, "Present", fmt.Sprintf("%.1f fps", stats.FPS))

	for _, phase := range perfPhases {
		y = r.DrawPercentBar(x, y, phase, stats.PhasePct[phase], inner)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
