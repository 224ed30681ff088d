package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists the overlays with a checkbox each.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel. Clicking a checkbox toggles its overlay.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) {
	if !c.visible {
		return
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight + 4

	categories := overlays.Categories()
	rows := 0
	for _, cat := range categories {
		rows += len(overlays.ByCategory(cat)) + 1
	}
	height := int32(rows+1)*lineHeight + padding*2
	r.DrawPanel(c.x, c.y, c.width, height)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			bounds := rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: 12, Height: 12}
			enabled := overlays.IsEnabled(desc.ID)
			if checked := gui.CheckBox(bounds, desc.Name, enabled); checked != enabled {
				overlays.SetEnabled(desc.ID, checked)
			}

			keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
			keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
			rl.DrawText(keyText, c.x+c.width-padding-keyWidth, y, r.Theme.FontSize, rl.Gray)
			y += lineHeight
		}
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "info":
		return "Info"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
