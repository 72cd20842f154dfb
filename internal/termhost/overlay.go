// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package termhost

import (
	"charm.land/lipgloss/v2"

	"github.com/teradata-labs/grouptip/pkg/tooltip"
)

// pxPerCell converts overlay spacing, given in pixels, to terminal columns.
const pxPerCell = 12

var (
	overlayStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#8a8a8a")).Padding(0, 1)
	overlayStuckStyle = overlayStyle.Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#d7875f"))
)

// noBounds contains no point.
var noBounds = tooltip.Rect{Left: 1, Top: 1}

// Overlay is a floating box drawn above the chart. It implements
// tooltip.Overlay.
type Overlay struct {
	chart *Chart
	opts  tooltip.OverlayOptions

	content   string
	cursorX   float64
	cursorY   float64
	anchor    string
	visible   bool
	destroyed bool
	classes   map[string]bool

	// Box size in cells, refreshed by UpdateSize.
	width, height int
}

func newOverlay(c *Chart, opts tooltip.OverlayOptions) *Overlay {
	return &Overlay{
		chart:   c,
		opts:    opts,
		anchor:  "bottom-right",
		classes: map[string]bool{},
	}
}

// Content implements tooltip.Overlay.
func (o *Overlay) Content(markup string) {
	o.content = markup
	o.UpdateSize()
}

// Position implements tooltip.Overlay.
func (o *Overlay) Position(x, y float64) {
	o.cursorX, o.cursorY = x, y
}

// Place implements tooltip.Overlay. Anchors are "bottom-right",
// "bottom-left", "top-right" and "top-left".
func (o *Overlay) Place(anchor string) {
	o.anchor = anchor
}

// Show implements tooltip.Overlay.
func (o *Overlay) Show() {
	if o.destroyed {
		return
	}
	o.visible = true
}

// Hide implements tooltip.Overlay.
func (o *Overlay) Hide() {
	o.visible = false
}

// UpdateSize implements tooltip.Overlay.
func (o *Overlay) UpdateSize() {
	box := o.box()
	o.width, o.height = lipgloss.Width(box), lipgloss.Height(box)
}

// Destroy implements tooltip.Overlay.
func (o *Overlay) Destroy() {
	o.visible = false
	o.destroyed = true
	if o.chart.overlay == o {
		o.chart.overlay = nil
	}
}

// SetClass implements tooltip.Overlay.
func (o *Overlay) SetClass(class string, on bool) {
	o.classes[class] = on
}

// HasClass reports whether class is set.
func (o *Overlay) HasClass(class string) bool {
	return o.classes[class]
}

// Visible reports whether the overlay is shown.
func (o *Overlay) Visible() bool {
	return o.visible
}

// Text returns the content last set.
func (o *Overlay) Text() string {
	return o.content
}

// Bounds implements tooltip.Overlay. A hidden overlay has empty bounds.
func (o *Overlay) Bounds() tooltip.Rect {
	if !o.visible {
		return noBounds
	}
	x, y := o.origin()
	return tooltip.Rect{
		Left:   float64(x),
		Top:    float64(y),
		Right:  float64(x + o.width - 1),
		Bottom: float64(y + o.height - 1),
	}
}

// View returns the rendered box and its top-left cell. ok is false when
// the overlay is hidden.
func (o *Overlay) View() (box string, x, y int, ok bool) {
	if !o.visible {
		return "", 0, 0, false
	}
	x, y = o.origin()
	return o.box(), x, y, true
}

func (o *Overlay) box() string {
	style := overlayStyle
	if o.classes[tooltip.ClassStuck] {
		style = overlayStuckStyle
	}
	return style.Render(o.content)
}

// origin places the box next to the cursor on the anchor side, flipping
// sides that would overflow the screen when the overlay is automatic.
func (o *Overlay) origin() (int, int) {
	gap := max(o.opts.Spacing/pxPerCell, 1)
	cx, cy := int(o.cursorX), int(o.cursorY)
	screenW, screenH := o.chart.Size()

	right := o.anchor == "bottom-right" || o.anchor == "top-right"
	below := o.anchor == "bottom-right" || o.anchor == "bottom-left"

	place := func(right, below bool) (int, int) {
		x, y := cx-gap-o.width, cy-o.height
		if right {
			x = cx + gap
		}
		if below {
			y = cy + 1
		}
		return x, y
	}

	x, y := place(right, below)
	if o.opts.Auto {
		if x+o.width > screenW || x < 0 {
			x, _ = place(!right, below)
		}
		if y+o.height > screenH || y < 0 {
			_, y = place(right, !below)
		}
	}
	x = max(min(x, screenW-o.width), 0)
	y = max(min(y, screenH-o.height), 0)
	return x, y
}
