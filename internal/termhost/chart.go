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
// Package termhost draws a categorical scatter chart in the terminal and
// implements the host interfaces of package tooltip on top of it: chart
// elements with data events, a screen model, filters, an overlay layer and
// window level listeners.
package termhost

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teradata-labs/grouptip/pkg/tooltip"
)

const (
	defaultWidth  = 80
	defaultHeight = 23
	minWidth      = 24
	minHeight     = 8

	// axisWidth is the left gutter holding y labels and the y axis.
	axisWidth = 9
	// hitRadius is how far from a column, in cells, the pointer still hits it.
	hitRadius = 2
)

// Options configures a Chart.
type Options struct {
	Title string

	// XField holds the category of each record; one column per distinct value.
	XField string
	// YField holds the numeric value plotted vertically.
	YField string
	// ColorField splits records into series. Empty draws a single series.
	ColorField string

	// Type is the element type of every series (default ELEMENT.POINT).
	Type tooltip.ElementType

	// Fields is returned by FieldInfo.
	Fields map[string]tooltip.FieldInfo

	Width  int
	Height int

	Logger *zap.Logger
}

type cell struct {
	x, y int
}

type plotArea struct {
	left, top, width, height int
}

func (p plotArea) bottom() int { return p.top + p.height - 1 }
func (p plotArea) right() int { return p.left + p.width - 1 }

// column is the set of visible records sharing one x category. Its records
// slice is rebuilt only by layout, so repeated hovers over the same column
// hand out the same batch.
type column struct {
	label   string
	value   any
	cell    int
	records []*tooltip.Record
}

// Chart is a terminal chart implementing tooltip.Chart. It is not safe for
// concurrent use; drive it from the bubbletea update loop.
type Chart struct {
	opts   Options
	logger *zap.Logger

	data    []*tooltip.Record
	ids     map[*tooltip.Record]string
	palette *palette
	filters []tooltip.Filter

	width, height int

	visible    []*tooltip.Record
	cells      map[*tooltip.Record]cell
	columns    []column
	yMin, yMax float64
	hasY       bool
	elements   []*element
	series     map[string]*element

	classes     map[tooltip.ChartPart]map[string]bool
	multi       bool
	overlay     *Overlay
	hovered     *element
	afterRender func()
}

// NewChart lays out records. Every record gets a random screen id.
func NewChart(records []*tooltip.Record, opts Options) *Chart {
	if opts.Type == "" {
		opts.Type = tooltip.ElementPoint
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Chart{
		opts:   opts,
		logger: opts.Logger,
		data:   records,
		ids:    make(map[*tooltip.Record]string, len(records)),
		classes: map[tooltip.ChartPart]map[string]bool{
			tooltip.PartTarget: {},
			tooltip.PartLayout: {},
		},
	}

	var keys []string
	for _, r := range records {
		c.ids[r] = uuid.NewString()
		keys = append(keys, c.seriesKey(r))
	}
	c.palette = newPalette(keys)
	c.Resize(opts.Width, opts.Height)
	return c
}

// SetAfterRender registers fn to run after every Refresh. Tooltip
// controllers hook their OnRender here.
func (c *Chart) SetAfterRender(fn func()) {
	c.afterRender = fn
}

// Resize changes the drawing area without re-rendering. Sizes below the
// minimum fall back to the defaults.
func (c *Chart) Resize(width, height int) {
	if width < minWidth {
		width = defaultWidth
	}
	if height < minHeight {
		height = defaultHeight
	}
	c.width, c.height = width, height
	c.layout()
}

// Size returns the drawing area in cells.
func (c *Chart) Size() (width, height int) {
	return c.width, c.height
}

// FieldInfo implements tooltip.Chart.
func (c *Chart) FieldInfo() map[string]tooltip.FieldInfo {
	return c.opts.Fields
}

// Select implements tooltip.Chart.
func (c *Chart) Select(pred func(tooltip.Element) bool) []tooltip.Element {
	var out []tooltip.Element
	for _, el := range c.elements {
		if pred(el) {
			out = append(out, el)
		}
	}
	return out
}

// AddFilter implements tooltip.Chart. Filters apply on the next Refresh.
func (c *Chart) AddFilter(f tooltip.Filter) {
	c.filters = append(c.filters, f)
}

// ClearFilters removes the filters tagged tag, or all of them when tag is
// empty, and reports how many were removed.
func (c *Chart) ClearFilters(tag string) int {
	kept := c.filters[:0]
	for _, f := range c.filters {
		if tag != "" && f.Tag != tag {
			kept = append(kept, f)
		}
	}
	removed := len(c.filters) - len(kept)
	c.filters = kept
	return removed
}

// Refresh implements tooltip.Chart: it re-applies filters, rebuilds the
// elements and runs the after-render hook.
func (c *Chart) Refresh() {
	c.layout()
	c.logger.Debug("Chart rendered",
		zap.Int("records", len(c.visible)),
		zap.Int("filters", len(c.filters)),
		zap.Int("elements", len(c.elements)))
	if c.afterRender != nil {
		c.afterRender()
	}
}

// SetClass implements tooltip.Chart.
func (c *Chart) SetClass(part tooltip.ChartPart, class string, on bool) {
	c.classes[part][class] = on
}

// HasClass reports whether class is set on part.
func (c *Chart) HasClass(part tooltip.ChartPart, class string) bool {
	return c.classes[part][class]
}

// AddOverlay implements tooltip.Chart. A chart holds a single overlay.
func (c *Chart) AddOverlay(opts tooltip.OverlayOptions) tooltip.Overlay {
	c.overlay = newOverlay(c, opts)
	return c.overlay
}

// Overlay returns the overlay added to the chart, or nil.
func (c *Chart) Overlay() *Overlay {
	return c.overlay
}

// EnableMultipleHighlight implements tooltip.MultiHighlighter.
func (c *Chart) EnableMultipleHighlight() {
	c.multi = true
}

// Visible returns the records left after filtering.
func (c *Chart) Visible() []*tooltip.Record {
	return slices.Clone(c.visible)
}

// RecordID returns the screen id of r.
func (c *Chart) RecordID(r *tooltip.Record) string {
	return c.ids[r]
}

// Hover emits data-hover for the column under p, or an empty data-hover
// from the element that was hovered last when p hits nothing.
func (c *Chart) Hover(p tooltip.Point) {
	col, el := c.hit(p)
	if col == nil {
		if prev := c.hovered; prev != nil {
			c.hovered = nil
			prev.emit(tooltip.EventDataHover, tooltip.DataEvent{Pointer: p})
		}
		return
	}
	c.hovered = el
	c.highlight(el, col)
	el.emit(tooltip.EventDataHover, tooltip.DataEvent{Data: col.records, GroupDim: c.opts.XField, Pointer: p})
}

// Click emits data-click for the column under p. A click on an empty part
// of the plot emits data-click without data.
func (c *Chart) Click(p tooltip.Point) {
	col, el := c.hit(p)
	if col != nil {
		el.emit(tooltip.EventDataClick, tooltip.DataEvent{Data: col.records, GroupDim: c.opts.XField, Pointer: p})
		return
	}
	if c.inPlot(p, 0) && len(c.elements) > 0 {
		c.elements[0].emit(tooltip.EventDataClick, tooltip.DataEvent{Pointer: p})
	}
}

func (c *Chart) highlight(sender *element, col *column) {
	in := make(map[*tooltip.Record]bool, len(col.records))
	for _, r := range col.records {
		in[r] = true
	}
	filter := func(r *tooltip.Record) bool { return in[r] }
	for _, el := range c.elements {
		if el == sender || c.multi {
			el.Fire(tooltip.EventHighlight, filter)
		} else {
			el.Fire(tooltip.EventHighlight, nil)
		}
	}
}

func (c *Chart) plotArea() plotArea {
	return plotArea{
		left:   axisWidth,
		top:    1,
		width:  c.width - axisWidth - 1,
		height: c.height - 3,
	}
}

func (c *Chart) inPlot(p tooltip.Point, margin int) bool {
	plot := c.plotArea()
	x, y := int(math.Round(p.X)), int(math.Round(p.Y))
	return y >= plot.top && y <= plot.bottom() &&
		x >= plot.left-margin && x <= plot.right()+margin
}

// hit finds the column nearest to p and the series whose point in that
// column is closest to p.
func (c *Chart) hit(p tooltip.Point) (*column, *element) {
	if !c.inPlot(p, hitRadius) {
		return nil, nil
	}
	x, y := int(math.Round(p.X)), int(math.Round(p.Y))

	best, bestDist := -1, hitRadius+1
	for i, col := range c.columns {
		if d := abs(col.cell - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return nil, nil
	}
	col := &c.columns[best]

	var el *element
	dist := math.MaxInt
	for _, r := range col.records {
		if d := abs(c.cells[r].y - y); d < dist {
			dist, el = d, c.series[c.seriesKey(r)]
		}
	}
	return col, el
}

func (c *Chart) seriesKey(r *tooltip.Record) string {
	if c.opts.ColorField == "" {
		return ""
	}
	return fmt.Sprint(r.Value(c.opts.ColorField))
}

func (c *Chart) accepts(r *tooltip.Record) bool {
	for _, f := range c.filters {
		if f.Predicate != nil && !f.Predicate(r) {
			return false
		}
	}
	return true
}

func (c *Chart) layout() {
	visible := make([]*tooltip.Record, 0, len(c.data))
	for _, r := range c.data {
		if c.accepts(r) {
			visible = append(visible, r)
		}
	}
	c.visible = visible

	c.yMin, c.yMax, c.hasY = math.Inf(1), math.Inf(-1), false
	for _, r := range visible {
		if y, ok := asFloat(r.Value(c.opts.YField)); ok {
			c.yMin, c.yMax, c.hasY = math.Min(c.yMin, y), math.Max(c.yMax, y), true
		}
	}

	index := map[string]int{}
	var cols []column
	for _, r := range visible {
		v := r.Value(c.opts.XField)
		label := fmt.Sprint(v)
		i, ok := index[label]
		if !ok {
			i = len(cols)
			index[label] = i
			cols = append(cols, column{label: label, value: v})
		}
		cols[i].records = append(cols[i].records, r)
	}
	sortColumns(cols)

	plot := c.plotArea()
	c.cells = make(map[*tooltip.Record]cell, len(visible))
	for i := range cols {
		cols[i].cell = plot.left + spread(i, len(cols), plot.width)
		for _, r := range cols[i].records {
			c.cells[r] = cell{x: cols[i].cell, y: c.rowOf(r, plot)}
		}
	}
	c.columns = cols

	c.elements = nil
	c.series = map[string]*element{}
	for _, r := range visible {
		key := c.seriesKey(r)
		el, ok := c.series[key]
		if !ok {
			el = newElement(c, key)
			c.series[key] = el
			c.elements = append(c.elements, el)
		}
		el.records = append(el.records, r)
	}
	c.hovered = nil
}

func (c *Chart) rowOf(r *tooltip.Record, plot plotArea) int {
	y, ok := asFloat(r.Value(c.opts.YField))
	switch {
	case !ok:
		return plot.bottom()
	case c.yMax == c.yMin:
		return plot.top + plot.height/2
	default:
		return plot.top + int(math.Round((c.yMax-y)/(c.yMax-c.yMin)*float64(plot.height-1)))
	}
}

// sortColumns orders numeric categories by value and the others by label.
func sortColumns(cols []column) {
	numeric := true
	for _, col := range cols {
		if _, ok := asFloat(col.value); !ok {
			numeric = false
			break
		}
	}
	slices.SortStableFunc(cols, func(a, b column) int {
		if numeric {
			x, _ := asFloat(a.value)
			y, _ := asFloat(b.value)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
		return strings.Compare(a.label, b.label)
	})
}

func spread(i, n, width int) int {
	if n <= 1 {
		return width / 2
	}
	return int(math.Round(float64(i) * float64(width-1) / float64(n-1)))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

const (
	pointGlyph     = "●"
	highlightGlyph = "◆"
	emptyCell      = " "
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	axisStyle      = lipgloss.NewStyle().Faint(true)
	axisStuckStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d7875f"))
)

// Render draws the chart: title, y axis labels, points, x axis and
// category labels.
func (c *Chart) Render() string {
	grid := make([][]string, c.height)
	for y := range grid {
		row := make([]string, c.width)
		for x := range row {
			row[x] = emptyCell
		}
		grid[y] = row
	}
	put := func(x, y int, s string) {
		if y >= 0 && y < c.height && x >= 0 && x < c.width {
			grid[y][x] = s
		}
	}
	write := func(x, y int, text string, style lipgloss.Style) {
		for i, r := range []rune(text) {
			put(x+i, y, style.Render(string(r)))
		}
	}

	plot := c.plotArea()
	axis := axisStyle
	if c.HasClass(tooltip.PartLayout, tooltip.ClassTargetStuck) {
		axis = axisStuckStyle
	}

	write(0, 0, c.opts.Title, titleStyle)

	for y := plot.top; y <= plot.bottom(); y++ {
		put(plot.left-1, y, axis.Render("│"))
	}
	axisRow := plot.bottom() + 1
	put(plot.left-1, axisRow, axis.Render("└"))
	for x := plot.left; x <= plot.right(); x++ {
		put(x, axisRow, axis.Render("─"))
	}
	if c.hasY {
		write(0, plot.top, tickLabel(c.yMax), axis)
		if c.yMin != c.yMax {
			write(0, plot.bottom(), tickLabel(c.yMin), axis)
		}
	}

	next := 0
	for _, col := range c.columns {
		start := max(col.cell-len([]rune(col.label))/2, next)
		write(start, axisRow+1, col.label, axis)
		next = start + len([]rune(col.label)) + 1
	}

	targeted := c.HasClass(tooltip.PartTarget, tooltip.ClassTarget)
	for _, el := range c.elements {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(el.color))
		for _, r := range el.records {
			pos := c.cells[r]
			switch {
			case el.highlighted(r):
				put(pos.x, pos.y, style.Bold(true).Render(highlightGlyph))
			case targeted:
				put(pos.x, pos.y, style.Faint(true).Render(pointGlyph))
			default:
				put(pos.x, pos.y, style.Render(pointGlyph))
			}
		}
	}

	lines := make([]string, len(grid))
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

func tickLabel(v float64) string {
	label := fmt.Sprintf("%.4g", v)
	if len(label) > axisWidth-2 {
		label = fmt.Sprintf("%.1e", v)
	}
	return label
}
