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
package tooltip

// ElementType is the declared kind of a chart element.
type ElementType string

const (
	ElementLine            ElementType = "ELEMENT.LINE"
	ElementArea            ElementType = "ELEMENT.AREA"
	ElementPath            ElementType = "ELEMENT.PATH"
	ElementInterval        ElementType = "ELEMENT.INTERVAL"
	ElementIntervalStacked ElementType = "ELEMENT.INTERVAL.STACKED"
	ElementPoint           ElementType = "ELEMENT.POINT"
)

// Chart element event names.
const (
	EventDataHover          = "data-hover"
	EventDataClick          = "data-click"
	EventHighlight          = "highlight"
	EventHighlightDataPoint = "highlight-data-points"
)

// Point is a position in client (viewport) coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned box in client coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// DataEvent is the payload of data-hover and data-click.
type DataEvent struct {
	Data     []*Record
	GroupDim string
	Pointer  Point // client position of the pointer
}

// EventHandler receives element events.
type EventHandler func(sender Element, e DataEvent)

// ScreenModel maps records of one element to screen attributes.
// All methods are pure functions of the record.
type ScreenModel interface {
	X(r *Record) float64
	Y(r *Record) float64
	ID(r *Record) string
	Color(r *Record) string
	Class(r *Record) string
}

// Element is a graphical unit of the chart that emits data events.
type Element interface {
	Type() ElementType
	ScreenModel() ScreenModel
	// On registers handler for event and returns a function that removes it.
	On(event string, handler EventHandler) (unsubscribe func())
	// Fire asks the element to highlight the records accepted by filter.
	// A nil filter clears the highlight.
	Fire(event string, filter func(*Record) bool)
}

// FieldInfo is chart-introspected metadata for one field.
type FieldInfo struct {
	Label          string
	Format         Formatter
	NullAlias      string
	IsComplexField bool
	ParentField    string
}

// Filter is a chart-level data filter.
type Filter struct {
	Tag       string
	Predicate func(*Record) bool
}

// ChartPart names a chart-level element that carries presentation classes.
type ChartPart int

const (
	// PartTarget is the chart drawing surface.
	PartTarget ChartPart = iota
	// PartLayout is the chart layout container.
	PartLayout
)

// Chart is the host chart the controller is attached to.
type Chart interface {
	// FieldInfo returns metadata derived from the current chart specification.
	FieldInfo() map[string]FieldInfo
	// Select returns the elements accepted by pred.
	Select(pred func(Element) bool) []Element
	AddFilter(f Filter)
	Refresh()
	SetClass(part ChartPart, class string, on bool)
	AddOverlay(opts OverlayOptions) Overlay
}

// MultiHighlighter is implemented by charts that can emphasize several
// records at once. The controller enables it at construction.
type MultiHighlighter interface {
	EnableMultipleHighlight()
}

// OverlayOptions configures the floating element.
type OverlayOptions struct {
	Spacing     int
	Auto        bool
	EffectClass string
}

// Overlay is the floating element showing the tooltip.
type Overlay interface {
	Content(markup string)
	Position(x, y float64)
	Place(anchor string)
	Show()
	Hide()
	UpdateSize()
	Destroy()
	SetClass(class string, on bool)
	// Bounds returns the overlay box in client coordinates.
	Bounds() Rect
}

// ScrollEvent is a document scroll.
type ScrollEvent struct {
	// WithinTable is true when the scrolled node is the tooltip table body.
	WithinTable bool
}

// Window is the document-level host: listeners, origin and frame timing.
type Window interface {
	OnScroll(handler func(ScrollEvent)) (cancel func())
	// OnClick registers a capture-phase click listener.
	OnClick(handler func(Point)) (cancel func())
	// BodyOrigin returns the client position of the document body origin.
	BodyOrigin() Point
	// AfterNextPaint runs fn once after the next frame is painted.
	AfterNextPaint(fn func())
}
