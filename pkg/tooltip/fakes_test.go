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

import (
	"fmt"
)

// fakeModel places records at their "x"/"y" fields and identifies them by
// their "id" field.
type fakeModel struct{}

func (fakeModel) X(r *Record) float64 { return num(r.Value("x")) }
func (fakeModel) Y(r *Record) float64 { return num(r.Value("y")) }
func (fakeModel) ID(r *Record) string { return fmt.Sprint(r.Value("id")) }
func (fakeModel) Color(r *Record) string { return "#1f77b4" }
func (fakeModel) Class(r *Record) string { return "color20-1" }

func num(v any) float64 {
	f, _ := toFloat(v)
	return f
}

type fakeHandler struct {
	event string
	fn    EventHandler
}

type fakeElement struct {
	typ      ElementType
	handlers map[int]fakeHandler
	nextID   int
	fired    []string
}

func newFakeElement(typ ElementType) *fakeElement {
	return &fakeElement{typ: typ, handlers: map[int]fakeHandler{}}
}

func (e *fakeElement) Type() ElementType { return e.typ }
func (e *fakeElement) ScreenModel() ScreenModel { return fakeModel{} }

func (e *fakeElement) On(event string, handler EventHandler) func() {
	id := e.nextID
	e.nextID++
	e.handlers[id] = fakeHandler{event: event, fn: handler}
	return func() { delete(e.handlers, id) }
}

func (e *fakeElement) Fire(event string, filter func(*Record) bool) {
	e.fired = append(e.fired, event)
}

func (e *fakeElement) emit(event string, data DataEvent) {
	for _, h := range e.handlers {
		if h.event == event {
			h.fn(e, data)
		}
	}
}

func (e *fakeElement) handlerCount() int {
	return len(e.handlers)
}

type fakeOverlay struct {
	content   string
	x, y      float64
	anchor    string
	visible   bool
	destroyed bool
	sizes     int
	classes   map[string]bool
	bounds    Rect
	opts      OverlayOptions
	calls     []string
	onShow    func()
}

func (o *fakeOverlay) Content(markup string) { o.content = markup }
func (o *fakeOverlay) Position(x, y float64) {
	o.x, o.y = x, y
	o.calls = append(o.calls, "position")
}
func (o *fakeOverlay) Place(anchor string) { o.anchor = anchor }
func (o *fakeOverlay) Show() {
	o.visible = true
	o.calls = append(o.calls, "show")
	if o.onShow != nil {
		o.onShow()
	}
}
func (o *fakeOverlay) Hide() {
	o.visible = false
	o.calls = append(o.calls, "hide")
}
func (o *fakeOverlay) UpdateSize() { o.sizes++ }
func (o *fakeOverlay) Destroy() { o.destroyed = true }
func (o *fakeOverlay) Bounds() Rect { return o.bounds }
func (o *fakeOverlay) SetClass(class string, on bool) {
	o.classes[class] = on
}

type fakeChart struct {
	info      map[string]FieldInfo
	elements  []Element
	filters   []Filter
	refreshes int
	multi     bool
	classes   map[ChartPart]map[string]bool
	overlay   *fakeOverlay
	onRefresh func()
}

func newFakeChart(elements ...Element) *fakeChart {
	return &fakeChart{
		info:     map[string]FieldInfo{},
		elements: elements,
		classes: map[ChartPart]map[string]bool{
			PartTarget: {},
			PartLayout: {},
		},
	}
}

func (c *fakeChart) FieldInfo() map[string]FieldInfo { return c.info }

func (c *fakeChart) Select(pred func(Element) bool) []Element {
	var out []Element
	for _, el := range c.elements {
		if pred(el) {
			out = append(out, el)
		}
	}
	return out
}

func (c *fakeChart) AddFilter(f Filter) { c.filters = append(c.filters, f) }

func (c *fakeChart) Refresh() {
	c.refreshes++
	if c.onRefresh != nil {
		c.onRefresh()
	}
}

func (c *fakeChart) SetClass(part ChartPart, class string, on bool) {
	c.classes[part][class] = on
}

func (c *fakeChart) AddOverlay(opts OverlayOptions) Overlay {
	c.overlay = &fakeOverlay{opts: opts, classes: map[string]bool{}}
	return c.overlay
}

func (c *fakeChart) EnableMultipleHighlight() { c.multi = true }

type fakeWindow struct {
	origin  Point
	scrolls map[int]func(ScrollEvent)
	clicks  map[int]func(Point)
	frames  []func()
	nextID  int
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{
		scrolls: map[int]func(ScrollEvent){},
		clicks:  map[int]func(Point){},
	}
}

func (w *fakeWindow) OnScroll(handler func(ScrollEvent)) func() {
	id := w.nextID
	w.nextID++
	w.scrolls[id] = handler
	return func() { delete(w.scrolls, id) }
}

func (w *fakeWindow) OnClick(handler func(Point)) func() {
	id := w.nextID
	w.nextID++
	w.clicks[id] = handler
	return func() { delete(w.clicks, id) }
}

func (w *fakeWindow) BodyOrigin() Point { return w.origin }

func (w *fakeWindow) AfterNextPaint(fn func()) { w.frames = append(w.frames, fn) }

func (w *fakeWindow) scroll(e ScrollEvent) {
	for _, h := range w.scrolls {
		h(e)
	}
}

func (w *fakeWindow) click(p Point) {
	for _, h := range w.clicks {
		h(p)
	}
}

func (w *fakeWindow) paint() {
	frames := w.frames
	w.frames = nil
	for _, fn := range frames {
		fn()
	}
}

func rec(values map[string]any) *Record {
	return RecordFromMap(values)
}
