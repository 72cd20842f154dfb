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
	"github.com/teradata-labs/grouptip/pkg/tooltip"
)

type listener[T any] struct {
	id int
	fn func(T)
}

// Window dispatches terminal wide scroll and click events and runs work
// scheduled for after the next paint. It implements tooltip.Window.
type Window struct {
	origin  tooltip.Point
	nextID  int
	scrolls []listener[tooltip.ScrollEvent]
	clicks  []listener[tooltip.Point]
	frames  []func()
}

// NewWindow creates a window whose document origin is at origin.
func NewWindow(origin tooltip.Point) *Window {
	return &Window{origin: origin}
}

// OnScroll implements tooltip.Window.
func (w *Window) OnScroll(fn func(tooltip.ScrollEvent)) func() {
	id := w.register()
	w.scrolls = append(w.scrolls, listener[tooltip.ScrollEvent]{id: id, fn: fn})
	return func() { w.scrolls = remove(w.scrolls, id) }
}

// OnClick implements tooltip.Window. Click listeners run before element
// click handlers.
func (w *Window) OnClick(fn func(tooltip.Point)) func() {
	id := w.register()
	w.clicks = append(w.clicks, listener[tooltip.Point]{id: id, fn: fn})
	return func() { w.clicks = remove(w.clicks, id) }
}

// BodyOrigin implements tooltip.Window.
func (w *Window) BodyOrigin() tooltip.Point {
	return w.origin
}

// AfterNextPaint implements tooltip.Window. Queued callbacks run on
// Painted, which Model calls one frame interval after the update that
// queued them.
func (w *Window) AfterNextPaint(fn func()) {
	w.frames = append(w.frames, fn)
}

// Scroll notifies scroll listeners.
func (w *Window) Scroll(e tooltip.ScrollEvent) {
	dispatch(w.scrolls, e)
}

// Click notifies click listeners.
func (w *Window) Click(p tooltip.Point) {
	dispatch(w.clicks, p)
}

// Pending reports whether work waits for the next paint.
func (w *Window) Pending() bool {
	return len(w.frames) > 0
}

// Painted runs the work scheduled before the paint that just happened.
// Work scheduled while running waits for the following paint.
func (w *Window) Painted() {
	frames := w.frames
	w.frames = nil
	for _, fn := range frames {
		fn()
	}
}

func (w *Window) register() int {
	id := w.nextID
	w.nextID++
	return id
}

func dispatch[T any](listeners []listener[T], v T) {
	for _, l := range append([]listener[T](nil), listeners...) {
		l.fn(v)
	}
}

func remove[T any](listeners []listener[T], id int) []listener[T] {
	for i, l := range listeners {
		if l.id == id {
			return append(listeners[:i:i], listeners[i+1:]...)
		}
	}
	return listeners
}
