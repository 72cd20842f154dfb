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
	"fmt"

	"github.com/teradata-labs/grouptip/pkg/tooltip"
)

type handler struct {
	id    int
	event string
	fn    tooltip.EventHandler
}

// element is one series of the chart.
type element struct {
	chart   *Chart
	key     string
	color   string
	class   string
	records []*tooltip.Record

	handlers []handler
	nextID   int
	marks    map[string]func(*tooltip.Record) bool
}

func newElement(c *Chart, key string) *element {
	return &element{
		chart: c,
		key:   key,
		color: c.palette.color(key),
		class: fmt.Sprintf("color20-%d", c.palette.index(key)+1),
		marks: map[string]func(*tooltip.Record) bool{},
	}
}

func (e *element) Type() tooltip.ElementType {
	return e.chart.opts.Type
}

func (e *element) ScreenModel() tooltip.ScreenModel {
	return screenModel{chart: e.chart}
}

func (e *element) On(event string, fn tooltip.EventHandler) func() {
	id := e.nextID
	e.nextID++
	e.handlers = append(e.handlers, handler{id: id, event: event, fn: fn})
	return func() {
		for i, h := range e.handlers {
			if h.id == id {
				e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
				return
			}
		}
	}
}

// Fire sets the records marked by event. A nil filter clears the mark.
func (e *element) Fire(event string, filter func(*tooltip.Record) bool) {
	if filter == nil {
		delete(e.marks, event)
		return
	}
	e.marks[event] = filter
}

func (e *element) highlighted(r *tooltip.Record) bool {
	for _, mark := range e.marks {
		if mark(r) {
			return true
		}
	}
	return false
}

func (e *element) emit(event string, data tooltip.DataEvent) {
	// Handlers may unsubscribe while running.
	handlers := append([]handler(nil), e.handlers...)
	for _, h := range handlers {
		if h.event == event {
			h.fn(e, data)
		}
	}
}

// screenModel maps records to their cell and series on the chart.
type screenModel struct {
	chart *Chart
}

func (m screenModel) X(r *tooltip.Record) float64 { return float64(m.chart.cells[r].x) }
func (m screenModel) Y(r *tooltip.Record) float64 { return float64(m.chart.cells[r].y) }
func (m screenModel) ID(r *tooltip.Record) string { return m.chart.ids[r] }

func (m screenModel) Color(r *tooltip.Record) string {
	return m.chart.palette.color(m.chart.seriesKey(r))
}

func (m screenModel) Class(r *tooltip.Record) string {
	return fmt.Sprintf("color20-%d", m.chart.palette.index(m.chart.seriesKey(r))+1)
}
