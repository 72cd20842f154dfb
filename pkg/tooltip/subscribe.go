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

// hoverElementTypes are the element kinds whose data events drive the
// tooltip.
var hoverElementTypes = map[ElementType]bool{
	ElementLine:            true,
	ElementArea:            true,
	ElementPath:            true,
	ElementInterval:        true,
	ElementIntervalStacked: true,
	ElementPoint:           true,
}

// subscribe drops the subscriptions of the previous render and attaches to
// the elements of the current one.
func (c *Controller) subscribe() {
	c.mu.Lock()
	stale := c.subscriptions
	c.subscriptions = nil
	c.mu.Unlock()
	for _, unsubscribe := range stale {
		unsubscribe()
	}

	elements := c.chart.Select(func(el Element) bool {
		return hoverElementTypes[el.Type()]
	})
	subs := make([]func(), 0, 2*len(elements))
	for _, el := range elements {
		if u := el.On(EventDataHover, c.handleHover); u != nil {
			subs = append(subs, u)
		}
		if u := el.On(EventDataClick, c.handleClick); u != nil {
			subs = append(subs, u)
		}
	}

	c.mu.Lock()
	c.subscriptions = subs
	c.mu.Unlock()
}

// highlightFrom converts an element event into a highlight with a
// document-relative cursor. Empty data yields nil.
func (c *Controller) highlightFrom(sender Element, e DataEvent) *Highlight {
	if len(e.Data) == 0 {
		return nil
	}
	origin := c.window.BodyOrigin()
	return &Highlight{
		Data:     e.Data,
		GroupDim: e.GroupDim,
		Cursor: Cursor{
			X: e.Pointer.X - origin.X,
			Y: e.Pointer.Y - origin.Y,
		},
		Unit: sender,
	}
}

func (c *Controller) handleHover(sender Element, e DataEvent) {
	c.Apply(Hover(c.highlightFrom(sender, e)))
}

func (c *Controller) handleClick(sender Element, e DataEvent) {
	c.Apply(Click(c.highlightFrom(sender, e)))
}
