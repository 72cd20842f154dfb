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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teradata-labs/grouptip/pkg/observability"
)

type harness struct {
	ctrl   *Controller
	chart  *fakeChart
	window *fakeWindow
	point  *fakeElement
	label  *fakeElement
	tracer *observability.MockTracer
}

func newHarness(t *testing.T, settings Settings) *harness {
	t.Helper()
	h := &harness{
		window: newFakeWindow(),
		point:  newFakeElement(ElementPoint),
		label:  newFakeElement("ELEMENT.LABEL"),
		tracer: observability.NewMockTracer(),
	}
	h.chart = newFakeChart(h.point, h.label)
	if settings.Tracer == nil {
		settings.Tracer = h.tracer
	}
	if settings.Logger == nil {
		settings.Logger = zaptest.NewLogger(t)
	}
	ctrl, err := New(h.chart, h.window, settings)
	require.NoError(t, err)
	h.ctrl = ctrl
	ctrl.OnRender()
	return h
}

func (h *harness) overlay() *fakeOverlay {
	return h.chart.overlay
}

func (h *harness) hover(data []*Record, x, y float64) {
	h.point.emit(EventDataHover, DataEvent{Data: data, Pointer: Point{X: x, Y: y}})
}

func (h *harness) click(data []*Record, x, y float64) {
	h.point.emit(EventDataClick, DataEvent{Data: data, Pointer: Point{X: x, Y: y}})
}

func sample() []*Record {
	return []*Record{
		rec(map[string]any{"id": "a", "name": "alpha", "x": 2, "y": 1}),
		rec(map[string]any{"id": "b", "name": "beta", "x": 1, "y": 1}),
	}
}

func TestNew_RequiresChartAndWindow(t *testing.T) {
	_, err := New(nil, newFakeWindow(), Settings{})
	assert.Error(t, err)

	_, err = New(newFakeChart(), nil, Settings{})
	assert.Error(t, err)

	_, err = New(newFakeChart(), newFakeWindow(), Settings{RecordsLimit: -1})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestNew_PreparesOverlay(t *testing.T) {
	var initialized Overlay
	h := newHarness(t, Settings{
		AggregationGroupFields: []string{"region"},
		ShowReveal:             true,
		AfterInit:              func(o Overlay) { initialized = o },
	})

	assert.True(t, h.chart.multi)
	assert.Same(t, h.overlay(), initialized)
	assert.Equal(t, OverlayOptions{Spacing: 24, Auto: true, EffectClass: "fade"}, h.overlay().opts)
	assert.Contains(t, h.overlay().content, "i-role-content")
	assert.Contains(t, h.overlay().content, "i-role-reveal")
	assert.Equal(t, DefaultRecordsLimit, h.ctrl.Settings().RecordsLimit)
}

func TestController_HoverThenScroll(t *testing.T) {
	h := newHarness(t, Settings{})
	h.window.origin = Point{X: 10, Y: 5}
	data := sample()

	h.hover(data, 110, 105)

	state := h.ctrl.State()
	require.NotNil(t, state.Highlight)
	assert.Len(t, state.Highlight.Data, 2)
	assert.False(t, state.IsStuck)
	assert.True(t, h.overlay().visible)
	assert.Equal(t, 100.0, h.overlay().x)
	assert.Equal(t, 100.0, h.overlay().y)
	assert.Equal(t, "bottom-right", h.overlay().anchor)
	assert.True(t, h.chart.classes[PartTarget][ClassTarget])
	assert.Contains(t, h.overlay().content, "alpha")

	h.window.scroll(ScrollEvent{})

	state = h.ctrl.State()
	assert.Nil(t, state.Highlight)
	assert.False(t, h.overlay().visible)
	assert.False(t, h.chart.classes[PartTarget][ClassTarget])
	assert.Contains(t, h.point.fired, EventHighlight)
	assert.Contains(t, h.point.fired, EventHighlightDataPoint)
}

func TestController_ScrollInsideTableKeepsTooltip(t *testing.T) {
	h := newHarness(t, Settings{})
	h.hover(sample(), 1, 1)

	h.window.scroll(ScrollEvent{WithinTable: true})

	assert.True(t, h.ctrl.State().HasData())
	assert.True(t, h.overlay().visible)
}

func TestController_StickSuppressesHover(t *testing.T) {
	h := newHarness(t, Settings{})
	pinned := sample()
	other := []*Record{rec(map[string]any{"id": "c", "name": "gamma"})}

	h.click(pinned, 5, 5)
	require.True(t, h.ctrl.State().IsStuck)
	assert.True(t, h.overlay().classes[ClassStuck])
	assert.True(t, h.chart.classes[PartLayout][ClassTargetStuck])
	assert.Len(t, h.window.clicks, 1, "outside click listener")

	h.hover(other, 50, 50)
	h.hover(nil, 60, 60)

	state := h.ctrl.State()
	assert.True(t, state.IsStuck)
	assert.Same(t, pinned[0], state.Highlight.Data[0])
	assert.Equal(t, 5.0, h.overlay().x)
	assert.NotContains(t, h.overlay().content, "gamma")
}

func TestController_OutsideClick(t *testing.T) {
	h := newHarness(t, Settings{})
	h.click(sample(), 5, 5)
	h.overlay().bounds = Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}

	h.window.click(Point{X: 50, Y: 50})
	assert.True(t, h.ctrl.State().IsStuck, "click inside the overlay keeps the pin")

	h.window.click(Point{X: 150, Y: 50})
	state := h.ctrl.State()
	assert.False(t, state.IsStuck)
	assert.Nil(t, state.Highlight)
	assert.Empty(t, h.window.clicks)
	assert.False(t, h.overlay().classes[ClassStuck])
}

func TestController_UnpinDefersLayoutClass(t *testing.T) {
	h := newHarness(t, Settings{})
	h.click(sample(), 5, 5)
	h.window.paint()

	h.ctrl.Apply(Release())

	assert.False(t, h.overlay().classes[ClassStuck])
	assert.True(t, h.chart.classes[PartLayout][ClassTargetStuck], "layout class waits for the next paint")

	h.window.paint()
	assert.False(t, h.chart.classes[PartLayout][ClassTargetStuck])
}

func TestController_ShowReappliesTargetClassAfterPaint(t *testing.T) {
	h := newHarness(t, Settings{})
	h.hover(sample(), 1, 1)
	require.Len(t, h.window.frames, 1)

	h.chart.classes[PartTarget][ClassTarget] = false
	h.window.paint()

	assert.True(t, h.chart.classes[PartTarget][ClassTarget])
}

func TestController_ClickWithEmptyDataReleases(t *testing.T) {
	h := newHarness(t, Settings{})
	h.click(sample(), 5, 5)

	h.click(nil, 5, 5)

	assert.Equal(t, State{}, h.ctrl.State())
}

func TestController_OnRenderResubscribes(t *testing.T) {
	h := newHarness(t, Settings{})
	assert.Equal(t, 2, h.point.handlerCount())
	assert.Equal(t, 0, h.label.handlerCount())

	h.hover(sample(), 1, 1)
	h.ctrl.OnRender()
	h.ctrl.OnRender()

	assert.Equal(t, 2, h.point.handlerCount())
	assert.False(t, h.ctrl.State().HasData())
}

func TestController_VisibleFields(t *testing.T) {
	record := RecordFromMap(map[string]any{"id": "a", "name": "alpha", "detail": "d", "x": 1})

	tests := []struct {
		name     string
		settings Settings
		info     map[string]FieldInfo
		want     []string
	}{
		{
			name:     "explicit",
			settings: Settings{Fields: []string{"name", "x"}},
			want:     []string{"name", "x"},
		},
		{
			name: "hook",
			settings: Settings{GetFields: func(Chart) []string {
				return []string{"id"}
			}},
			want: []string{"id"},
		},
		{
			name:     "auto detected",
			settings: Settings{},
			want:     []string{"detail", "id", "name", "x"},
		},
		{
			name:     "complex fields skipped",
			settings: Settings{},
			info:     map[string]FieldInfo{"detail": {IsComplexField: true}},
			want:     []string{"id", "name", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.settings)
			if tt.info != nil {
				h.chart.info = tt.info
				h.ctrl.OnRender()
			}
			got := h.ctrl.visibleFields(&Highlight{Data: []*Record{record}}, h.ctrl.Settings())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestController_ExcludeUsesRecordIdentity(t *testing.T) {
	h := newHarness(t, Settings{ShowExclude: true})
	target := rec(map[string]any{"id": "a", "v": 1})
	twin := rec(map[string]any{"id": "a", "v": 1})
	other := rec(map[string]any{"id": "b", "v": 2})
	h.hover([]*Record{target, other}, 1, 1)
	assert.Contains(t, h.overlay().content, `data-id="a"`)

	require.NoError(t, h.ctrl.HandleAction(RoleExclude, "a"))

	require.Len(t, h.chart.filters, 1)
	f := h.chart.filters[0]
	assert.Equal(t, ExcludeFilterTag, f.Tag)
	assert.False(t, f.Predicate(target))
	assert.True(t, f.Predicate(twin), "a record with the same values is kept")
	assert.True(t, f.Predicate(other))
	assert.Equal(t, 1, h.chart.refreshes)
	assert.False(t, h.ctrl.State().HasData())

	metrics := h.tracer.Metrics("tooltip.action")
	require.Len(t, metrics, 1)
	assert.Equal(t, "true", metrics[0].Labels["matched"])
}

func TestController_ExcludeUnknownRowKeepsEverything(t *testing.T) {
	h := newHarness(t, Settings{})
	data := sample()
	h.hover(data, 1, 1)

	require.NoError(t, h.ctrl.Exclude("missing"))

	require.Len(t, h.chart.filters, 1)
	for _, r := range data {
		assert.True(t, h.chart.filters[0].Predicate(r))
	}
}

func TestController_ExcludeWithoutHighlight(t *testing.T) {
	h := newHarness(t, Settings{})

	require.NoError(t, h.ctrl.Exclude("a"))

	assert.Empty(t, h.chart.filters)
	assert.Zero(t, h.chart.refreshes)
}

func TestController_Reveal(t *testing.T) {
	var gotFilters map[string]any
	var gotRecord *Record
	h := newHarness(t, Settings{
		AggregationGroupFields: []string{"region", "year", "segment"},
		OnRevealAggregation: func(filters map[string]any, r *Record) {
			gotFilters, gotRecord = filters, r
		},
	})
	first := rec(map[string]any{"region": "EU", "year": 2020, "total": 10, "x": 0})
	h.click([]*Record{first, rec(map[string]any{"region": "US", "year": 2021, "x": 1})}, 1, 1)

	require.NoError(t, h.ctrl.HandleAction(RoleReveal, ""))

	assert.Equal(t, map[string]any{"region": "EU", "year": 2020}, gotFilters)
	assert.Same(t, first, gotRecord)
	assert.False(t, h.ctrl.State().IsStuck, "actions release a pinned tooltip")
}

func TestController_HandleActionUnknownRole(t *testing.T) {
	h := newHarness(t, Settings{})
	h.click(sample(), 1, 1)

	err := h.ctrl.HandleAction("zoom", "")

	require.Error(t, err)
	assert.True(t, h.ctrl.State().IsStuck)
}

func TestController_Destroy(t *testing.T) {
	h := newHarness(t, Settings{})
	h.click(sample(), 1, 1)

	h.ctrl.Destroy()
	h.ctrl.Destroy()

	assert.True(t, h.overlay().destroyed)
	assert.Equal(t, State{}, h.ctrl.State())
	assert.Zero(t, h.point.handlerCount())
	assert.Empty(t, h.window.scrolls)
	assert.Empty(t, h.window.clicks)
	assert.False(t, h.chart.classes[PartTarget][ClassTarget])

	h.ctrl.Apply(Hover(&Highlight{Data: sample()}))
	assert.False(t, h.ctrl.State().HasData())
	assert.ErrorIs(t, h.ctrl.Exclude("a"), ErrDestroyed)
	assert.ErrorIs(t, h.ctrl.Reveal(), ErrDestroyed)
	assert.ErrorIs(t, h.ctrl.Reconfigure(Settings{}), ErrDestroyed)
}

func TestController_Reconfigure(t *testing.T) {
	h := newHarness(t, Settings{})
	h.hover(sample(), 1, 1)

	err := h.ctrl.Reconfigure(Settings{
		RecordsLimit: 3,
		Formatters:   map[string]FormatterSpec{"name": {Label: "Name"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, h.ctrl.Settings().RecordsLimit)
	assert.Same(t, h.tracer, h.ctrl.Settings().Tracer)
	assert.False(t, h.ctrl.State().HasData())

	h.hover(sample(), 1, 1)
	assert.Contains(t, h.overlay().content, "Name")

	assert.ErrorIs(t, h.ctrl.Reconfigure(Settings{RecordsLimit: -2}), ErrInvalidSettings)
}

func TestController_ReentrantApplyIsQueued(t *testing.T) {
	h := newHarness(t, Settings{})
	h.overlay().onShow = func() {
		h.overlay().onShow = nil
		h.ctrl.Apply(Release())
	}

	h.hover(sample(), 1, 1)

	// The release requested while showing runs after the remaining effects
	// of the hover transition.
	assert.Equal(t, []string{"hide", "position", "show", "position", "hide"}, h.overlay().calls)
	assert.False(t, h.ctrl.State().HasData())
}

func TestController_ExcludeRefreshMayHighlightAgain(t *testing.T) {
	h := newHarness(t, Settings{})
	h.chart.onRefresh = func() {
		h.ctrl.Apply(Hover(&Highlight{Data: sample()}))
	}
	h.hover(sample(), 1, 1)

	require.NoError(t, h.ctrl.Exclude("a"))

	assert.True(t, h.ctrl.State().HasData())
}

func TestController_TracesTransitions(t *testing.T) {
	h := newHarness(t, Settings{})
	h.tracer.Reset()

	h.hover(sample(), 1, 1)

	spans := h.tracer.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, "tooltip.apply", spans[0].Name)
	assert.Equal(t, "hover", spans[0].Attributes["source"])
	assert.Equal(t, 2, spans[0].Attributes["records"])

	var effects []string
	for _, m := range h.tracer.Metrics("tooltip.effect") {
		effects = append(effects, m.Labels["effect"])
	}
	assert.Equal(t, "hide,show,target-class,position", strings.Join(effects, ","))
}
