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
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/teradata-labs/grouptip/pkg/observability"
)

// ErrDestroyed is returned by actions on a destroyed controller.
var ErrDestroyed = errors.New("tooltip controller destroyed")

// Overlay placement and options used for every controller.
const (
	overlayAnchor  = "bottom-right"
	overlaySpacing = 24
	overlayEffect  = "fade"
)

// Controller attaches a grouped tooltip to a chart.
//
// Methods are meant to be called from the host UI goroutine. Patches applied
// while effects of an earlier patch are running are queued and processed in
// order, so transitions never interleave.
type Controller struct {
	chart   Chart
	window  Window
	overlay Overlay

	mu            sync.Mutex
	settings      Settings
	logger        *zap.Logger
	tracer        observability.Tracer
	state         State
	meta          FieldMetaSet
	skip          map[string]bool
	pending       []Patch
	applying      bool
	destroyed     bool
	cancelScroll  func()
	cancelOutside func()
	subscriptions []func()
}

// New attaches a controller to chart. The overlay is created immediately;
// metadata and event subscriptions are built by OnRender.
func New(chart Chart, window Window, settings Settings) (*Controller, error) {
	if chart == nil {
		return nil, errors.New("tooltip: chart is required")
	}
	if window == nil {
		return nil, errors.New("tooltip: window is required")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := settings.withDefaults()
	s.warnIgnoredFormatters()

	c := &Controller{
		chart:    chart,
		window:   window,
		settings: s,
		logger:   s.Logger,
		tracer:   s.Tracer,
		meta:     FieldMetaSet{},
		skip:     map[string]bool{},
	}

	if mh, ok := chart.(MultiHighlighter); ok {
		mh.EnableMultipleHighlight()
	}

	c.overlay = chart.AddOverlay(OverlayOptions{
		Spacing:     overlaySpacing,
		Auto:        true,
		EffectClass: overlayEffect,
	})
	c.overlay.Content(s.Renderer.Wrap("", showReveal(s)))
	c.cancelScroll = window.OnScroll(c.handleScroll)

	if s.AfterInit != nil {
		s.AfterInit(c.overlay)
	}

	c.logger.Debug("Tooltip controller attached",
		zap.Int("records_limit", s.RecordsLimit),
		zap.Strings("fields", s.Fields),
		zap.Bool("dock_to_data", s.DockToData))
	return c, nil
}

func showReveal(s Settings) bool {
	return s.ShowReveal && len(s.AggregationGroupFields) > 0
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Overlay returns the overlay owned by the controller.
func (c *Controller) Overlay() Overlay {
	return c.overlay
}

// Settings returns the effective settings, defaults included.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Apply merges p into the state and runs the resulting effects. It is the
// only way the state changes. Calls after Destroy are ignored.
func (c *Controller) Apply(p Patch) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.pending = append(c.pending, p)
	if c.applying {
		c.mu.Unlock()
		return
	}
	c.applying = true
	for len(c.pending) > 0 {
		patch := c.pending[0]
		c.pending = c.pending[1:]
		next, effects := Transition(c.state, patch)
		c.state = next
		meta, settings := c.meta, c.settings
		c.mu.Unlock()

		c.execute(patch.Source, next, effects, meta, settings)

		c.mu.Lock()
	}
	c.applying = false
	c.mu.Unlock()
}

func (c *Controller) execute(src Source, next State, effects []Effect, meta FieldMetaSet, settings Settings) {
	tracer := settings.Tracer
	_, span := tracer.StartSpan(context.Background(), "tooltip.apply",
		observability.WithAttribute("source", src.String()))
	defer tracer.EndSpan(span)

	records := 0
	if next.Highlight != nil {
		records = len(next.Highlight.Data)
	}
	span.SetAttribute("stuck", next.IsStuck)
	span.SetAttribute("records", records)
	span.SetAttribute("effects", len(effects))

	settings.Logger.Debug("Tooltip transition",
		zap.Stringer("source", src),
		zap.Bool("stuck", next.IsStuck),
		zap.Int("records", records),
		zap.Int("effects", len(effects)))

	for _, e := range effects {
		if e.Deferred {
			c.window.AfterNextPaint(func() { c.runEffect(e, next, meta, settings) })
			continue
		}
		c.runEffect(e, next, meta, settings)
	}
}

func (c *Controller) runEffect(e Effect, state State, meta FieldMetaSet, settings Settings) {
	settings.Tracer.RecordMetric("tooltip.effect", 1, map[string]string{
		"effect":   e.Kind.String(),
		"deferred": boolLabel(e.Deferred),
	})

	switch e.Kind {
	case EffectHide:
		c.overlay.Hide()
	case EffectShow:
		c.showTooltip(state.Highlight, meta, settings)
	case EffectPosition:
		c.overlay.Position(e.Cursor.X, e.Cursor.Y)
	case EffectTargetClass:
		c.chart.SetClass(PartTarget, ClassTarget, e.On)
	case EffectClearFocus:
		c.clearFocus()
	case EffectListenOutside:
		c.listenOutside(e.On)
	case EffectStuckClass:
		c.overlay.SetClass(ClassStuck, e.On)
	case EffectTargetStuckClass:
		c.chart.SetClass(PartLayout, ClassTargetStuck, e.On)
	case EffectUpdateSize:
		c.overlay.UpdateSize()
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (c *Controller) showTooltip(h *Highlight, meta FieldMetaSet, settings Settings) {
	if !h.hasData() {
		return
	}
	var model ScreenModel
	if h.Unit != nil {
		model = h.Unit.ScreenModel()
	}
	content := settings.Renderer.Render(RenderInput{
		Records:     h.Data,
		Fields:      c.visibleFields(h, settings),
		GroupDim:    h.GroupDim,
		Model:       model,
		Meta:        meta,
		Limit:       settings.RecordsLimit,
		ShowExclude: settings.ShowExclude,
	})
	c.overlay.Content(settings.Renderer.Wrap(content, showReveal(settings)))
	c.overlay.Position(h.Cursor.X, h.Cursor.Y)
	c.overlay.Place(overlayAnchor)
	c.overlay.Show()
	c.overlay.UpdateSize()
}

// visibleFields picks the rendered fields: explicit settings, then the
// GetFields hook, then the keys of the first record minus complex fields.
func (c *Controller) visibleFields(h *Highlight, settings Settings) []string {
	if len(settings.Fields) > 0 {
		return settings.Fields
	}
	if settings.GetFields != nil {
		if fields := settings.GetFields(c.chart); len(fields) > 0 {
			return fields
		}
	}
	c.mu.Lock()
	skip := c.skip
	c.mu.Unlock()

	var fields []string
	for _, k := range h.Data[0].Keys() {
		if !skip[k] {
			fields = append(fields, k)
		}
	}
	return fields
}

func (c *Controller) clearFocus() {
	for _, el := range c.chart.Select(func(Element) bool { return true }) {
		el.Fire(EventHighlight, nil)
		el.Fire(EventHighlightDataPoint, nil)
	}
}

func (c *Controller) listenOutside(on bool) {
	c.mu.Lock()
	cancel := c.cancelOutside
	c.cancelOutside = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if !on {
		return
	}
	cancel = c.window.OnClick(c.handleOutsideClick)
	c.mu.Lock()
	c.cancelOutside = cancel
	c.mu.Unlock()
}

func (c *Controller) handleOutsideClick(p Point) {
	if c.overlay.Bounds().Contains(p) {
		return
	}
	c.Apply(releaseFrom(SourceOutsideClick))
}

func (c *Controller) handleScroll(e ScrollEvent) {
	if e.WithinTable {
		return
	}
	c.Apply(releaseFrom(SourceScroll))
}

// OnRender must be called by the host after every chart render. It rebuilds
// field metadata and element subscriptions and resets the state.
func (c *Controller) OnRender() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	settings := c.settings
	c.mu.Unlock()

	meta, skip := Resolve(c.chart.FieldInfo(), settings.Formatters, settings.TickFormat)

	c.mu.Lock()
	c.meta = meta
	c.skip = skip
	c.mu.Unlock()

	c.subscribe()
	c.Apply(releaseFrom(SourceRender))
}

// Reconfigure replaces the settings and re-runs OnRender. Logger and tracer
// are kept when the new settings leave them unset.
func (c *Controller) Reconfigure(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}
	if settings.Logger == nil {
		settings.Logger = c.logger
	}
	if settings.Tracer == nil {
		settings.Tracer = c.tracer
	}
	c.settings = settings.withDefaults()
	c.settings.warnIgnoredFormatters()
	c.logger = c.settings.Logger
	c.tracer = c.settings.Tracer
	logger := c.logger
	c.mu.Unlock()

	logger.Info("Tooltip settings reloaded", zap.Int("formatters", len(settings.Formatters)))
	c.OnRender()
	return nil
}

// Destroy releases every listener, clears the state and destroys the
// overlay. It is safe to call more than once.
func (c *Controller) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	cancelScroll := c.cancelScroll
	c.cancelScroll = nil
	c.mu.Unlock()

	if cancelScroll != nil {
		cancelScroll()
	}
	c.chart.SetClass(PartTarget, ClassTarget, false)
	c.Apply(releaseFrom(SourceDestroy))

	c.mu.Lock()
	c.destroyed = true
	subs := c.subscriptions
	c.subscriptions = nil
	cancelOutside := c.cancelOutside
	c.cancelOutside = nil
	logger := c.logger
	c.mu.Unlock()

	for _, unsubscribe := range subs {
		unsubscribe()
	}
	if cancelOutside != nil {
		cancelOutside()
	}
	c.overlay.Destroy()
	logger.Debug("Tooltip controller destroyed")
}
