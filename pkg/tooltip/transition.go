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

// Source tells where a state patch came from.
type Source int

const (
	// SourceProgram is a programmatic patch (the zero value).
	SourceProgram Source = iota
	SourceHover
	SourceClick
	SourceScroll
	SourceOutsideClick
	SourceAction
	SourceRender
	SourceDestroy
)

func (s Source) String() string {
	switch s {
	case SourceProgram:
		return "program"
	case SourceHover:
		return "hover"
	case SourceClick:
		return "click"
	case SourceScroll:
		return "scroll"
	case SourceOutsideClick:
		return "outside-click"
	case SourceAction:
		return "action"
	case SourceRender:
		return "render"
	case SourceDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// Patch is a partial state merged into the current state by Apply. Only the
// keys marked as set are merged.
type Patch struct {
	Highlight    *Highlight
	SetHighlight bool
	IsStuck      bool
	SetStuck     bool
	Source       Source
}

// Hover replaces the highlight without touching the pin. A nil or empty
// highlight hides the tooltip unless it is stuck.
func Hover(h *Highlight) Patch {
	if !h.hasData() {
		h = nil
	}
	return Patch{Highlight: h, SetHighlight: true, Source: SourceHover}
}

// Click pins h. A nil or empty highlight releases the tooltip.
func Click(h *Highlight) Patch {
	if !h.hasData() {
		return releaseFrom(SourceClick)
	}
	return Patch{Highlight: h, SetHighlight: true, IsStuck: true, SetStuck: true, Source: SourceClick}
}

// Release clears the highlight and the pin.
func Release() Patch {
	return releaseFrom(SourceProgram)
}

func releaseFrom(src Source) Patch {
	return Patch{SetHighlight: true, SetStuck: true, Source: src}
}

// EffectKind is a host side effect requested by a transition.
type EffectKind int

const (
	// EffectHide hides the overlay.
	EffectHide EffectKind = iota
	// EffectShow renders the highlight into the overlay, positions and shows it.
	EffectShow
	// EffectPosition moves the overlay to Effect.Cursor.
	EffectPosition
	// EffectTargetClass toggles the chart target class.
	EffectTargetClass
	// EffectClearFocus clears highlight decorations on every chart element.
	EffectClearFocus
	// EffectListenOutside starts or stops listening for outside clicks.
	EffectListenOutside
	// EffectStuckClass toggles the overlay stuck class.
	EffectStuckClass
	// EffectTargetStuckClass toggles the chart layout stuck class.
	EffectTargetStuckClass
	// EffectUpdateSize makes the overlay recompute its size.
	EffectUpdateSize
)

func (k EffectKind) String() string {
	switch k {
	case EffectHide:
		return "hide"
	case EffectShow:
		return "show"
	case EffectPosition:
		return "position"
	case EffectTargetClass:
		return "target-class"
	case EffectClearFocus:
		return "clear-focus"
	case EffectListenOutside:
		return "listen-outside"
	case EffectStuckClass:
		return "stuck-class"
	case EffectTargetStuckClass:
		return "target-stuck-class"
	case EffectUpdateSize:
		return "update-size"
	default:
		return "unknown"
	}
}

// Effect is one host side effect. Deferred effects run after the next
// paint and never change state.
type Effect struct {
	Kind     EffectKind
	On       bool
	Deferred bool
	Cursor   Cursor
}

// Transition merges p into prev and returns the next state with the effects
// needed to bring the host in line with it.
//
// An explicit absent highlight releases the pin unless it comes from hover.
// While stuck, the highlight that was pinned is kept whatever the patch
// carries.
func Transition(prev State, p Patch) (State, []Effect) {
	next := prev
	if p.SetHighlight {
		next.Highlight = p.Highlight
		if !p.Highlight.hasData() {
			next.Highlight = nil
			if p.Source != SourceHover {
				next.IsStuck = false
			}
		}
	}
	if p.SetStuck {
		next.IsStuck = p.IsStuck
	}
	if next.IsStuck && prev.HasData() {
		next.Highlight = prev.Highlight
	}
	if next.IsStuck && !next.HasData() {
		next.IsStuck = false
	}

	var effects []Effect

	if !sameData(prev.Highlight.data(), next.Highlight.data()) {
		if next.HasData() {
			effects = append(effects,
				Effect{Kind: EffectHide},
				Effect{Kind: EffectShow, Cursor: next.Highlight.Cursor},
				Effect{Kind: EffectTargetClass, On: true},
				Effect{Kind: EffectTargetClass, On: true, Deferred: true},
			)
		} else if !next.IsStuck && prev.HasData() {
			effects = append(effects,
				Effect{Kind: EffectClearFocus},
				Effect{Kind: EffectHide},
				Effect{Kind: EffectTargetClass, On: false},
			)
		}
	}

	if next.HasData() && (prev.Highlight == nil || prev.Highlight.Cursor != next.Highlight.Cursor) {
		effects = append(effects, Effect{Kind: EffectPosition, Cursor: next.Highlight.Cursor})
	}

	if next.IsStuck != prev.IsStuck {
		if next.IsStuck {
			effects = append(effects,
				Effect{Kind: EffectListenOutside, On: true},
				Effect{Kind: EffectStuckClass, On: true},
				Effect{Kind: EffectTargetStuckClass, On: true},
				Effect{Kind: EffectUpdateSize},
			)
		} else {
			effects = append(effects,
				Effect{Kind: EffectListenOutside, On: false},
				Effect{Kind: EffectStuckClass, On: false},
				// The pointer event that released the pin would otherwise
				// re-trigger hover styling in the same frame.
				Effect{Kind: EffectTargetStuckClass, On: false, Deferred: true},
			)
		}
	}

	return next, effects
}
