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

// Package tooltip implements a grouped tooltip controller for interactive
// charts.
//
// A Controller listens to hover and click events emitted by chart elements,
// keeps a small state value (the current highlight and whether it is pinned)
// and drives a floating overlay supplied by the host: showing, positioning,
// pinning and hiding it. The overlay content is a table of the matched
// records, sorted by screen position, optionally grouped by one field and
// limited to a number of emphasized rows.
//
// State changes go through Transition, a pure function returning the next
// state and the list of host effects to execute. The Controller is the only
// caller and owns the state.
package tooltip

import (
	"sort"
)

// Record is one data point matched by the chart. Records are compared by
// identity: two records with equal fields are still distinct.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates a record whose fields iterate in the order of keys.
// Keys missing from values are kept and read as nil.
func NewRecord(keys []string, values map[string]any) *Record {
	r := &Record{
		keys:   make([]string, 0, len(keys)),
		values: make(map[string]any, len(values)),
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		r.keys = append(r.keys, k)
		r.values[k] = values[k]
	}
	return r
}

// RecordFromMap creates a record with keys in lexical order.
func RecordFromMap(values map[string]any) *Record {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return NewRecord(keys, values)
}

// Get returns the raw value of field and whether the record has it.
func (r *Record) Get(field string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[field]
	return v, ok
}

// Value returns the raw value of field, or nil.
func (r *Record) Value(field string) any {
	v, _ := r.Get(field)
	return v
}

// Has reports whether the record carries field.
func (r *Record) Has(field string) bool {
	_, ok := r.Get(field)
	return ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Cursor is a pointer position relative to the document origin.
type Cursor struct {
	X float64
	Y float64
}

// Highlight is the set of records currently emphasized plus its display
// context.
type Highlight struct {
	// Data is compared by slice identity, not content. A host must hand out
	// a new slice for a new batch; refilling a cached slice in place with
	// other records leaves the tooltip showing the old rows.
	Data     []*Record
	GroupDim string // empty when the batch is not grouped
	Cursor   Cursor
	Unit     Element // element that emitted the event
}

func (h *Highlight) hasData() bool {
	return h != nil && len(h.Data) > 0
}

func (h *Highlight) data() []*Record {
	if h == nil {
		return nil
	}
	return h.Data
}

// State is the controller state. IsStuck implies a highlight with data.
type State struct {
	Highlight *Highlight
	IsStuck   bool
}

// HasData reports whether the state carries at least one record.
func (s State) HasData() bool {
	return s.Highlight.hasData()
}

// sameData reports whether two record batches are the same batch, by
// identity of the backing array rather than by content.
func sameData(a, b []*Record) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
