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

// Formatter turns a raw field value into display text.
type Formatter func(v any) string

// TickFormatFunc resolves a format spec string into a formatter that renders
// nil values as nullAlias. An empty spec selects the default formatter.
type TickFormatFunc func(spec string, nullAlias string) Formatter

// FieldMeta is the display metadata of one field.
type FieldMeta struct {
	Label     string
	Format    Formatter
	NullAlias string
}

// FieldMetaSet maps field names to their display metadata. Lookups are
// total: unknown fields get their own name as label and an identity format.
type FieldMetaSet map[string]FieldMeta

// Label returns the display label of field.
func (s FieldMetaSet) Label(field string) string {
	if m, ok := s[field]; ok && m.Label != "" {
		return m.Label
	}
	return field
}

// Format returns the formatter of field.
func (s FieldMetaSet) Format(field string) Formatter {
	if m, ok := s[field]; ok && m.Format != nil {
		return m.Format
	}
	return identityFormat
}

func identityFormat(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// FormatterSpec is a user override for one field. It carries a formatter
// function, a format spec string, or neither, plus optional label and null
// alias. The zero value overrides nothing.
type FormatterSpec struct {
	Label     string
	NullAlias string
	Func      Formatter // used when non-nil
	Spec      string
	HasSpec   bool // Spec was supplied, even when empty
}

// FormatFunc overrides the formatter of a field with f.
func FormatFunc(f Formatter) FormatterSpec {
	return FormatterSpec{Func: f}
}

// FormatString overrides the formatter of a field with a tick format spec.
func FormatString(spec string) FormatterSpec {
	return FormatterSpec{Spec: spec, HasSpec: true}
}

func (fs FormatterSpec) hasFormat() bool {
	return fs.Func != nil || fs.HasSpec
}

// Resolve derives field display metadata from chart introspection and user
// formatters.
//
// Sub-fields (FieldInfo.ParentField set) are dropped. Complex fields are
// reported in skip but keep their metadata. For every user formatter the
// label and null alias default to the key and "No <key>", chart values
// override the defaults and user values override both.
func Resolve(info map[string]FieldInfo, formatters map[string]FormatterSpec, tick TickFormatFunc) (FieldMetaSet, map[string]bool) {
	if tick == nil {
		tick = DefaultTickFormat
	}

	meta := make(FieldMetaSet, len(info)+len(formatters))
	skip := make(map[string]bool)
	for k, fi := range info {
		if fi.IsComplexField {
			skip[k] = true
		}
		if fi.ParentField != "" {
			continue
		}
		meta[k] = FieldMeta{Label: fi.Label, Format: fi.Format, NullAlias: fi.NullAlias}
	}

	for k, spec := range formatters {
		m := FieldMeta{Label: k, NullAlias: "No " + k}
		base, known := meta[k]
		if known {
			if base.Label != "" {
				m.Label = base.Label
			}
			if base.NullAlias != "" {
				m.NullAlias = base.NullAlias
			}
		}
		if spec.Label != "" {
			m.Label = spec.Label
		}
		if spec.NullAlias != "" {
			m.NullAlias = spec.NullAlias
		}

		switch {
		case spec.Func != nil:
			m.Format = spec.Func
		case spec.HasSpec:
			m.Format = tick(spec.Spec, m.NullAlias)
		case known && base.Format != nil:
			m.Format = base.Format
		default:
			m.Format = tick("", m.NullAlias)
		}
		meta[k] = m
	}

	return meta, skip
}
