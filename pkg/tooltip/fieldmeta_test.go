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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMetaSet_Fallback(t *testing.T) {
	var meta FieldMetaSet

	assert.Equal(t, "missing", meta.Label("missing"))
	assert.Equal(t, "5", meta.Format("missing")(5))
	assert.Equal(t, "x", meta.Format("missing")("x"))
	assert.Equal(t, "", meta.Format("missing")(nil))
}

func TestResolve_Introspection(t *testing.T) {
	info := map[string]FieldInfo{
		"region":      {Label: "Region"},
		"region.code": {Label: "Code", ParentField: "region"},
		"tags":        {Label: "Tags", IsComplexField: true},
	}

	meta, skip := Resolve(info, nil, nil)

	assert.Equal(t, "Region", meta.Label("region"))
	assert.NotContains(t, meta, "region.code")
	assert.Equal(t, "Tags", meta.Label("tags"), "complex fields keep their metadata")
	assert.Equal(t, map[string]bool{"tags": true}, skip)
}

func TestResolve_Precedence(t *testing.T) {
	chartFormat := func(v any) string { return "chart" }
	userFormat := func(v any) string { return "user" }
	info := map[string]FieldInfo{
		"labelled":  {Label: "Chart label", NullAlias: "nothing"},
		"formatted": {Label: "Formatted", Format: chartFormat},
		"spec":      {Format: chartFormat},
		"func":      {Format: chartFormat},
	}
	formatters := map[string]FormatterSpec{
		"labelled":  {},
		"formatted": {Label: "Mine"},
		"spec":      FormatString("percent"),
		"func":      FormatFunc(userFormat),
		"unknown":   {},
	}

	meta, _ := Resolve(info, formatters, nil)

	tests := []struct {
		field string
		value any
		label string
		text  string
	}{
		{field: "labelled", value: nil, label: "Chart label", text: "nothing"},
		{field: "labelled", value: 4, label: "Chart label", text: "4"},
		{field: "formatted", value: 1, label: "Mine", text: "chart"},
		{field: "spec", value: 0.5, label: "spec", text: "50%"},
		{field: "spec", value: nil, label: "spec", text: "No spec"},
		{field: "func", value: 1, label: "func", text: "user"},
		{field: "unknown", value: nil, label: "unknown", text: "No unknown"},
		{field: "unknown", value: 2.25, label: "unknown", text: "2.25"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.label, meta.Label(tt.field))
			assert.Equal(t, tt.text, meta.Format(tt.field)(tt.value))
		})
	}
}

func TestResolve_UserNullAlias(t *testing.T) {
	meta, _ := Resolve(
		map[string]FieldInfo{"v": {NullAlias: "chart"}},
		map[string]FormatterSpec{"v": {NullAlias: "user", Spec: "si", HasSpec: true}},
		nil,
	)

	assert.Equal(t, "user", meta.Format("v")(nil))
	assert.Equal(t, "user", meta["v"].NullAlias)
}

func TestResolve_CustomTickFormat(t *testing.T) {
	var gotSpec, gotAlias string
	tick := func(spec, nullAlias string) Formatter {
		gotSpec, gotAlias = spec, nullAlias
		return func(any) string { return "tick" }
	}

	meta, _ := Resolve(nil, map[string]FormatterSpec{"v": FormatString("")}, tick)

	assert.Equal(t, "tick", meta.Format("v")(1))
	assert.Equal(t, "", gotSpec)
	assert.Equal(t, "No v", gotAlias)
}
