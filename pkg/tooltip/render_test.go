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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []*Record {
	records := make([]*Record, n)
	for i := range records {
		// Reverse x so sorting has work to do.
		records[i] = rec(map[string]any{"id": fmt.Sprintf("r%d", i), "x": n - i, "y": 0, "total": i})
	}
	return records
}

func TestSortRecords(t *testing.T) {
	a := rec(map[string]any{"id": "a", "x": 2, "y": 1})
	b := rec(map[string]any{"id": "b", "x": 1, "y": 5})
	c := rec(map[string]any{"id": "c", "x": 1, "y": 2})
	d := rec(map[string]any{"id": "d", "x": 1, "y": 2})
	input := []*Record{a, b, c, d}

	sorted := SortRecords(input, fakeModel{})

	assert.Equal(t, []*Record{c, d, b, a}, sorted)
	assert.Equal(t, []*Record{a, b, c, d}, input, "input is left untouched")
}

func TestBuildTable(t *testing.T) {
	records := []*Record{
		rec(map[string]any{"id": "a", "region": "EU", "total": 3.5, "x": 2}),
		rec(map[string]any{"id": "b", "region": "EU", "total": nil, "x": 1}),
	}
	meta := FieldMetaSet{"total": {Label: "Total"}, "region": {Label: "Region"}}

	table := buildTable(RenderInput{
		Records:  records,
		Fields:   []string{"region", "total"},
		GroupDim: "region",
		Model:    fakeModel{},
		Meta:     meta,
	})

	require.NotNil(t, table.Group)
	assert.Equal(t, groupHeader{Field: "Region", Value: "EU"}, *table.Group)
	assert.Equal(t, []string{"Total"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "b", table.Rows[0].ID)
	assert.Equal(t, tableCell{Value: "", Numeric: false}, table.Rows[0].Cells[0])
	assert.Equal(t, tableCell{Value: "3.5", Numeric: true}, table.Rows[1].Cells[0])
	assert.False(t, table.IsLimited)
}

func TestBuildTable_NoModel(t *testing.T) {
	table := buildTable(RenderInput{Records: []*Record{rec(map[string]any{"a": 1})}, Fields: []string{"a"}})

	require.Len(t, table.Rows, 1)
	assert.Empty(t, table.Rows[0].ID)
	assert.Nil(t, table.Group)
}

func TestHTMLRenderer_Limit(t *testing.T) {
	tests := []struct {
		name    string
		records int
		limit   int
		limited int
	}{
		{name: "under default limit", records: 8, limit: 0, limited: 0},
		{name: "over default limit", records: 10, limit: 0, limited: 2},
		{name: "custom limit", records: 5, limit: 2, limited: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := HTMLRenderer{}.Render(RenderInput{
				Records: numbered(tt.records),
				Fields:  []string{"total"},
				Model:   fakeModel{},
				Limit:   tt.limit,
			})

			assert.Equal(t, tt.records, strings.Count(out, "graphical-report__tooltip__table__row__color"))
			assert.Equal(t, tt.limited, strings.Count(out, ClassRowLimited))
			indicator := 0
			if tt.limited > 0 {
				indicator = 1
			}
			assert.Equal(t, indicator, strings.Count(out, `<div class="graphical-report__tooltip__limit">...</div>`))
		})
	}
}

func TestHTMLRenderer_LimitedRowsAreTheLastSorted(t *testing.T) {
	out := HTMLRenderer{}.Render(RenderInput{
		Records: numbered(3),
		Fields:  []string{"id"},
		Model:   fakeModel{},
		Limit:   2,
	})

	// x is 3, 2, 1 for r0, r1, r2, so r0 sorts last.
	limitedAt := strings.Index(out, ClassRowLimited)
	require.Positive(t, limitedAt)
	assert.Less(t, strings.Index(out, ">r2<"), limitedAt)
	assert.Less(t, strings.Index(out, ">r1<"), limitedAt)
	assert.Greater(t, strings.Index(out, ">r0<"), limitedAt)
}

func TestHTMLRenderer_Markup(t *testing.T) {
	records := []*Record{
		rec(map[string]any{"id": `a"1`, "name": "<b>x</b>", "total": 7, "region": "EU"}),
	}

	out := HTMLRenderer{}.Render(RenderInput{
		Records:     records,
		Fields:      []string{"name", "total", "region"},
		GroupDim:    "region",
		Model:       fakeModel{},
		Meta:        FieldMetaSet{"name": {Label: "Na<me"}},
		ShowExclude: true,
	})

	assert.Contains(t, out, `<span class="graphical-report__tooltip__groupby__field">region</span>`)
	assert.Contains(t, out, `<span class="graphical-report__tooltip__groupby__value">EU</span>`)
	assert.Equal(t, 2, strings.Count(out, "Na&lt;me"), "header label is doubled for the fixed header")
	assert.Contains(t, out, "&lt;b&gt;x&lt;/b&gt;")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, ClassCellNumeric)
	assert.Contains(t, out, `data-id="a&#34;1"`)
	assert.Contains(t, out, "i-role-exclude")
	assert.Contains(t, out, "background-color: #1f77b4;")
	assert.Contains(t, out, "color20-1")
	assert.NotContains(t, out, "graphical-report__tooltip__limit")
}

type colorModel struct {
	fakeModel
	color string
}

func (m colorModel) Color(*Record) string { return m.color }

func TestHTMLRenderer_SwatchColorSyntax(t *testing.T) {
	tests := []string{"#1f77b4", "rgb(31, 119, 180)", "hsl(120, 50%, 50%)", "steelblue"}

	for _, color := range tests {
		t.Run(color, func(t *testing.T) {
			out := HTMLRenderer{}.Render(RenderInput{
				Records: numbered(1),
				Fields:  []string{"total"},
				Model:   colorModel{color: color},
			})

			assert.Contains(t, out, "background-color: "+color+";")
			assert.NotContains(t, out, "ZgotmplZ")
		})
	}
}

func TestHTMLRenderer_NoExcludeControl(t *testing.T) {
	out := HTMLRenderer{}.Render(RenderInput{
		Records: numbered(1),
		Fields:  []string{"total"},
		Model:   fakeModel{},
	})

	assert.NotContains(t, out, "i-role-exclude")
	assert.NotContains(t, out, "groupby")
}

func TestHTMLRenderer_Wrap(t *testing.T) {
	r := HTMLRenderer{}

	plain := r.Wrap("<i>c</i>", false)
	assert.Equal(t, `<div class="i-role-content graphical-report__tooltip__content"><i>c</i></div>`, plain)

	reveal := r.Wrap("", true)
	assert.Contains(t, reveal, "i-role-reveal")
	assert.Contains(t, reveal, ">Reveal</div>")
}
