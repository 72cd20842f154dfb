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
	"html/template"
	"sort"
	"strings"
)

// Presentation classes shared with host stylesheets.
const (
	ClassTarget      = "graphical-report__tooltip-target"
	ClassTargetStuck = "graphical-report__tooltip-target-stuck"
	ClassStuck       = "stuck"
	ClassRowLimited  = "graphical-report__tooltip__table__row-limited"
	ClassCellNumeric = "graphical-report__tooltip__table__cell-numeric"
	ClassTableBody   = "graphical-report__tooltip__table-wrapper"
)

// RenderInput is one batch of matched records to render.
type RenderInput struct {
	Records     []*Record
	Fields      []string
	GroupDim    string
	Model       ScreenModel
	Meta        FieldMetaSet
	Limit       int
	ShowExclude bool
}

// Renderer turns a batch into overlay markup.
type Renderer interface {
	// Render builds the table content for a batch.
	Render(in RenderInput) string
	// Wrap builds the overlay body around rendered content.
	Wrap(content string, showReveal bool) string
}

type groupHeader struct {
	Field string
	Value string
}

type tableCell struct {
	Value   string
	Numeric bool
}

type tableRow struct {
	ID      string
	Color   string
	Class   string
	Limited bool
	Cells   []tableCell
}

type tableModel struct {
	Group       *groupHeader
	Headers     []string
	Rows        []tableRow
	IsLimited   bool
	ShowExclude bool
}

type nopModel struct{}

func (nopModel) X(*Record) float64 { return 0 }
func (nopModel) Y(*Record) float64 { return 0 }
func (nopModel) ID(*Record) string { return "" }
func (nopModel) Color(*Record) string { return "" }
func (nopModel) Class(*Record) string { return "" }

// SortRecords orders records by screen X then Y, the order of tooltip rows.
// The input slice is left untouched.
func SortRecords(records []*Record, model ScreenModel) []*Record {
	sorted := make([]*Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		xi, xj := model.X(sorted[i]), model.X(sorted[j])
		if xi != xj {
			return xi < xj
		}
		return model.Y(sorted[i]) < model.Y(sorted[j])
	})
	return sorted
}

func buildTable(in RenderInput) tableModel {
	model := in.Model
	if model == nil {
		model = nopModel{}
	}
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultRecordsLimit
	}

	fields := make([]string, 0, len(in.Fields))
	for _, f := range in.Fields {
		if f != in.GroupDim {
			fields = append(fields, f)
		}
	}
	records := SortRecords(in.Records, model)

	t := tableModel{
		Headers:     make([]string, len(fields)),
		Rows:        make([]tableRow, len(records)),
		IsLimited:   len(records) > limit,
		ShowExclude: in.ShowExclude,
	}
	if in.GroupDim != "" && len(records) > 0 {
		t.Group = &groupHeader{
			Field: in.Meta.Label(in.GroupDim),
			Value: in.Meta.Format(in.GroupDim)(records[0].Value(in.GroupDim)),
		}
	}
	for i, f := range fields {
		t.Headers[i] = in.Meta.Label(f)
	}
	for i, r := range records {
		row := tableRow{
			ID:      model.ID(r),
			Color:   model.Color(r),
			Class:   model.Class(r),
			Limited: i >= limit,
			Cells:   make([]tableCell, len(fields)),
		}
		for j, f := range fields {
			v := r.Value(f)
			row.Cells[j] = tableCell{Value: in.Meta.Format(f)(v), Numeric: isNumeric(v)}
		}
		t.Rows[i] = row
	}
	return t
}

// HTMLRenderer renders the tooltip as HTML. Header cells carry a fixed
// duplicate of their label so the header stays visible while rows scroll.
type HTMLRenderer struct{}

// cssColor passes a screen model color through unescaped. Colors come from
// the host and may use any CSS color syntax, such as rgb() or hsl().
func cssColor(c string) template.CSS {
	return template.CSS(c)
}

var htmlTemplates = template.Must(template.New("tooltip").Funcs(template.FuncMap{
	"cssColor": cssColor,
}).Parse(strings.Join([]string{
	`{{define "shell"}}`,
	`<div class="i-role-content graphical-report__tooltip__content">{{.Content}}</div>`,
	`{{if .Reveal}}`,
	`<div class="i-role-reveal graphical-report__tooltip__vertical">`,
	`<div class="graphical-report__tooltip__vertical__wrap">Reveal</div>`,
	`</div>`,
	`{{end}}`,
	`{{end}}`,

	`{{define "content"}}`,
	`{{with .Group}}`,
	`<div class="graphical-report__tooltip__groupby">`,
	`<span class="graphical-report__tooltip__groupby__field">{{.Field}}</span>`,
	`<span class="graphical-report__tooltip__groupby__value">{{.Value}}</span>`,
	`</div>`,
	`{{end}}`,
	`<div class="graphical-report__tooltip__table-wrapper-fixed">`,
	`<div class="graphical-report__tooltip__table-wrapper">`,
	`<div class="graphical-report__tooltip__table">`,
	`<div class="graphical-report__tooltip__table__header">`,
	`<div class="graphical-report__tooltip__table__row">`,
	`<div class="graphical-report__tooltip__table__header__placeholder`,
	` graphical-report__tooltip__table__cell graphical-report__tooltip__table__col-small">&nbsp;`,
	`<div class="graphical-report__tooltip__table__header__placeholder-fixed`,
	` graphical-report__tooltip__table__header__cell__value-fixed">&nbsp;</div>`,
	`</div>`,
	`{{range .Headers}}`,
	`<div class="graphical-report__tooltip__table__cell graphical-report__tooltip__table__header__cell">`,
	`<div class="graphical-report__tooltip__table__cell__value graphical-report__tooltip__table__header__cell__value">`,
	`{{.}}`,
	`<div class="graphical-report__tooltip__table__cell__value graphical-report__tooltip__table__header__cell__value`,
	` graphical-report__tooltip__table__header__cell__value-fixed">{{.}}</div>`,
	`</div>`,
	`</div>`,
	`{{end}}`,
	`</div>`,
	`</div>`,
	`<div class="graphical-report__tooltip__table__rows-group">`,
	`{{$exclude := .ShowExclude}}`,
	`{{range .Rows}}`,
	`<div class="graphical-report__tooltip__table__row {{if .Limited}}` + ClassRowLimited + `{{end}}">`,
	`<div class="graphical-report__tooltip__table__cell graphical-report__tooltip__table__col-small">`,
	`<span class="graphical-report__tooltip__table__row__color {{.Class}}" style="background-color: {{cssColor .Color}};"></span>`,
	`</div>`,
	`{{range .Cells}}`,
	`<div class="graphical-report__tooltip__table__cell {{if .Numeric}}` + ClassCellNumeric + `{{end}}">`,
	`<span class="graphical-report__tooltip__table__cell__value">{{.Value}}</span>`,
	`</div>`,
	`{{end}}`,
	`{{if $exclude}}`,
	`<div class="graphical-report__tooltip__table__cell graphical-report__tooltip__table__row__actions">`,
	`<span class="graphical-report__tooltip__exclude i-role-exclude" data-id="{{.ID}}">`,
	`<span class="tau-icon-close-gray"></span> Exclude</span>`,
	`</div>`,
	`{{end}}`,
	`</div>`,
	`{{end}}`,
	`</div>`,
	`</div>`,
	`</div>`,
	`</div>`,
	`{{if .IsLimited}}<div class="graphical-report__tooltip__limit">...</div>{{end}}`,
	`{{end}}`,
}, "")))

// Render implements Renderer.
func (HTMLRenderer) Render(in RenderInput) string {
	var sb strings.Builder
	if err := htmlTemplates.ExecuteTemplate(&sb, "content", buildTable(in)); err != nil {
		return ""
	}
	return sb.String()
}

// Wrap implements Renderer.
func (HTMLRenderer) Wrap(content string, showReveal bool) string {
	var sb strings.Builder
	data := struct {
		Content template.HTML
		Reveal  bool
	}{Content: template.HTML(content), Reveal: showReveal}
	if err := htmlTemplates.ExecuteTemplate(&sb, "shell", data); err != nil {
		return ""
	}
	return sb.String()
}
