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

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// DefaultMaxCellWidth bounds terminal cell text when TextRenderer has none.
const DefaultMaxCellWidth = 24

// TextRenderer renders the tooltip for terminal overlays. Numeric cells are
// right-aligned, limited rows are faint and long values are truncated.
type TextRenderer struct {
	MaxCellWidth int
}

var (
	textHeaderStyle = lipgloss.NewStyle().Bold(true)
	textGroupStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	textLimitStyle  = lipgloss.NewStyle().Faint(true)
)

// Render implements Renderer.
func (r TextRenderer) Render(in RenderInput) string {
	maxWidth := r.MaxCellWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxCellWidth
	}
	t := buildTable(in)

	widths := make([]int, len(t.Headers))
	for j, h := range t.Headers {
		widths[j] = min(ansi.StringWidth(h), maxWidth)
	}
	for _, row := range t.Rows {
		for j, c := range row.Cells {
			widths[j] = max(widths[j], min(ansi.StringWidth(c.Value), maxWidth))
		}
	}

	var lines []string
	if t.Group != nil {
		lines = append(lines, textGroupStyle.Render(t.Group.Field)+" "+t.Group.Value)
	}

	header := []string{" "}
	for j, h := range t.Headers {
		header = append(header, textHeaderStyle.Width(widths[j]).Render(ansi.Truncate(h, widths[j], "…")))
	}
	lines = append(lines, strings.Join(header, " "))

	for _, row := range t.Rows {
		swatch := "●"
		if row.Color != "" {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render(swatch)
		}
		parts := []string{swatch}
		for j, c := range row.Cells {
			style := lipgloss.NewStyle().Width(widths[j])
			if c.Numeric {
				style = style.Align(lipgloss.Right)
			}
			if row.Limited {
				style = style.Faint(true)
			}
			parts = append(parts, style.Render(ansi.Truncate(c.Value, widths[j], "…")))
		}
		lines = append(lines, strings.Join(parts, " "))
	}

	if t.IsLimited {
		lines = append(lines, textLimitStyle.Render("..."))
	}
	return strings.Join(lines, "\n")
}

// Wrap implements Renderer.
func (r TextRenderer) Wrap(content string, showReveal bool) string {
	if !showReveal {
		return content
	}
	return content + "\n" + textLimitStyle.Render("[r] Reveal")
}
