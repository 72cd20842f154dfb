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
package termhost

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/teradata-labs/grouptip/pkg/tooltip"
)

// SettingsMsg replaces the tooltip settings of a running Model.
type SettingsMsg struct {
	Settings tooltip.Settings
}

// paintedMsg is delivered one frame after the update that scheduled it, by
// which time the renderer has drawn that update's view.
type paintedMsg struct{}

// frameInterval matches the default bubbletea frame rate of 60 fps.
const frameInterval = time.Second / 60

const helpText = "click pin • esc release • tab row • e exclude • r reveal • u undo • q quit"

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	pinnedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d7875f"))
)

// Model is a bubbletea model showing a chart with a tooltip attached.
type Model struct {
	chart  *Chart
	window *Window
	ctrl   *tooltip.Controller
	logger *zap.Logger

	selected int
	status   string
}

// Attach draws records as a chart and attaches a tooltip controller to it.
// Settings without a renderer get a TextRenderer.
func Attach(records []*tooltip.Record, opts Options, settings tooltip.Settings) (*Model, error) {
	chart := NewChart(records, opts)
	window := NewWindow(tooltip.Point{})

	if settings.Renderer == nil {
		settings.Renderer = tooltip.TextRenderer{}
	}
	if settings.Logger == nil {
		settings.Logger = chart.logger
	}
	ctrl, err := tooltip.New(chart, window, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to attach tooltip: %w", err)
	}
	chart.SetAfterRender(ctrl.OnRender)
	chart.Refresh()

	return &Model{
		chart:  chart,
		window: window,
		ctrl:   ctrl,
		logger: chart.logger,
	}, nil
}

// Chart returns the chart drawn by the model.
func (m *Model) Chart() *Chart { return m.chart }

// Window returns the window dispatching terminal events.
func (m *Model) Window() *Window { return m.window }

// Controller returns the attached tooltip controller.
func (m *Model) Controller() *tooltip.Controller { return m.ctrl }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// The last line is the status bar.
		m.chart.Resize(msg.Width, msg.Height-1)
		m.chart.Refresh()

	case tea.MouseMotionMsg:
		m.chart.Hover(tooltip.Point{X: float64(msg.X), Y: float64(msg.Y)})

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			p := tooltip.Point{X: float64(msg.X), Y: float64(msg.Y)}
			m.window.Click(p)
			m.chart.Click(p)
		}

	case tea.MouseWheelMsg:
		p := tooltip.Point{X: float64(msg.X), Y: float64(msg.Y)}
		within := false
		if o := m.chart.Overlay(); o != nil {
			within = o.Bounds().Contains(p)
		}
		m.window.Scroll(tooltip.ScrollEvent{WithinTable: within})

	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg.String()); cmd != nil {
			return m, cmd
		}

	case SettingsMsg:
		settings := msg.Settings
		if settings.Renderer == nil {
			settings.Renderer = tooltip.TextRenderer{}
		}
		if err := m.ctrl.Reconfigure(settings); err != nil {
			m.logger.Warn("Tooltip settings rejected", zap.Error(err))
			m.status = "settings rejected: " + err.Error()
		} else {
			m.status = "settings reloaded"
		}

	case paintedMsg:
		m.window.Painted()
	}

	return m, m.afterPaint()
}

func (m *Model) afterPaint() tea.Cmd {
	if !m.window.Pending() {
		return nil
	}
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return paintedMsg{} })
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		m.ctrl.Destroy()
		return tea.Quit
	case "esc":
		m.ctrl.Apply(tooltip.Release())
	case "tab":
		m.selected++
	case "e":
		rows := m.rows()
		if len(rows) == 0 {
			return nil
		}
		row := rows[m.selected%len(rows)]
		m.report(m.ctrl.HandleAction(tooltip.RoleExclude, m.chart.RecordID(row)))
		m.selected = 0
	case "r":
		m.report(m.ctrl.HandleAction(tooltip.RoleReveal, ""))
	case "u":
		if m.chart.ClearFilters(tooltip.ExcludeFilterTag) > 0 {
			m.chart.Refresh()
			m.status = "exclusions cleared"
		}
	}
	return nil
}

func (m *Model) report(err error) {
	if err != nil {
		m.logger.Warn("Tooltip action failed", zap.Error(err))
		m.status = err.Error()
	}
}

// rows returns the highlighted records in tooltip row order.
func (m *Model) rows() []*tooltip.Record {
	h := m.ctrl.State().Highlight
	if h == nil {
		return nil
	}
	return tooltip.SortRecords(h.Data, screenModel{chart: m.chart})
}

func (m *Model) statusLine() string {
	var parts []string
	state := m.ctrl.State()
	if state.IsStuck {
		parts = append(parts, pinnedStyle.Render("pinned"))
	}
	if rows := m.rows(); len(rows) > 0 {
		parts = append(parts, fmt.Sprintf("row %d/%d", m.selected%len(rows)+1, len(rows)))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, statusStyle.Render(helpText))
	return strings.Join(parts, " │ ")
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// render composes the chart, the status line and the overlay layer.
func (m *Model) render() string {
	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(m.chart.Render() + "\n" + m.statusLine()),
	}
	if o := m.chart.Overlay(); o != nil {
		if box, x, y, ok := o.View(); ok {
			layers = append(layers, lipgloss.NewLayer(box).X(x).Y(y))
		}
	}
	return lipgloss.NewCompositor(layers...).Render()
}
