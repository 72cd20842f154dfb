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
	"strconv"

	"go.uber.org/zap"
)

// Role identifies an interactive control inside the overlay.
type Role string

const (
	RoleExclude Role = "exclude"
	RoleReveal  Role = "reveal"
)

// ExcludeFilterTag tags the chart filters installed by Exclude.
const ExcludeFilterTag = "exclude"

// HandleAction runs the action of an overlay control and releases the
// tooltip, pinned or not. rowID is only used by RoleExclude.
func (c *Controller) HandleAction(role Role, rowID string) error {
	var err error
	switch role {
	case RoleExclude:
		err = c.Exclude(rowID)
	case RoleReveal:
		err = c.Reveal()
	default:
		return fmt.Errorf("tooltip: unknown action role %q", role)
	}
	c.Apply(releaseFrom(SourceAction))
	return err
}

func (c *Controller) snapshot() (State, Settings, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.settings, c.destroyed
}

// Exclude hides from the chart the highlighted record whose screen id is
// rowID, then refreshes the chart. The filter compares records by
// identity, so a record with the same values is kept. When no record
// matches, the installed filter accepts everything.
func (c *Controller) Exclude(rowID string) error {
	state, settings, destroyed := c.snapshot()
	if destroyed {
		return ErrDestroyed
	}
	h := state.Highlight
	if !h.hasData() {
		settings.Logger.Debug("Exclude ignored without highlight", zap.String("row_id", rowID))
		return nil
	}

	var model ScreenModel = nopModel{}
	if h.Unit != nil {
		model = h.Unit.ScreenModel()
	}
	var target *Record
	for _, r := range h.Data {
		if model.ID(r) == rowID {
			target = r
			break
		}
	}

	c.chart.AddFilter(Filter{
		Tag: ExcludeFilterTag,
		Predicate: func(r *Record) bool {
			return r != target
		},
	})
	settings.Tracer.RecordMetric("tooltip.action", 1, map[string]string{
		"action":  string(RoleExclude),
		"matched": strconv.FormatBool(target != nil),
	})
	settings.Logger.Debug("Excluding record",
		zap.String("row_id", rowID),
		zap.Bool("matched", target != nil))

	c.chart.Refresh()
	return nil
}

// Reveal builds a filter descriptor from the aggregation group fields found
// on the first highlighted record and hands it to OnRevealAggregation.
func (c *Controller) Reveal() error {
	state, settings, destroyed := c.snapshot()
	if destroyed {
		return ErrDestroyed
	}
	if !state.HasData() {
		settings.Logger.Debug("Reveal ignored without highlight")
		return nil
	}

	row := state.Highlight.Data[0]
	filters := make(map[string]any, len(settings.AggregationGroupFields))
	for _, k := range settings.AggregationGroupFields {
		if v, ok := row.Get(k); ok {
			filters[k] = v
		}
	}

	settings.Tracer.RecordMetric("tooltip.action", 1, map[string]string{
		"action": string(RoleReveal),
	})
	settings.OnRevealAggregation(filters, row)
	return nil
}
