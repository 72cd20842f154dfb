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
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/teradata-labs/grouptip/pkg/observability"
)

// DefaultRecordsLimit is the number of emphasized rows when none is set.
const DefaultRecordsLimit = 8

// RevealFunc receives the filter descriptor built from the aggregation group
// fields and the aggregated record it was built from.
type RevealFunc func(filters map[string]any, record *Record)

// Settings configures a Controller. The zero value is usable.
type Settings struct {
	// Fields lists the fields to render, in order. Overrides GetFields and
	// auto-detection from the first record.
	Fields []string `yaml:"fields"`

	// GetFields computes the fields to render from the chart when Fields is
	// empty.
	GetFields func(Chart) []string `yaml:"-"`

	// Formatters overrides labels, null aliases and formats per field.
	Formatters map[string]FormatterSpec `yaml:"formatters"`

	// RecordsLimit caps the emphasized rows (default: 8).
	RecordsLimit int `yaml:"records_limit"`

	// AggregationGroupFields builds the descriptor passed to
	// OnRevealAggregation.
	AggregationGroupFields []string `yaml:"aggregation_group_fields"`

	// OnRevealAggregation is called by Reveal (default: log the descriptor).
	OnRevealAggregation RevealFunc `yaml:"-"`

	// DockToData is accepted for compatibility and not interpreted.
	DockToData bool `yaml:"dock_to_data"`

	// ShowExclude adds a per-row exclude control to the table.
	ShowExclude bool `yaml:"show_exclude"`

	// ShowReveal adds a reveal control when AggregationGroupFields is set.
	ShowReveal bool `yaml:"show_reveal"`

	// TickFormat resolves format spec strings (default: DefaultTickFormat).
	TickFormat TickFormatFunc `yaml:"-"`

	// Renderer builds the overlay content (default: HTMLRenderer).
	Renderer Renderer `yaml:"-"`

	// AfterInit is called once the overlay exists.
	AfterInit func(Overlay) `yaml:"-"`

	Logger *zap.Logger          `yaml:"-"`
	Tracer observability.Tracer `yaml:"-"`
}

// ErrInvalidSettings is returned for settings that cannot be used.
var ErrInvalidSettings = errors.New("invalid tooltip settings")

// LoadSettings decodes YAML settings. An empty document yields zero settings.
func LoadSettings(r io.Reader) (Settings, error) {
	var s Settings
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("failed to decode tooltip settings: %w", err)
	}
	return s, nil
}

// Validate reports settings that cannot be used.
func (s Settings) Validate() error {
	if s.RecordsLimit < 0 {
		return fmt.Errorf("%w: records_limit must not be negative, got %d", ErrInvalidSettings, s.RecordsLimit)
	}
	for i, f := range s.AggregationGroupFields {
		if f == "" {
			return fmt.Errorf("%w: aggregation_group_fields[%d] is empty", ErrInvalidSettings, i)
		}
	}
	return nil
}

func (s Settings) withDefaults() Settings {
	if s.RecordsLimit == 0 {
		s.RecordsLimit = DefaultRecordsLimit
	}
	if s.Formatters == nil {
		s.Formatters = map[string]FormatterSpec{}
	}
	if s.TickFormat == nil {
		s.TickFormat = DefaultTickFormat
	}
	if s.Renderer == nil {
		s.Renderer = HTMLRenderer{}
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.Tracer == nil {
		s.Tracer = observability.NewNoOpTracer()
	}
	if s.OnRevealAggregation == nil {
		logger := s.Logger
		s.OnRevealAggregation = func(filters map[string]any, _ *Record) {
			logger.Info("Setup OnRevealAggregation and filter original data by the following criteria",
				zap.Any("filters", filters))
		}
	}
	return s
}

// warnIgnoredFormatters reports formatter entries that override nothing,
// such as a YAML sequence or a mapping without known keys.
func (s Settings) warnIgnoredFormatters() {
	for field, fs := range s.Formatters {
		if fs.Label == "" && fs.NullAlias == "" && !fs.hasFormat() {
			s.Logger.Warn("Ignoring formatter without label, null alias or format", zap.String("field", field))
		}
	}
}

// UnmarshalYAML accepts a format spec scalar or a mapping with label,
// format and null_alias keys. Other node kinds override nothing.
func (fs *FormatterSpec) UnmarshalYAML(value *yaml.Node) error {
	*fs = FormatterSpec{}
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return nil
		}
		*fs = FormatString(value.Value)
	case yaml.MappingNode:
		var raw struct {
			Label      string    `yaml:"label"`
			Format     yaml.Node `yaml:"format"`
			NullAlias  string    `yaml:"null_alias"`
			NullAlias2 string    `yaml:"nullAlias"`
		}
		if err := value.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode formatter at line %d: %w", value.Line, err)
		}
		fs.Label = raw.Label
		fs.NullAlias = raw.NullAlias
		if fs.NullAlias == "" {
			fs.NullAlias = raw.NullAlias2
		}
		if raw.Format.Kind == yaml.ScalarNode && raw.Format.Tag != "!!null" {
			fs.Spec = raw.Format.Value
			fs.HasSpec = true
		}
	}
	return nil
}
