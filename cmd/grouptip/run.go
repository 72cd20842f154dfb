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
package main

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teradata-labs/grouptip/internal/log"
	"github.com/teradata-labs/grouptip/internal/termhost"
	"github.com/teradata-labs/grouptip/pkg/observability"
	"github.com/teradata-labs/grouptip/pkg/tooltip"
)

func runRoot(cmd *cobra.Command, args []string) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	logger, err := log.Init(log.Options{
		Level:  config.Logging.Level,
		Format: config.Logging.Format,
		File:   config.Logging.File,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	logger.Info("Starting grouptip", zap.String("version", version()))

	records, err := chartRecords(config.Chart)
	if err != nil {
		return err
	}

	settings, err := tooltipSettings(config.Tooltip)
	if err != nil {
		return err
	}
	settings.Logger = logger.Named("tooltip")
	settings.Tracer = observability.NewNoOpTracer()

	model, err := termhost.Attach(records, termhost.Options{
		Title:      config.Chart.Title,
		XField:     config.Chart.XField,
		YField:     config.Chart.YField,
		ColorField: config.Chart.ColorField,
		Logger:     logger.Named("chart"),
	}, settings)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithEnvironment(os.Environ()))

	if config.Tooltip.Watch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		watcher, err := newSettingsWatcher(config.Tooltip.SettingsFile, logger.Named("watch"), func(s tooltip.Settings) {
			p.Send(termhost.SettingsMsg{Settings: withOverrides(s, config.Tooltip)})
		})
		if err != nil {
			return err
		}
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running chart: %w", err)
	}
	logger.Info("grouptip stopped")
	return nil
}

func chartRecords(cfg ChartConfig) ([]*tooltip.Record, error) {
	if cfg.DataFile == "" {
		return sampleRecords(), nil
	}
	records, err := loadRecordsFile(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("data file %s holds no records", cfg.DataFile)
	}
	return records, nil
}

func tooltipSettings(cfg TooltipConfig) (tooltip.Settings, error) {
	var settings tooltip.Settings
	if cfg.SettingsFile != "" {
		var err error
		if settings, err = readSettings(cfg.SettingsFile); err != nil {
			return tooltip.Settings{}, err
		}
	}
	return withOverrides(settings, cfg), nil
}

// withOverrides applies command line settings on top of file settings.
func withOverrides(s tooltip.Settings, cfg TooltipConfig) tooltip.Settings {
	if cfg.RecordsLimit > 0 {
		s.RecordsLimit = cfg.RecordsLimit
	}
	return s
}
