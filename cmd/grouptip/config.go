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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultConfigFileName is searched for in the working directory.
const DefaultConfigFileName = "grouptip"

// Config is the command configuration.
type Config struct {
	Tooltip TooltipConfig `mapstructure:"tooltip"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TooltipConfig locates the tooltip settings.
type TooltipConfig struct {
	SettingsFile string `mapstructure:"settings_file"`
	RecordsLimit int    `mapstructure:"records_limit"`
	Watch        bool   `mapstructure:"watch"`
}

// ChartConfig selects the data and how it is drawn.
type ChartConfig struct {
	DataFile   string `mapstructure:"data_file"`
	Title      string `mapstructure:"title"`
	XField     string `mapstructure:"x_field"`
	YField     string `mapstructure:"y_field"`
	ColorField string `mapstructure:"color_field"`
}

// LoggingConfig configures internal/log.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// LoadConfig loads configuration with the usual priority: flags, then the
// config file, then GROUPTIP_* environment variables, then defaults.
func LoadConfig(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(DefaultConfigFileName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.SetEnvPrefix("GROUPTIP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

// Validate checks values the tooltip and chart cannot work without.
func (c *Config) Validate() error {
	if c.Tooltip.RecordsLimit < 0 {
		return fmt.Errorf("tooltip.records_limit must not be negative, got %d", c.Tooltip.RecordsLimit)
	}
	if c.Tooltip.Watch && c.Tooltip.SettingsFile == "" {
		return errors.New("tooltip.watch requires tooltip.settings_file")
	}
	if c.Chart.XField == "" || c.Chart.YField == "" {
		return errors.New("chart.x_field and chart.y_field are required")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("tooltip.records_limit", 0)
	viper.SetDefault("tooltip.watch", false)

	viper.SetDefault("chart.title", "Revenue by year")
	viper.SetDefault("chart.x_field", "year")
	viper.SetDefault("chart.y_field", "total")
	viper.SetDefault("chart.color_field", "region")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.file", "grouptip.log")
}
