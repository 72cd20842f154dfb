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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	config  *Config
)

var rootCmd = &cobra.Command{
	Use:   "grouptip",
	Short: "Grouped chart tooltip demo",
	Long: `grouptip draws a chart in the terminal with a grouped tooltip attached.

Hover a column to see its records, click to pin the tooltip, click outside
or scroll to release it. Tooltip settings are read from a YAML file and can
be reloaded while running with --watch.`,
	Version: version(),
	RunE:    runRoot,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./grouptip.yaml)")

	// Tooltip flags
	flags.String("settings", "", "tooltip settings YAML file")
	flags.Int("records-limit", 0, "emphasized tooltip rows (0 keeps the settings value)")
	flags.Bool("watch", false, "reload tooltip settings when the file changes")

	// Chart flags
	flags.String("data", "", "YAML file holding a list of records (default: built-in sample)")
	flags.String("title", "Revenue by year", "chart title")
	flags.String("x", "year", "category field")
	flags.String("y", "total", "value field")
	flags.String("color", "region", "series field")

	// Logging flags
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "json", "Log format (text, json)")
	flags.String("log-file", "grouptip.log", "Log file (the terminal is taken by the chart)")

	_ = viper.BindPFlag("tooltip.settings_file", flags.Lookup("settings"))
	_ = viper.BindPFlag("tooltip.records_limit", flags.Lookup("records-limit"))
	_ = viper.BindPFlag("tooltip.watch", flags.Lookup("watch"))

	_ = viper.BindPFlag("chart.data_file", flags.Lookup("data"))
	_ = viper.BindPFlag("chart.title", flags.Lookup("title"))
	_ = viper.BindPFlag("chart.x_field", flags.Lookup("x"))
	_ = viper.BindPFlag("chart.y_field", flags.Lookup("y"))
	_ = viper.BindPFlag("chart.color_field", flags.Lookup("color"))

	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("logging.file", flags.Lookup("log-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	config, err = LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}
