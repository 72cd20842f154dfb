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
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teradata-labs/grouptip/pkg/tooltip"
)

// sampleRecords is the built-in dataset: yearly revenue per region and
// product segment.
func sampleRecords() []*tooltip.Record {
	keys := []string{"region", "segment", "year", "total", "orders"}
	rows := [][]any{
		{"EU", "retail", 2019, 120.5, 1840},
		{"EU", "retail", 2020, 98.25, 1512},
		{"EU", "retail", 2021, 143.0, 2210},
		{"EU", "retail", 2022, 161.75, 2395},
		{"US", "retail", 2019, 210.0, 3105},
		{"US", "retail", 2020, 187.5, 2876},
		{"US", "retail", 2021, 236.25, 3540},
		{"US", "retail", 2022, nil, nil},
		{"APAC", "wholesale", 2019, 75.0, 402},
		{"APAC", "wholesale", 2020, 91.5, 467},
		{"APAC", "wholesale", 2021, 118.0, 590},
		{"APAC", "wholesale", 2022, 132.25, 655},
	}

	records := make([]*tooltip.Record, 0, len(rows))
	for _, row := range rows {
		values := make(map[string]any, len(keys))
		for i, k := range keys {
			values[k] = row[i]
		}
		records = append(records, tooltip.NewRecord(keys, values))
	}
	return records
}

// loadRecordsFile reads records from a YAML file.
func loadRecordsFile(path string) ([]*tooltip.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()
	return loadRecords(f)
}

// loadRecords decodes a YAML sequence of mappings. Field order follows the
// mapping order of each item.
func loadRecords(r io.Reader) ([]*tooltip.Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("records must be a YAML sequence (line %d)", root.Line)
	}

	records := make([]*tooltip.Record, 0, len(root.Content))
	for i, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("record %d must be a mapping (line %d)", i, item.Line)
		}
		keys := make([]string, 0, len(item.Content)/2)
		values := make(map[string]any, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			key := item.Content[j].Value
			var v any
			if err := item.Content[j+1].Decode(&v); err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", i, key, err)
			}
			keys = append(keys, key)
			values[key] = v
		}
		records = append(records, tooltip.NewRecord(keys, values))
	}
	return records, nil
}
