/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package datasources loads table records and column descriptors from
// files (JSON, YAML, CSV) with support for named cell templates and
// comparators.
package datasources

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/sortabletable/core/records"
	"gopkg.in/yaml.v3"
)

// Loader is the interface that all record loaders must implement.
// Built-in loaders exist for "json", "yaml" and "csv".
type Loader interface {
	// SourceType returns the type identifier (e.g., "json", "csv").
	SourceType() string

	// Extensions returns the file extensions handled by the loader, with the leading dot.
	Extensions() []string

	// Load reads all records from r.
	Load(r io.Reader) ([]records.Record, error)
}

// JSONLoader reads a JSON array of objects.
type JSONLoader struct{}

// NewJSONLoader creates a new JSON loader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// SourceType returns "json".
func (l *JSONLoader) SourceType() string {
	return "json"
}

// Extensions returns the JSON file extensions.
func (l *JSONLoader) Extensions() []string {
	return []string{".json"}
}

// Load decodes the records.
func (l *JSONLoader) Load(r io.Reader) ([]records.Record, error) {
	var rows []map[string]any
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode JSON records: %w", err)
	}
	return toRecords(rows), nil
}

// YAMLLoader reads a YAML sequence of mappings.
type YAMLLoader struct{}

// NewYAMLLoader creates a new YAML loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// SourceType returns "yaml".
func (l *YAMLLoader) SourceType() string {
	return "yaml"
}

// Extensions returns the YAML file extensions.
func (l *YAMLLoader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load decodes the records.
func (l *YAMLLoader) Load(r io.Reader) ([]records.Record, error) {
	var rows []map[string]any
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil {
		if err == io.EOF {
			return []records.Record{}, nil
		}
		return nil, fmt.Errorf("failed to decode YAML records: %w", err)
	}
	return toRecords(rows), nil
}

func toRecords(rows []map[string]any) []records.Record {
	out := make([]records.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, records.Record(row))
	}
	return out
}
