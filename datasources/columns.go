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

package datasources

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/sortabletable/core/columns"
	"gopkg.in/yaml.v3"
)

// ColumnSpec is one column entry of a columns file.
//
//	columns:
//	  - id: title
//	    title: Название
//	    sortable: true
//	    sort_type: string
//	  - id: images
//	    template: image
type ColumnSpec struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Sortable      bool   `yaml:"sortable"`
	SortType      string `yaml:"sort_type"`
	Template      string `yaml:"template"`
	CustomSorting string `yaml:"custom_sorting"`
}

// ColumnsFile is the top-level document of a columns file.
type ColumnsFile struct {
	Columns []ColumnSpec `yaml:"columns"`
}

// Registry resolves the template and comparator names used in columns files.
type Registry struct {
	mu          sync.RWMutex
	templates   map[string]columns.CellTemplate
	comparators map[string]columns.Comparator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		templates:   make(map[string]columns.CellTemplate),
		comparators: make(map[string]columns.Comparator),
	}
}

// RegisterTemplate registers a cell template under name.
func (r *Registry) RegisterTemplate(name string, tmpl columns.CellTemplate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[name] = tmpl
}

// RegisterComparator registers a custom comparator under name.
func (r *Registry) RegisterComparator(name string, cmp columns.Comparator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comparators[name] = cmp
}

// LoadColumns reads a columns file.
func LoadColumns(path string, reg *Registry) ([]columns.ColumnDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns file: %w", err)
	}
	descs, err := ParseColumns(data, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return descs, nil
}

// ParseColumns decodes a columns document and resolves named templates and
// comparators. Unknown names and invalid descriptors are reported as
// *columns.ConfigurationError.
func ParseColumns(data []byte, reg *Registry) ([]columns.ColumnDescriptor, error) {
	var file ColumnsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse columns file: %w", err)
	}
	if reg == nil {
		reg = NewRegistry()
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	descs := make([]columns.ColumnDescriptor, 0, len(file.Columns))
	for _, spec := range file.Columns {
		d := columns.ColumnDescriptor{
			ID:       spec.ID,
			Title:    spec.Title,
			Sortable: spec.Sortable,
			SortType: columns.ParseSortType(spec.SortType),
		}
		if d.Title == "" {
			d.Title = spec.ID
		}
		if spec.Template != "" {
			tmpl, ok := reg.templates[spec.Template]
			if !ok {
				return nil, &columns.ConfigurationError{Column: spec.ID, Reason: fmt.Sprintf("unknown template %q", spec.Template)}
			}
			d.Template = tmpl
		}
		if spec.CustomSorting != "" {
			cmp, ok := reg.comparators[spec.CustomSorting]
			if !ok {
				return nil, &columns.ConfigurationError{Column: spec.ID, Reason: fmt.Sprintf("unknown comparator %q", spec.CustomSorting)}
			}
			d.CustomSorting = cmp
		}
		descs = append(descs, d)
	}

	if err := columns.Validate(descs); err != nil {
		return nil, err
	}
	return descs, nil
}
