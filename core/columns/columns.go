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

package columns

import (
	"fmt"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/sortabletable/core/records"
)

// SortType selects the comparison strategy of a column.
type SortType int

const (
	SortNumeric SortType = iota
	SortString
	SortCustom
)

// String returns the configuration name of the sort type.
func (t SortType) String() string {
	switch t {
	case SortString:
		return "string"
	case SortCustom:
		return "custom"
	default:
		return "number"
	}
}

// ParseSortType maps a configuration value to a SortType.
// Unrecognized or empty values fall back to SortNumeric.
func ParseSortType(s string) SortType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string":
		return SortString
	case "custom":
		return SortCustom
	default:
		return SortNumeric
	}
}

// Comparator compares two whole records. It returns a negative number when a
// sorts before b, zero when they are equal and a positive number otherwise.
type Comparator func(a, b records.Record) int

// CellTemplate renders the raw value of a cell as an HTML fragment.
type CellTemplate func(value any) (safehtml.HTML, error)

// ColumnDescriptor describes one displayable column.
type ColumnDescriptor struct {
	ID       string // field read from each record
	Title    string
	Sortable bool
	SortType SortType

	// CustomSorting is required when SortType is SortCustom and ignored otherwise.
	CustomSorting Comparator

	// Template renders body cells; nil means a plain text cell.
	Template CellTemplate
}

// ConfigurationError reports a malformed column descriptor.
type ConfigurationError struct {
	Column string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("invalid column configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid column configuration for %q: %s", e.Column, e.Reason)
}

// Validate checks a column configuration and returns a *ConfigurationError
// for the first problem found.
func Validate(descs []ColumnDescriptor) error {
	seen := make(map[string]bool, len(descs))
	for i, d := range descs {
		if d.ID == "" {
			return &ConfigurationError{Reason: fmt.Sprintf("column %d has an empty id", i)}
		}
		if seen[d.ID] {
			return &ConfigurationError{Column: d.ID, Reason: "duplicate column id"}
		}
		seen[d.ID] = true
		if d.SortType == SortCustom && d.CustomSorting == nil {
			return &ConfigurationError{Column: d.ID, Reason: "custom sort type requires a comparator"}
		}
	}
	return nil
}

// Find returns the descriptor with the given id.
func Find(descs []ColumnDescriptor, id string) (ColumnDescriptor, bool) {
	for _, d := range descs {
		if d.ID == id {
			return d, true
		}
	}
	return ColumnDescriptor{}, false
}

// FirstSortable returns the first sortable column in configuration order.
func FirstSortable(descs []ColumnDescriptor) (ColumnDescriptor, bool) {
	for _, d := range descs {
		if d.Sortable {
			return d, true
		}
	}
	return ColumnDescriptor{}, false
}
