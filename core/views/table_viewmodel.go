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

package views

import (
	"fmt"

	"github.com/google/safehtml"
	"github.com/google/sortabletable/core/columns"
	"github.com/google/sortabletable/core/records"
)

// TableViewModel contains the component state formatted for template consumption
type TableViewModel struct {
	Headers []HeaderCell
	Rows    []DataRow
}

// HeaderCell is one header cell of the table
type HeaderCell struct {
	ID       string // Column id, exposed as data-id
	Title    string // Display label
	Sortable bool   // Exposed as data-sortable
	Order    string // "asc", "desc" or empty when the column is not the active sort column
}

// DataRow is one body row
type DataRow struct {
	Cells []DataCell
}

// DataCell is one body cell. Custom cells carry the column template output,
// the others are rendered as escaped text.
type DataCell struct {
	Custom bool
	HTML   safehtml.HTML
	Text   string
}

// PageViewModel drives the standalone page hosting a table
type PageViewModel struct {
	Title     string
	TableName string
}

// LandingViewModel lists the tables served
type LandingViewModel struct {
	Title  string
	Tables []TableInfo
}

// TableInfo describes one served table on the landing page
type TableInfo struct {
	Name        string
	Title       string
	URL         safehtml.URL
	RecordCount int
	ColumnCount int

	// SortURL opens the table sorted descending by SortTitle's column.
	// Both are empty when the table has no sortable column.
	SortURL   safehtml.URL
	SortTitle string
}

// BuildHeaders builds the header cells. Only the cell whose id equals
// activeField carries the order marker.
func BuildHeaders(descs []columns.ColumnDescriptor, activeField, activeOrder string) []HeaderCell {
	headers := make([]HeaderCell, 0, len(descs))
	for _, d := range descs {
		h := HeaderCell{ID: d.ID, Title: d.Title, Sortable: d.Sortable}
		if activeField != "" && d.ID == activeField {
			h.Order = activeOrder
		}
		headers = append(headers, h)
	}
	return headers
}

// BuildRows builds one row per record, one cell per column.
func BuildRows(descs []columns.ColumnDescriptor, rs []records.Record) ([]DataRow, error) {
	rows := make([]DataRow, 0, len(rs))
	for _, r := range rs {
		cells := make([]DataCell, 0, len(descs))
		for _, d := range descs {
			if d.Template == nil {
				cells = append(cells, DataCell{Text: r.Text(d.ID)})
				continue
			}
			h, err := d.Template(r.Value(d.ID))
			if err != nil {
				return nil, fmt.Errorf("failed to render cell %q: %w", d.ID, err)
			}
			cells = append(cells, DataCell{Custom: true, HTML: h})
		}
		rows = append(rows, DataRow{Cells: cells})
	}
	return rows, nil
}
