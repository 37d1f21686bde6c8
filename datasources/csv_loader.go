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
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/sortabletable/core/records"
)

// CsvLoader implements Loader for CSV files.
// The first row names the fields and all values are loaded as strings;
// numeric columns coerce them when sorting.
type CsvLoader struct {
	// Delimiter separates fields (default: ',')
	Delimiter rune
}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{Delimiter: ','}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Extensions returns the CSV file extensions.
func (l *CsvLoader) Extensions() []string {
	return []string{".csv"}
}

// Load reads the header row and one record per following row.
func (l *CsvLoader) Load(r io.Reader) ([]records.Record, error) {
	reader := csv.NewReader(r)
	if l.Delimiter != 0 {
		reader.Comma = l.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []records.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var out []records.Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}
		rec := make(records.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		out = append(out, rec)
	}
	if out == nil {
		out = []records.Record{}
	}
	return out, nil
}
