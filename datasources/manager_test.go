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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/safehtml"
	"github.com/google/sortabletable/core/columns"
	"github.com/google/sortabletable/core/records"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadRecordsByExtension(t *testing.T) {
	dir := t.TempDir()
	manager := NewDefaultManager()

	tests := []struct {
		name    string
		content string
	}{
		{"fruits.json", `[{"title": "Яблоко", "quantity": 3}, {"title": "Апельсин", "quantity": 10}]`},
		{"fruits.yaml", "- title: Яблоко\n  quantity: 3\n- title: Апельсин\n  quantity: 10\n"},
		{"fruits.csv", "title,quantity\nЯблоко,3\nАпельсин,10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, tt.content)
			rs, err := manager.LoadRecords(path)
			if err != nil {
				t.Fatalf("LoadRecords: %v", err)
			}
			if len(rs) != 2 {
				t.Fatalf("expected 2 records, got %d", len(rs))
			}
			if rs[0].Text("title") != "Яблоко" {
				t.Errorf("expected Яблоко, got %q", rs[0].Text("title"))
			}
			if rs[1].Number("quantity") != 10 {
				t.Errorf("expected quantity 10, got %v", rs[1].Number("quantity"))
			}
		})
	}
}

func TestLoadRecordsErrors(t *testing.T) {
	dir := t.TempDir()
	manager := NewDefaultManager()

	if _, err := manager.LoadRecords(filepath.Join(dir, "data.xml")); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
	if _, err := manager.LoadRecords(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
	bad := writeFile(t, dir, "bad.json", `{"not": "an array"}`)
	if _, err := manager.LoadRecords(bad); err == nil {
		t.Error("expected an error for a JSON object")
	}
}

func TestCsvLoaderDelimiterAndEmpty(t *testing.T) {
	l := &CsvLoader{Delimiter: ';'}
	rs, err := l.Load(strings.NewReader("id; name\n1; a\n2; b\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rs) != 2 || rs[1]["name"] != "b" {
		t.Errorf("unexpected records: %v", rs)
	}

	rs, err = NewCsvLoader().Load(strings.NewReader(""))
	if err != nil || len(rs) != 0 {
		t.Errorf("expected no records, got %v (%v)", rs, err)
	}
}

func TestRegisterLoaderReplaces(t *testing.T) {
	m := NewManager()
	m.RegisterLoader(NewCsvLoader())
	m.RegisterLoader(&CsvLoader{Delimiter: '\t'})

	l, ok := m.GetLoader("csv")
	if !ok {
		t.Fatal("expected csv loader")
	}
	if l.(*CsvLoader).Delimiter != '\t' {
		t.Error("expected the second registration to replace the first")
	}
	l, err := m.LoaderFor("DATA.CSV")
	if err != nil || l.(*CsvLoader).Delimiter != '\t' {
		t.Errorf("expected the tab loader for upper-case extensions, got %v (%v)", l, err)
	}
	if _, err := m.LoaderFor("x.json"); err == nil {
		t.Error("json should not be registered")
	}
}

func TestParseColumns(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterTemplate("bold", func(v any) (safehtml.HTML, error) {
		return safehtml.HTMLEscaped(records.Record{"v": v}.Text("v")), nil
	})
	reg.RegisterComparator("length", func(a, b records.Record) int {
		return len(a.Text("title")) - len(b.Text("title"))
	})

	doc := `
columns:
  - id: images
    title: Фото
    template: bold
  - id: title
    title: Название
    sortable: true
    sort_type: string
  - id: quantity
    sortable: true
    sort_type: number
  - id: code
    sortable: true
    sort_type: custom
    custom_sorting: length
  - id: price
    sortable: true
    sort_type: currency
`
	descs, err := ParseColumns([]byte(doc), reg)
	if err != nil {
		t.Fatalf("ParseColumns: %v", err)
	}
	if len(descs) != 5 {
		t.Fatalf("expected 5 columns, got %d", len(descs))
	}
	if descs[0].Template == nil || descs[0].Sortable {
		t.Error("images should have a template and not be sortable")
	}
	if descs[1].SortType != columns.SortString || descs[1].Title != "Название" {
		t.Errorf("unexpected title column: %+v", descs[1])
	}
	if descs[2].Title != "quantity" {
		t.Errorf("title should default to the id, got %q", descs[2].Title)
	}
	if descs[3].SortType != columns.SortCustom || descs[3].CustomSorting == nil {
		t.Error("code should use the custom comparator")
	}
	if descs[4].SortType != columns.SortNumeric {
		t.Error("unknown sort types should fall back to numeric")
	}
}

func TestParseColumnsErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown template", "columns:\n  - id: a\n    template: missing\n"},
		{"unknown comparator", "columns:\n  - id: a\n    custom_sorting: missing\n"},
		{"custom without comparator", "columns:\n  - id: a\n    sort_type: custom\n"},
		{"duplicate id", "columns:\n  - id: a\n  - id: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseColumns([]byte(tt.doc), nil)
			var cfgErr *columns.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigurationError, got %v", err)
			}
		})
	}

	if _, err := ParseColumns([]byte("columns:\n  - id: a\n    colour: red\n"), nil); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestLoadColumnsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "columns.yaml", "columns:\n  - id: title\n    sortable: true\n    sort_type: string\n")
	descs, err := LoadColumns(path, nil)
	if err != nil {
		t.Fatalf("LoadColumns: %v", err)
	}
	if len(descs) != 1 || descs[0].ID != "title" {
		t.Errorf("unexpected columns %+v", descs)
	}
	if _, err := LoadColumns(filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}
