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

package rendering

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/sortabletable/core/views"
)

func TestRenderTable(t *testing.T) {
	r, err := NewTableRenderer()
	if err != nil {
		t.Fatalf("NewTableRenderer: %v", err)
	}

	img := template.Must(template.New("img").Parse(`<div class="sortable-table__cell"><img class="sortable-table-image" src="{{.}}"></div>`))
	imgHTML, err := img.ExecuteToHTML("https://example.com/apple.png")
	if err != nil {
		t.Fatalf("ExecuteToHTML: %v", err)
	}

	vm := views.TableViewModel{
		Headers: []views.HeaderCell{
			{ID: "images", Title: "Фото", Sortable: false},
			{ID: "title", Title: "<b>Название</b>", Sortable: true, Order: "asc"},
		},
		Rows: []views.DataRow{
			{Cells: []views.DataCell{
				{Custom: true, HTML: imgHTML},
				{Text: "Яблоко & груша"},
			}},
		},
	}

	var sb strings.Builder
	if err := r.RenderTable(&sb, vm); err != nil {
		t.Fatalf("RenderTable: %v", err)
	}
	html := sb.String()

	checks := []string{
		`data-element="header"`,
		`data-element="body"`,
		`data-id="title" data-sortable="true" data-order="asc"`,
		`data-id="images" data-sortable="false" data-order=""`,
		`class="sortable-table__sort-arrow"`,
		`&lt;b&gt;Название&lt;/b&gt;`,
		`Яблоко &amp; груша`,
		`src="https://example.com/apple.png"`,
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderRowsEmpty(t *testing.T) {
	r, err := NewTableRenderer()
	if err != nil {
		t.Fatalf("NewTableRenderer: %v", err)
	}
	var sb strings.Builder
	if err := r.RenderRows(&sb, nil); err != nil {
		t.Fatalf("RenderRows: %v", err)
	}
	if strings.Contains(sb.String(), "sortable-table__row") {
		t.Errorf("expected no rows, got %q", sb.String())
	}
}

func TestRenderRowsEscapesText(t *testing.T) {
	r, err := NewTableRenderer()
	if err != nil {
		t.Fatalf("NewTableRenderer: %v", err)
	}
	rows := []views.DataRow{
		{Cells: []views.DataCell{{Text: "<script>alert(1)</script>"}}},
		{Cells: []views.DataCell{{Custom: true, HTML: safehtml.HTMLEscaped("<i>")}}},
	}
	var sb strings.Builder
	if err := r.RenderRows(&sb, rows); err != nil {
		t.Fatalf("RenderRows: %v", err)
	}
	out := sb.String()
	if strings.Contains(out, "<script>") || strings.Contains(out, "<i>") {
		t.Errorf("expected escaped output, got %q", out)
	}
	if strings.Count(out, `class="sortable-table__row"`) != 2 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

func TestRenderPageAndLanding(t *testing.T) {
	r, err := NewTableRenderer()
	if err != nil {
		t.Fatalf("NewTableRenderer: %v", err)
	}

	var page strings.Builder
	if err := r.RenderPage(&page, views.PageViewModel{Title: "Products", TableName: "products"}); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if !strings.Contains(page.String(), `data-table="products"`) {
		t.Errorf("expected mount point in page:\n%s", page.String())
	}

	var landing strings.Builder
	vm := views.LandingViewModel{
		Title: "Tables",
		Tables: []views.TableInfo{
			{Name: "products", Title: "Products", URL: safehtml.URLSanitized("/tables/products"), RecordCount: 3, ColumnCount: 4},
		},
	}
	if err := r.RenderLanding(&landing, vm); err != nil {
		t.Fatalf("RenderLanding: %v", err)
	}
	if !strings.Contains(landing.String(), `href="/tables/products"`) {
		t.Errorf("expected table link in landing page:\n%s", landing.String())
	}
}

func TestStaticFS(t *testing.T) {
	for _, name := range []string{"sortable-table.css", "sortable-table.js"} {
		if _, err := fs.Stat(StaticFS(), name); err != nil {
			t.Errorf("expected static file %s: %v", name, err)
		}
	}
}
