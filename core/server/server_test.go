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

package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/sortabletable/core/columns"
	"github.com/google/sortabletable/core/records"
	"github.com/google/sortabletable/core/tables"
)

func newTestServer(t *testing.T) (*Server, *tables.SortableTable) {
	t.Helper()
	srv, err := NewServer(nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	tbl, err := tables.New(
		[]columns.ColumnDescriptor{
			{ID: "title", Title: "Название", Sortable: true, SortType: columns.SortString},
			{ID: "quantity", Title: "Количество", Sortable: true},
			{ID: "note", Title: "Заметка"},
		},
		tables.Options{
			Data: []records.Record{
				{"title": "Яблоко", "quantity": 3},
				{"title": "Апельсин", "quantity": 10},
				{"title": "Банан", "quantity": 1},
			},
			Renderer: srv.Renderer(),
		},
	)
	if err != nil {
		t.Fatalf("tables.New: %v", err)
	}
	srv.AddTable("fruits", "Фрукты", tbl)
	return srv, tbl
}

func do(t *testing.T, h http.Handler, method, target string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	res := rec.Result()
	body, _ := io.ReadAll(res.Body)
	return res, string(body)
}

func TestLanding(t *testing.T) {
	srv, _ := newTestServer(t)
	res, body := do(t, srv.Handler(), http.MethodGet, "/")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(body, `href="/tables/fruits"`) || !strings.Contains(body, "3 rows, 3 columns") {
		t.Errorf("unexpected landing page:\n%s", body)
	}
	if !strings.Contains(body, "sort=title") || !strings.Contains(body, "by Название") {
		t.Errorf("expected a link sorted by the first sortable column:\n%s", body)
	}
}

func TestAddTableReplaces(t *testing.T) {
	srv, tbl := newTestServer(t)

	// Registering the same table again keeps it alive
	srv.AddTable("fruits", "Фрукты", tbl)
	if tbl.Destroyed() {
		t.Fatal("re-registering a table should not destroy it")
	}
	res, _ := do(t, srv.Handler(), http.MethodGet, "/tables/fruits")
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", res.StatusCode)
	}

	other, err := tables.New([]columns.ColumnDescriptor{{ID: "title", Sortable: true, SortType: columns.SortString}}, tables.Options{Renderer: srv.Renderer()})
	if err != nil {
		t.Fatalf("tables.New: %v", err)
	}
	srv.AddTable("fruits", "Фрукты", other)
	if !tbl.Destroyed() {
		t.Error("replaced table should be destroyed")
	}
	if other.Destroyed() {
		t.Error("new table should stay alive")
	}
}

func TestPageMountsTable(t *testing.T) {
	srv, tbl := newTestServer(t)
	res, body := do(t, srv.Handler(), http.MethodGet, "/tables/fruits")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.StatusCode, body)
	}
	for _, want := range []string{`data-table="fruits"`, `class="sortable-table"`, `data-id="title"`, `data-order="asc"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in page", want)
		}
	}
	// Default sort: title ascending
	if strings.Index(body, "Апельсин") > strings.Index(body, "Яблоко") {
		t.Error("expected Апельсин before Яблоко")
	}
	if tbl.Element().Parent != nil {
		t.Error("table should be detached after the page is written")
	}
}

func TestPageWithSort(t *testing.T) {
	srv, tbl := newTestServer(t)
	res, body := do(t, srv.Handler(), http.MethodGet, "/tables/fruits?sort=quantity&order=desc")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.StatusCode, body)
	}
	if st := tbl.State(); st.Field != "quantity" || st.Order != tables.OrderDesc {
		t.Errorf("expected quantity desc, got %+v", st)
	}
}

func TestBodyEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	res, body := do(t, srv.Handler(), http.MethodGet, "/tables/fruits/body?sort=quantity&order=asc")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.StatusCode, body)
	}
	if strings.Contains(body, "data-element=\"header\"") {
		t.Error("body endpoint should not return the header")
	}
	if !(strings.Index(body, "Банан") < strings.Index(body, "Яблоко") && strings.Index(body, "Яблоко") < strings.Index(body, "Апельсин")) {
		t.Errorf("expected quantity order 1,3,10 in body:\n%s", body)
	}
	if res.Header.Get("X-Sort-Field") != "quantity" || res.Header.Get("X-Sort-Order") != "asc" {
		t.Errorf("unexpected sort headers: %v", res.Header)
	}
}

func TestPressEndpointToggles(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	res, _ := do(t, h, http.MethodPost, "/tables/fruits/press?field=title")
	if res.StatusCode != http.StatusOK || res.Header.Get("X-Sort-Order") != "desc" {
		t.Errorf("first press on the active column should sort desc, got %d %q", res.StatusCode, res.Header.Get("X-Sort-Order"))
	}
	res, _ = do(t, h, http.MethodPost, "/tables/fruits/press?field=title")
	if res.Header.Get("X-Sort-Order") != "asc" {
		t.Errorf("second press should sort asc, got %q", res.Header.Get("X-Sort-Order"))
	}
	res, _ = do(t, h, http.MethodPost, "/tables/fruits/press?field=quantity")
	if res.Header.Get("X-Sort-Field") != "quantity" || res.Header.Get("X-Sort-Order") != "desc" {
		t.Errorf("pressing another column should sort it desc, got %v", res.Header)
	}
}

func TestErrors(t *testing.T) {
	srv, tbl := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"unknown table", http.MethodGet, "/tables/nope", http.StatusNotFound},
		{"unknown field", http.MethodGet, "/tables/fruits/body?sort=weight", http.StatusBadRequest},
		{"not sortable", http.MethodGet, "/tables/fruits/body?sort=note", http.StatusBadRequest},
		{"bad order", http.MethodGet, "/tables/fruits/body?sort=title&order=up", http.StatusBadRequest},
		{"press without field", http.MethodPost, "/tables/fruits/press", http.StatusBadRequest},
		{"press not sortable", http.MethodPost, "/tables/fruits/press?field=note", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := do(t, h, tt.method, tt.target)
			if res.StatusCode != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, res.StatusCode, body)
			}
		})
	}

	tbl.Destroy()
	res, _ := do(t, h, http.MethodGet, "/tables/fruits/body")
	if res.StatusCode != http.StatusGone {
		t.Errorf("destroyed table: expected 410, got %d", res.StatusCode)
	}
}

func TestStaticFiles(t *testing.T) {
	srv, _ := newTestServer(t)
	res, body := do(t, srv.Handler(), http.MethodGet, "/static/sortable-table.js")
	if res.StatusCode != http.StatusOK || !strings.Contains(body, "pointerdown") {
		t.Errorf("expected script, got %d", res.StatusCode)
	}
}
