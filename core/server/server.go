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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/sortabletable/core/columns"
	"github.com/google/sortabletable/core/query"
	"github.com/google/sortabletable/core/rendering"
	"github.com/google/sortabletable/core/tables"
	"github.com/google/sortabletable/core/views"
	"golang.org/x/net/html"
)

// Server serves sortable tables over HTTP. Each table is a single-threaded
// component, so every request touching one holds the server lock.
type Server struct {
	mu       sync.Mutex
	renderer *rendering.TableRenderer
	tables   map[string]*servedTable
	names    []string // registration order
	logger   *slog.Logger
}

type servedTable struct {
	title string
	table *tables.SortableTable
}

// NewServer creates a new server with no tables
func NewServer(logger *slog.Logger) (*Server, error) {
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		renderer: renderer,
		tables:   make(map[string]*servedTable),
		logger:   logger,
	}, nil
}

// Renderer returns the renderer shared with the served tables
func (s *Server) Renderer() *rendering.TableRenderer {
	return s.renderer
}

// AddTable registers a table under name. Registering a name twice replaces
// the previous table and destroys it.
func (s *Server) AddTable(name, title string, t *tables.SortableTable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.tables[name]; ok {
		if prev.table != t {
			prev.table.Destroy()
		}
	} else {
		s.names = append(s.names, name)
	}
	s.tables[name] = &servedTable{title: title, table: t}
}

// Close destroys every served table
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.tables {
		st.table.Destroy()
	}
}

// Handler returns the HTTP handler for all routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("GET /tables/{name}", s.handlePage)
	mux.HandleFunc("GET /tables/{name}/body", s.handleBody)
	mux.HandleFunc("POST /tables/{name}/press", s.handlePress)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(rendering.StaticFS())))
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery, "duration", time.Since(start))
	})
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	vm := views.LandingViewModel{Title: "Tables"}
	base := &query.Query{}
	for _, name := range s.names {
		st := s.tables[name]
		path := "/tables/" + url.PathEscape(name)
		cols := st.table.Columns()
		info := views.TableInfo{
			Name:        name,
			Title:       st.title,
			URL:         base.WithPath(path),
			RecordCount: len(st.table.Data()),
			ColumnCount: len(cols),
		}
		if col, ok := columns.FirstSortable(cols); ok {
			info.SortTitle = col.Title
			info.SortURL = (&query.Query{Path: path}).WithSort(col.ID, string(tables.OrderDesc))
		}
		vm.Tables = append(vm.Tables, info)
	}
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := s.renderer.RenderLanding(&buf, vm); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// handlePage renders the host page and mounts the table into it
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	q := query.NewQuery(r.URL)

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.tables[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Table '%s' not found", name), http.StatusNotFound)
		return
	}
	if err := applySort(st.table, q); err != nil {
		s.writeError(w, err)
		return
	}

	var page bytes.Buffer
	if err := s.renderer.RenderPage(&page, views.PageViewModel{Title: st.title, TableName: name}); err != nil {
		s.writeError(w, err)
		return
	}
	doc, err := html.Parse(&page)
	if err != nil {
		s.writeError(w, fmt.Errorf("failed to parse page: %w", err))
		return
	}
	root := findElement(doc, "data-element", "root")
	if root == nil {
		s.writeError(w, errors.New("page has no mount point"))
		return
	}

	if err := st.table.Mount(root); err != nil {
		s.writeError(w, err)
		return
	}
	var out bytes.Buffer
	err = html.Render(&out, doc)
	st.table.Remove()
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	out.WriteTo(w)
}

// handleBody applies the requested sort and returns only the body rows
func (s *Server) handleBody(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	q := query.NewQuery(r.URL)

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.tables[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Table '%s' not found", name), http.StatusNotFound)
		return
	}
	if err := applySort(st.table, q); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeBody(w, st.table)
}

// handlePress toggles the sort of a header cell like a pointer press
func (s *Server) handlePress(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	q := query.NewQuery(r.URL)

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.tables[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Table '%s' not found", name), http.StatusNotFound)
		return
	}
	if q.Field == "" {
		http.Error(w, "field parameter is required", http.StatusBadRequest)
		return
	}
	if err := st.table.Press(q.Field); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeBody(w, st.table)
}

func (s *Server) writeBody(w http.ResponseWriter, t *tables.SortableTable) {
	body, err := t.BodyHTML()
	if err != nil {
		s.writeError(w, err)
		return
	}
	state := t.State()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Sort-Field", state.Field)
	w.Header().Set("X-Sort-Order", string(state.Order))
	fmt.Fprint(w, body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var fieldErr *tables.UnknownFieldError
	switch {
	case errors.As(err, &fieldErr), errors.Is(err, tables.ErrInvalidOrder):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, tables.ErrDestroyed):
		http.Error(w, err.Error(), http.StatusGone)
	default:
		s.logger.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func applySort(t *tables.SortableTable, q *query.Query) error {
	if !q.HasSort() {
		return nil
	}
	order, err := tables.ParseOrder(q.OrderOrDefault())
	if err != nil {
		return err
	}
	return t.Sort(q.Sort, order)
}

// findElement returns the first element whose attribute key equals val
func findElement(n *html.Node, key, val string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == key && a.Val == val {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, key, val); found != nil {
			return found
		}
	}
	return nil
}
