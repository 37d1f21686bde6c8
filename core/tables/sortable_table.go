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

package tables

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/google/sortabletable/core/columns"
	"github.com/google/sortabletable/core/events"
	"github.com/google/sortabletable/core/records"
	"github.com/google/sortabletable/core/rendering"
	"github.com/google/sortabletable/core/views"
	"golang.org/x/net/html"
	"golang.org/x/text/collate"
)

// Options configures a SortableTable at construction.
type Options struct {
	// Data is the initial dataset. It is never reordered by the table.
	Data []records.Record

	// Locale selects the collation of string columns (default "ru").
	Locale string

	// Renderer is shared between tables when set; otherwise one is created.
	Renderer *rendering.TableRenderer

	Logger *slog.Logger
}

// SortableTable renders records as a table whose sortable header cells
// reorder the body when pressed.
//
// A SortableTable is not safe for concurrent use; callers serving it from
// several goroutines must serialize access.
type SortableTable struct {
	columns  []columns.ColumnDescriptor
	data     []records.Record // as supplied by the caller
	rows     []records.Record // displayed order
	state    SortState
	collator *collate.Collator
	renderer *rendering.TableRenderer
	logger   *slog.Logger

	element     *html.Node
	subElements map[string]*html.Node
	listeners   *events.Registry
	pressErr    error
	destroyed   bool
}

// New validates the column configuration, renders the table and applies the
// default sort: the first sortable column, ascending.
func New(cols []columns.ColumnDescriptor, opts Options) (*SortableTable, error) {
	if err := columns.Validate(cols); err != nil {
		return nil, err
	}

	collator, err := columns.NewCollator(opts.Locale)
	if err != nil {
		return nil, err
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer, err = rendering.NewTableRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer: %w", err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t := &SortableTable{
		columns:   append([]columns.ColumnDescriptor(nil), cols...),
		data:      opts.Data,
		rows:      records.Clone(opts.Data),
		collator:  collator,
		renderer:  renderer,
		logger:    logger,
		listeners: events.NewRegistry(),
	}

	if err := t.Render(); err != nil {
		return nil, err
	}
	if err := t.applyDefaultSort(); err != nil {
		return nil, err
	}
	return t, nil
}

// applyDefaultSort sorts ascending by the first sortable column, if any.
func (t *SortableTable) applyDefaultSort() error {
	col, ok := columns.FirstSortable(t.columns)
	if !ok {
		return nil
	}
	return t.Sort(col.ID, OrderAsc)
}

// Render builds the whole tree from the current sort state and displayed
// rows, rebuilds the region lookup and rebinds header listeners. A mounted
// table is replaced in place.
func (t *SortableTable) Render() error {
	if t.destroyed {
		return ErrDestroyed
	}

	rows, err := views.BuildRows(t.columns, t.rows)
	if err != nil {
		return err
	}
	vm := views.TableViewModel{
		Headers: views.BuildHeaders(t.columns, t.state.Field, string(t.state.Order)),
		Rows:    rows,
	}

	var buf bytes.Buffer
	if err := t.renderer.RenderTable(&buf, vm); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	nodes, err := parseFragment(buf.Bytes(), divContext())
	if err != nil {
		return err
	}
	element := firstElement(nodes)
	if element == nil {
		return fmt.Errorf("table markup has no root element")
	}

	if old := t.element; old != nil && old.Parent != nil {
		parent := old.Parent
		parent.InsertBefore(element, old)
		parent.RemoveChild(old)
	}

	t.listeners.Clear()
	t.element = element
	t.subElements = subElements(element)
	t.bindHeader()
	return nil
}

// bindHeader attaches a pointerdown listener to every sortable header cell.
func (t *SortableTable) bindHeader() {
	for _, cell := range headerCells(t.subElements[RegionHeader]) {
		if attr(cell, "data-sortable") != "true" {
			continue
		}
		field := attr(cell, "data-id")
		t.listeners.On(cell, events.PointerDown, func(events.Event) {
			t.pressErr = t.Sort(field, t.state.nextOrder(field))
		})
	}
}

// Sort orders the displayed rows by field. Only the body region and the
// header order markers change; the source dataset keeps its order.
func (t *SortableTable) Sort(field string, order Order) error {
	if t.destroyed {
		return ErrDestroyed
	}
	if !order.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrder, order)
	}
	col, ok := columns.Find(t.columns, field)
	if !ok {
		return &UnknownFieldError{Field: field}
	}
	if !col.Sortable {
		return &UnknownFieldError{Field: field, NotSortable: true}
	}

	sorted := sortRecords(t.data, col, order, t.collator)

	rows, err := views.BuildRows(t.columns, sorted)
	if err != nil {
		return err
	}
	body := t.subElements[RegionBody]
	if body == nil {
		return fmt.Errorf("table has no %s region", RegionBody)
	}
	var buf bytes.Buffer
	if err := t.renderer.RenderRows(&buf, rows); err != nil {
		return fmt.Errorf("failed to render rows: %w", err)
	}
	nodes, err := parseFragment(buf.Bytes(), body)
	if err != nil {
		return err
	}

	t.rows = sorted
	t.state = SortState{Field: field, Order: order}

	for _, cell := range headerCells(t.subElements[RegionHeader]) {
		setAttr(cell, "data-order", "")
		if attr(cell, "data-id") == field {
			setAttr(cell, "data-order", string(order))
		}
	}
	replaceChildren(body, nodes)

	t.logger.Debug("sorted table", "field", field, "order", order, "rows", len(sorted))
	return nil
}

// Press simulates a pointer press on the header cell of field. Sortable
// columns toggle: the active column flips direction, others sort descending.
func (t *SortableTable) Press(field string) error {
	if t.destroyed {
		return ErrDestroyed
	}
	var cell *html.Node
	for _, c := range headerCells(t.subElements[RegionHeader]) {
		if attr(c, "data-id") == field {
			cell = c
			break
		}
	}
	if cell == nil {
		return &UnknownFieldError{Field: field}
	}
	if attr(cell, "data-sortable") != "true" {
		return &UnknownFieldError{Field: field, NotSortable: true}
	}

	t.pressErr = nil
	t.listeners.Dispatch(cell, events.PointerDown)
	err := t.pressErr
	t.pressErr = nil
	return err
}

// Mount appends the table element to parent, detaching it from any previous parent.
func (t *SortableTable) Mount(parent *html.Node) error {
	if t.destroyed {
		return ErrDestroyed
	}
	if parent == nil {
		return ErrNoParent
	}
	t.Remove()
	parent.AppendChild(t.element)
	return nil
}

// Remove detaches the table from its parent. Configuration, data and sort
// state are kept so the table can be mounted again.
func (t *SortableTable) Remove() {
	if t.element != nil && t.element.Parent != nil {
		t.element.Parent.RemoveChild(t.element)
	}
}

// Destroy removes the table, unbinds every header listener and drops the
// mounted tree. All later operations except Remove and Destroy return
// ErrDestroyed; those two are no-ops.
func (t *SortableTable) Destroy() {
	if t.destroyed {
		return
	}
	t.Remove()
	t.listeners.Clear()
	t.subElements = nil
	t.element = nil
	t.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (t *SortableTable) Destroyed() bool {
	return t.destroyed
}

// State returns the active sort column and direction.
func (t *SortableTable) State() SortState {
	return t.state
}

// Rows returns the records in displayed order.
func (t *SortableTable) Rows() []records.Record {
	return records.Clone(t.rows)
}

// Data returns the records in the order they were supplied.
func (t *SortableTable) Data() []records.Record {
	return records.Clone(t.data)
}

// Columns returns the column configuration.
func (t *SortableTable) Columns() []columns.ColumnDescriptor {
	return append([]columns.ColumnDescriptor(nil), t.columns...)
}

// Element returns the root node of the mounted tree, nil after Destroy.
func (t *SortableTable) Element() *html.Node {
	return t.element
}

// SubElement returns the region registered under name ("header", "body").
func (t *SortableTable) SubElement(name string) *html.Node {
	return t.subElements[name]
}

// Listeners returns the number of bound header listeners.
func (t *SortableTable) Listeners() int {
	return t.listeners.Len()
}

// HTML serializes the whole table.
func (t *SortableTable) HTML() (string, error) {
	if t.destroyed {
		return "", ErrDestroyed
	}
	return outerHTML(t.element)
}

// BodyHTML serializes the rows inside the body region.
func (t *SortableTable) BodyHTML() (string, error) {
	if t.destroyed {
		return "", ErrDestroyed
	}
	return innerHTML(t.subElements[RegionBody])
}
