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
	"fmt"
	"slices"
	"strings"

	"github.com/google/sortabletable/core/columns"
	"github.com/google/sortabletable/core/records"
	"golang.org/x/text/collate"
)

// Order is a sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder parses "asc" or "desc".
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderAsc, OrderDesc:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
}

// Valid reports whether o is asc or desc.
func (o Order) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}

// Toggle returns the opposite direction.
func (o Order) Toggle() Order {
	if o == OrderDesc {
		return OrderAsc
	}
	return OrderDesc
}

// direction is the multiplier applied to ascending comparisons.
func (o Order) direction() int {
	if o == OrderAsc {
		return 1
	}
	return -1
}

// SortState is the active sort column and direction.
// The zero value means no sort has been applied.
type SortState struct {
	Field string
	Order Order
}

// nextOrder returns the order a press on field applies: the active column
// flips its direction, any other column starts descending.
func (s SortState) nextOrder(field string) Order {
	if s.Field == field && s.Order.Valid() {
		return s.Order.Toggle()
	}
	return OrderDesc
}

// sortRecords returns a sorted copy of data. The input slice is not modified.
func sortRecords(data []records.Record, col columns.ColumnDescriptor, order Order, c *collate.Collator) []records.Record {
	sorted := records.Clone(data)
	strategy := columns.Resolve(col, c)
	dir := order.direction()

	slices.SortStableFunc(sorted, func(a, b records.Record) int {
		return dir * strategy.Compare(a, b)
	})
	return sorted
}
