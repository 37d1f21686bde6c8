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
	"math"

	"github.com/google/sortabletable/core/records"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation locale used for string columns unless configured otherwise.
const DefaultLocale = "ru"

// Strategy is a comparison strategy resolved from a column descriptor.
// Compare returns -1, 0 or 1 in ascending order.
type Strategy interface {
	Compare(a, b records.Record) int
}

// Numeric orders records arithmetically by a field. Values are compared as
// float64, so integers beyond 2^53 may compare equal.
type Numeric struct {
	Field string
}

// Lexicographic orders records by a field using locale-aware collation.
type Lexicographic struct {
	Field    string
	Collator *collate.Collator
}

// Custom delegates ordering to a caller supplied comparator.
type Custom struct {
	Fn Comparator
}

// Compare implements Strategy.
func (s Numeric) Compare(a, b records.Record) int {
	return compareFloat64s(a.Number(s.Field), b.Number(s.Field))
}

// Compare implements Strategy.
func (s Lexicographic) Compare(a, b records.Record) int {
	return s.Collator.CompareString(a.Text(s.Field), b.Text(s.Field))
}

// Compare implements Strategy.
func (s Custom) Compare(a, b records.Record) int {
	return sign(s.Fn(a, b))
}

// Resolve selects the strategy for a column. Any sort type other than
// string or custom (and a custom type without comparator) uses Numeric.
func Resolve(d ColumnDescriptor, c *collate.Collator) Strategy {
	switch d.SortType {
	case SortString:
		return Lexicographic{Field: d.ID, Collator: c}
	case SortCustom:
		if d.CustomSorting != nil {
			return Custom{Fn: d.CustomSorting}
		}
	}
	return Numeric{Field: d.ID}
}

// NewCollator returns a collator for a BCP 47 locale such as "ru" or "en-US".
func NewCollator(locale string) (*collate.Collator, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return collate.New(tag), nil
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0
	}
	if aNaN {
		return 1
	}
	if bNaN {
		return -1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
