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

// Package records defines the row records displayed by a sortable table.
// A record is an opaque mapping from field name to value; the table only
// reads the fields named by its column descriptors.
package records

import (
	"math"

	"github.com/spf13/cast"
)

// Record is a single row of the dataset.
type Record map[string]any

// Value returns the raw value stored under field, or nil when the record has no such field.
func (r Record) Value(field string) any {
	if r == nil {
		return nil
	}
	return r[field]
}

// Text renders the value of field for a plain text cell.
// Missing fields and nil values render as the empty string.
func (r Record) Text(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

// Number coerces the value of field to a float64.
// Values that cannot be interpreted as numbers yield NaN.
func (r Record) Number(field string) float64 {
	v, ok := r[field]
	if !ok || v == nil {
		return math.NaN()
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Clone returns a shallow copy of the slice. The records themselves are shared.
func Clone(rs []Record) []Record {
	out := make([]Record, len(rs))
	copy(out, rs)
	return out
}
