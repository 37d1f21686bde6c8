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
	"errors"
	"fmt"
)

var (
	// ErrDestroyed is returned by operations on a destroyed table.
	ErrDestroyed = errors.New("table has been destroyed")

	// ErrInvalidOrder is returned for a sort direction other than asc or desc.
	ErrInvalidOrder = errors.New("invalid sort order")

	// ErrNoParent is returned by Mount when no parent node is given.
	ErrNoParent = errors.New("mount parent is nil")
)

// UnknownFieldError is returned when a sort is requested on a field that is
// not a sortable column of the table.
type UnknownFieldError struct {
	Field string
	// NotSortable is set when the column exists but is not sortable.
	NotSortable bool
}

func (e *UnknownFieldError) Error() string {
	if e.NotSortable {
		return fmt.Sprintf("column %q is not sortable", e.Field)
	}
	return fmt.Sprintf("unknown column %q", e.Field)
}
