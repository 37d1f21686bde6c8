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

package query

import (
	"net/url"
	"strings"

	"github.com/google/safehtml"
)

// Query represents the sort parameters of a table URL
type Query struct {
	// Base path (e.g., "/tables/products")
	Path string

	Sort  string // Column id to sort by, empty for the table's current order
	Order string // "asc" or "desc"; empty means ascending
	Field string // Column id of a header press
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	q := u.Query()
	return &Query{
		Path:  u.Path,
		Sort:  strings.TrimSpace(q.Get("sort")),
		Order: strings.ToLower(strings.TrimSpace(q.Get("order"))),
		Field: strings.TrimSpace(q.Get("field")),
	}
}

// Clone creates a copy of the Query
func (s *Query) Clone() *Query {
	clone := *s
	return &clone
}

// HasSort reports whether the URL requests a sort
func (s *Query) HasSort() bool {
	return s.Sort != ""
}

// OrderOrDefault returns the requested order, "asc" when none was given
func (s *Query) OrderOrDefault() string {
	if s.Order == "" {
		return "asc"
	}
	return s.Order
}

// WithSort returns a URL sorting by field in the given order
func (s *Query) WithSort(field, order string) safehtml.URL {
	newState := s.Clone()
	newState.Sort = field
	newState.Order = order
	newState.Field = ""
	return newState.ToSafeURL()
}

// WithPath returns a URL for another path keeping the sort parameters
func (s *Query) WithPath(path string) safehtml.URL {
	newState := s.Clone()
	newState.Path = path
	newState.Field = ""
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()
	if s.Sort != "" {
		q.Set("sort", s.Sort)
		if s.Order != "" {
			q.Set("order", s.Order)
		}
	}
	if s.Field != "" {
		q.Set("field", s.Field)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	// URLSanitized sanitizes the input string and returns a URL
	return safehtml.URLSanitized(s.ToURL())
}
