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

package demo

import (
	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/sortabletable/core/columns"
	"github.com/google/sortabletable/core/records"
	"github.com/google/sortabletable/datasources"
	"github.com/spf13/cast"
)

var imageTemplate = template.Must(template.New("image").Parse(
	`<div class="sortable-table__cell"><img class="sortable-table-image" alt="Image" src="{{.}}"></div>`))

// ImageCell renders the first image of an images value. The value is either
// a URL string or a list of {url: ...} objects as found in JSON product data.
func ImageCell(value any) (safehtml.HTML, error) {
	return imageTemplate.ExecuteToHTML(firstImageURL(value))
}

func firstImageURL(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		return firstImageURL(v[0])
	case []map[string]any:
		if len(v) == 0 {
			return ""
		}
		return cast.ToString(v[0]["url"])
	case map[string]any:
		return cast.ToString(v["url"])
	}
	return ""
}

// statusRank orders availability states from most to least available
var statusRank = map[string]int{
	"в наличии": 0,
	"мало":      1,
	"под заказ": 2,
	"нет":       3,
}

// CompareStatus orders records by availability. Unknown states sort last.
func CompareStatus(a, b records.Record) int {
	return rank(a.Text("status")) - rank(b.Text("status"))
}

func rank(status string) int {
	if r, ok := statusRank[status]; ok {
		return r
	}
	return len(statusRank)
}

// RegisterAll registers the demo templates and comparators for columns files
func RegisterAll(reg *datasources.Registry) {
	reg.RegisterTemplate("image", ImageCell)
	reg.RegisterComparator("status", CompareStatus)
}

// ProductColumns returns the column configuration of the demo product table
func ProductColumns() []columns.ColumnDescriptor {
	return []columns.ColumnDescriptor{
		{ID: "images", Title: "Фото", Sortable: false, Template: ImageCell},
		{ID: "title", Title: "Название", Sortable: true, SortType: columns.SortString},
		{ID: "quantity", Title: "Количество", Sortable: true, SortType: columns.SortNumeric},
		{ID: "price", Title: "Цена", Sortable: true, SortType: columns.SortNumeric},
		{ID: "status", Title: "Наличие", Sortable: true, SortType: columns.SortCustom, CustomSorting: CompareStatus},
	}
}

func image(url string) []any {
	return []any{map[string]any{"url": url, "source": "demo"}}
}

// ProductData returns the demo product records
func ProductData() []records.Record {
	return []records.Record{
		{"id": "yabloko", "images": image("https://example.com/images/yabloko.jpg"), "title": "Яблоко Гренни Смит", "quantity": 120, "price": 149, "status": "в наличии"},
		{"id": "apelsin", "images": image("https://example.com/images/apelsin.jpg"), "title": "Апельсин", "quantity": 35, "price": 189, "status": "мало"},
		{"id": "banan", "images": image("https://example.com/images/banan.jpg"), "title": "банан", "quantity": 240, "price": 99, "status": "в наличии"},
		{"id": "ezhevika", "images": image("https://example.com/images/ezhevika.jpg"), "title": "Ежевика", "quantity": 0, "price": 459, "status": "нет"},
		{"id": "yozhik", "images": image("https://example.com/images/yozhik.jpg"), "title": "Ёжик в тумане (торт)", "quantity": 4, "price": 1290, "status": "под заказ"},
		{"id": "grusha", "images": image("https://example.com/images/grusha.jpg"), "title": "Груша Конференция", "quantity": 58, "price": 229, "status": "в наличии"},
		{"id": "kivi", "images": image("https://example.com/images/kivi.jpg"), "title": "Киви", "quantity": 12, "price": 35.5, "status": "мало"},
		{"id": "mango", "images": image("https://example.com/images/mango.jpg"), "title": "Манго", "quantity": 7, "price": 319, "status": "под заказ"},
	}
}
