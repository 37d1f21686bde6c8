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
	"embed"
	"io"
	"io/fs"

	"github.com/google/safehtml/template"
	"github.com/google/sortabletable/core/views"
)

//go:embed templates/*
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// TableRenderer handles rendering of table view models to HTML
type TableRenderer struct {
	tableTemplate   *template.Template
	rowsTemplate    *template.Template
	pageTemplate    *template.Template
	landingTemplate *template.Template
}

// NewTableRenderer creates a new table renderer
func NewTableRenderer() (*TableRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	// The table template includes the rows template for its body region
	tableTemplate, err := template.New("table.html").ParseFS(trustedFS, "templates/table.html", "templates/rows.html")
	if err != nil {
		return nil, err
	}

	// Rows are also rendered on their own when only the body is replaced
	rowsTemplate, err := template.New("rows.html").ParseFS(trustedFS, "templates/rows.html")
	if err != nil {
		return nil, err
	}

	pageTemplate, err := template.New("page.html").ParseFS(trustedFS, "templates/page.html")
	if err != nil {
		return nil, err
	}

	landingTemplate, err := template.New("landing.html").ParseFS(trustedFS, "templates/landing.html")
	if err != nil {
		return nil, err
	}

	return &TableRenderer{
		tableTemplate:   tableTemplate,
		rowsTemplate:    rowsTemplate,
		pageTemplate:    pageTemplate,
		landingTemplate: landingTemplate,
	}, nil
}

// RenderTable renders the complete component markup: header and body regions
func (r *TableRenderer) RenderTable(w io.Writer, vm views.TableViewModel) error {
	return r.tableTemplate.Execute(w, vm)
}

// RenderRows renders only the body rows
func (r *TableRenderer) RenderRows(w io.Writer, rows []views.DataRow) error {
	return r.rowsTemplate.Execute(w, rows)
}

// RenderPage renders the page that hosts a mounted table
func (r *TableRenderer) RenderPage(w io.Writer, vm views.PageViewModel) error {
	return r.pageTemplate.Execute(w, vm)
}

// RenderLanding renders a LandingViewModel to the provided writer
func (r *TableRenderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.landingTemplate.Execute(w, vm)
}

// StaticFS returns the stylesheet and script served alongside the page.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embedded directory always exists
		panic(err)
	}
	return sub
}
