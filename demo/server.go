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
	"context"
	"fmt"

	"github.com/google/sortabletable/core/columns"
	"github.com/google/sortabletable/core/config"
	"github.com/google/sortabletable/core/records"
	"github.com/google/sortabletable/core/rendering"
	"github.com/google/sortabletable/core/server"
	"github.com/google/sortabletable/core/tables"
	"github.com/google/sortabletable/datasources"
)

// LoadTableSource returns the configured columns and records, or the demo
// product table when no files are configured.
func LoadTableSource(cfg *config.Config) ([]columns.ColumnDescriptor, []records.Record, error) {
	if cfg.Columns == "" && cfg.Data == "" {
		return ProductColumns(), ProductData(), nil
	}

	reg := datasources.NewRegistry()
	RegisterAll(reg)
	cols, err := datasources.LoadColumns(cfg.Columns, reg)
	if err != nil {
		return nil, nil, err
	}
	data, err := datasources.NewDefaultManager().LoadRecords(cfg.Data)
	if err != nil {
		return nil, nil, err
	}
	cfg.Logger.Debug("loaded table source", "columns", len(cols), "records", len(data))
	return cols, data, nil
}

// BuildTable creates the configured table
func BuildTable(cfg *config.Config, renderer *rendering.TableRenderer) (*tables.SortableTable, error) {
	cols, data, err := LoadTableSource(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Enabled(config.LevelTrace) {
		for _, c := range cols {
			cfg.Logger.Log(context.Background(), config.LevelTrace, "column",
				"id", c.ID, "sortable", c.Sortable, "sort_type", c.SortType.String(), "template", c.Template != nil)
		}
	}
	return tables.New(cols, tables.Options{
		Data:     data,
		Locale:   cfg.Locale,
		Renderer: renderer,
		Logger:   cfg.Logger,
	})
}

// SetupDemoServer creates a server serving the configured table as "products"
func SetupDemoServer(cfg *config.Config) (*server.Server, error) {
	srv, err := server.NewServer(cfg.Logger)
	if err != nil {
		return nil, err
	}
	tbl, err := BuildTable(cfg, srv.Renderer())
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	srv.AddTable("products", cfg.Title, tbl)
	cfg.Logger.Info("table registered", "name", "products", "records", len(tbl.Data()), "state", tbl.State())
	return srv, nil
}
