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

package cmd

import (
	"fmt"
	"io"

	"github.com/google/sortabletable/core/config"
	"github.com/google/sortabletable/core/tables"
	"github.com/google/sortabletable/demo"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the configured table as HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := buildSortedTable(config.Get(), sortField, sortOrder)
		if err != nil {
			return err
		}
		defer tbl.Destroy()
		return writeHTML(cmd.OutOrStdout(), tbl)
	},
}

func init() {
	addSortFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

// buildSortedTable builds the configured table and applies an explicit sort
// when field is set. Otherwise the table keeps its default sort.
func buildSortedTable(cfg *config.Config, field, order string) (*tables.SortableTable, error) {
	tbl, err := demo.BuildTable(cfg, nil)
	if err != nil {
		return nil, err
	}
	if field == "" {
		return tbl, nil
	}
	o, err := tables.ParseOrder(order)
	if err != nil {
		tbl.Destroy()
		return nil, err
	}
	if err := tbl.Sort(field, o); err != nil {
		tbl.Destroy()
		return nil, err
	}
	return tbl, nil
}

func writeHTML(w io.Writer, tbl *tables.SortableTable) error {
	out, err := tbl.HTML()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
