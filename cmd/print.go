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
	"io"

	"github.com/google/sortabletable/core/config"
	"github.com/google/sortabletable/core/tables"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the sorted table as text",
	Long:  `Print the sorted rows as a text table. Columns rendered through a cell template are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := buildSortedTable(config.Get(), sortField, sortOrder)
		if err != nil {
			return err
		}
		defer tbl.Destroy()
		return writeText(cmd.OutOrStdout(), tbl)
	},
}

func init() {
	addSortFlags(printCmd)
	rootCmd.AddCommand(printCmd)
}

func writeText(w io.Writer, tbl *tables.SortableTable) error {
	var headers, ids []string
	for _, c := range tbl.Columns() {
		if c.Template != nil {
			continue
		}
		title := c.Title
		if st := tbl.State(); st.Field == c.ID {
			if st.Order == tables.OrderAsc {
				title += " ↑"
			} else {
				title += " ↓"
			}
		}
		headers = append(headers, title)
		ids = append(ids, c.ID)
	}

	var rows [][]string
	for _, r := range tbl.Rows() {
		row := make([]string, len(ids))
		for i, id := range ids {
			row[i] = r.Text(id)
		}
		rows = append(rows, row)
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
