/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package binding supplies externally provided row data to bound elements.
// Elements store only a column name; displayed content is resolved against
// the currently selected row at read time, so changing the selected row
// re-resolves every bound element without any element mutation.
package binding

import (
	"gocatalogstudio/internal/domain"
	"gocatalogstudio/internal/flow"
)

// Source holds an ordered column list and ordered row records plus the
// selected row cursor.
type Source struct {
	columns  []string
	rows     []map[string]string
	selected int
}

// NewSource wraps the given columns and rows. The first row starts selected.
func NewSource(columns []string, rows []map[string]string) *Source {
	return &Source{columns: columns, rows: rows}
}

// Columns returns the column names in source order.
func (s *Source) Columns() []string { return s.columns }

// RowCount returns the number of rows.
func (s *Source) RowCount() int { return len(s.rows) }

// SelectedRow returns the selected row index (0 when empty).
func (s *Source) SelectedRow() int { return s.selected }

// SelectRow moves the cursor; out-of-range indexes are clamped.
func (s *Source) SelectRow(i int) {
	if i < 0 {
		i = 0
	}
	if i > len(s.rows)-1 {
		i = len(s.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	s.selected = i
}

// Value looks up the selected row's value for a column.
func (s *Source) Value(column string) (string, bool) {
	return s.ValueAt(s.selected, column)
}

// ValueAt looks up a specific row's value for a column.
func (s *Source) ValueAt(row int, column string) (string, bool) {
	if row < 0 || row >= len(s.rows) {
		return "", false
	}
	v, ok := s.rows[row][column]
	return v, ok
}

// Resolve returns the content to display for an element: bound dataField and
// image elements read the selected row's value for their column; everything
// else (and missing bindings) falls back to the element's own content.
func Resolve(e domain.CanvasElement, src *Source) string {
	if src == nil || e.DataBinding == "" {
		return e.Content
	}
	switch e.Type {
	case domain.ElementDataField, domain.ElementImage, domain.ElementQRCode:
		if v, ok := src.Value(e.DataBinding); ok {
			return v
		}
	}
	return e.Content
}

// Entries builds flow entries from every row: labelCol supplies the label,
// groupCol (optional) the group key and refCol (optional) the target
// reference. Rows missing the label column are skipped.
func Entries(src *Source, labelCol, groupCol, refCol string) []flow.Entry {
	if src == nil || labelCol == "" {
		return nil
	}
	var out []flow.Entry
	for i := range src.rows {
		label, ok := src.ValueAt(i, labelCol)
		if !ok {
			continue
		}
		e := flow.Entry{Label: label}
		if groupCol != "" {
			e.Group, _ = src.ValueAt(i, groupCol)
		}
		if refCol != "" {
			e.Ref, _ = src.ValueAt(i, refCol)
		}
		out = append(out, e)
	}
	return out
}
