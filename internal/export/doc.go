/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package export renders documents to PDF and PNG. Renderers consume the
// per-page element list with bindings resolved through the binding source and
// lay tocList elements out with the flow engine, so page partitioning always
// matches the interactive preview.
package export

import (
	"sort"

	"gocatalogstudio/internal/binding"
	"gocatalogstudio/internal/domain"
	"gocatalogstudio/internal/flow"
)

// Doc is the renderable slice of a document: canvas geometry plus one flat
// element collection. Catalog sections export one Doc per section design.
type Doc struct {
	CanvasWidth  float64
	CanvasHeight float64
	PageCount    int
	Background   string
	Elements     []domain.CanvasElement
}

// FromPayload builds a Doc from a flat-mode payload.
func FromPayload(p domain.DocumentPayload) Doc {
	return Doc{
		CanvasWidth:  p.CanvasWidth,
		CanvasHeight: p.CanvasHeight,
		PageCount:    p.PageCount,
		Background:   p.BackgroundColor,
		Elements:     p.Elements,
	}
}

// FromDesign builds a single-page Doc from one section or chapter design.
func FromDesign(d domain.Design, canvasW, canvasH float64) Doc {
	return Doc{
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		PageCount:    1,
		Background:   d.Background,
		Elements:     d.Elements,
	}
}

// pageElements returns the visible elements of one page in paint order.
func (d Doc) pageElements(page int) []domain.CanvasElement {
	var out []domain.CanvasElement
	for _, e := range d.Elements {
		if e.PageIndex == page && e.Visible {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].ZIndex < out[b].ZIndex })
	return out
}

// tocMetrics derives the flow metrics for a tocList element from its settings
// and box height. Defaults keep degenerate settings renderable.
func tocMetrics(e domain.CanvasElement) flow.Metrics {
	m := flow.Metrics{
		ContainerHeight:  e.Dimension.Height,
		Columns:          1,
		HeaderFontSize:   14,
		HeaderLineHeight: 1.4,
		ItemFontSize:     11,
		ItemLineHeight:   1.4,
	}
	t := e.TOC
	if t == nil {
		return m
	}
	if t.Columns > 0 {
		m.Columns = t.Columns
	}
	if t.ShowTitle && t.Title != "" {
		m.ShowTitle = true
		m.TitleHeight = 24
		if t.TitleStyle != nil && t.TitleStyle.FontSize > 0 {
			lh := t.TitleStyle.LineHeight
			if lh <= 0 {
				lh = 1.4
			}
			m.TitleHeight = t.TitleStyle.FontSize * lh
		}
	}
	if t.HeaderStyle != nil {
		if t.HeaderStyle.FontSize > 0 {
			m.HeaderFontSize = t.HeaderStyle.FontSize
		}
		if t.HeaderStyle.LineHeight > 0 {
			m.HeaderLineHeight = t.HeaderStyle.LineHeight
		}
	}
	if t.ItemStyle != nil {
		if t.ItemStyle.FontSize > 0 {
			m.ItemFontSize = t.ItemStyle.FontSize
		}
		if t.ItemStyle.LineHeight > 0 {
			m.ItemLineHeight = t.ItemStyle.LineHeight
		}
	}
	return m
}

// tocEntries builds the element's index entries from the row source: labels
// from the first column, groups from the configured grouping field.
func tocEntries(e domain.CanvasElement, src *binding.Source) []flow.Entry {
	if src == nil || len(src.Columns()) == 0 {
		return nil
	}
	groupBy := ""
	if e.TOC != nil {
		groupBy = e.TOC.GroupBy
	}
	return binding.Entries(src, src.Columns()[0], groupBy, "")
}
