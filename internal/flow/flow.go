/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package flow lays out grouped index entries into fixed-size page containers
// for the generated table of contents. The layout is pure and deterministic:
// the same computation runs for the interactive preview and again for export,
// and any divergence would desynchronize printed page numbers from the
// preview. The padding constants below are part of that contract — the render
// collaborator must consume these exact values.
package flow

// Layout constants in document units. Shared with the renderers; do not
// duplicate these numbers elsewhere.
const (
	PagePadding   = 32.0 // total vertical padding per page
	TitleGap      = 10.0 // reserved under a shown title
	HeaderPadding = 12.0 // around each group header row
	ItemSafety    = 2.0  // per-item safety margin
)

// Entry is one index entry to place: a label, an optional group key and the
// reference it points at.
type Entry struct {
	Label string
	Group string
	Ref   string
}

// Metrics carries the container geometry and the style-derived row metrics.
type Metrics struct {
	ContainerHeight  float64
	Columns          int
	ShowTitle        bool
	TitleHeight      float64 // ignored unless ShowTitle
	HeaderFontSize   float64
	HeaderLineHeight float64
	ItemFontSize     float64
	ItemLineHeight   float64
}

// HeaderRowHeight returns the height consumed by one group header row.
func (m Metrics) HeaderRowHeight() float64 {
	return m.HeaderFontSize*m.HeaderLineHeight + HeaderPadding
}

// ItemRowHeight returns the height consumed by one item row.
func (m Metrics) ItemRowHeight() float64 {
	return m.ItemFontSize*m.ItemLineHeight + ItemSafety
}

func (m Metrics) columns() int {
	if m.Columns < 1 {
		return 1
	}
	return m.Columns
}

// capacity returns the total row-height budget of the given page (across all
// columns). Only the first page reserves room for the title.
func (m Metrics) capacity(pageIndex int) float64 {
	h := m.ContainerHeight - PagePadding
	if pageIndex == 0 && m.ShowTitle {
		h -= m.TitleHeight + TitleGap
	}
	if h < 0 {
		h = 0
	}
	return h * float64(m.columns())
}

// RowKind discriminates header and item rows.
type RowKind string

const (
	RowHeader RowKind = "header"
	RowItem   RowKind = "item"
)

// Row is one laid-out line: a group header or an entry.
type Row struct {
	Kind   RowKind
	Label  string
	Group  string
	Ref    string
	Height float64
}

// Page is an ordered sequence of rows filling one container.
type Page struct {
	Rows []Row
}

// Paginate flows the entries into pages. Entries are bucketed by group key in
// first-seen order (the empty key is the implicit ungrouped bucket and emits
// no header). Rows accumulate greedily; a header that would not fit flushes
// to a fresh page first so it can never dangle as a page's last row, and a
// flush that would produce an empty page is suppressed. An empty input yields
// exactly one empty page, never zero.
func Paginate(entries []Entry, m Metrics) []Page {
	pages := []Page{{}}
	cur := &pages[0]
	used := 0.0

	flush := func() {
		if len(cur.Rows) == 0 {
			return
		}
		pages = append(pages, Page{})
		cur = &pages[len(pages)-1]
		used = 0
	}
	capNow := func() float64 { return m.capacity(len(pages) - 1) }
	place := func(r Row) {
		if used+r.Height > capNow() {
			flush()
		}
		cur.Rows = append(cur.Rows, r)
		used += r.Height
	}

	for _, g := range bucket(entries) {
		if g.key != "" {
			place(Row{Kind: RowHeader, Label: g.key, Group: g.key, Height: m.HeaderRowHeight()})
		}
		for _, e := range g.entries {
			place(Row{Kind: RowItem, Label: e.Label, Group: e.Group, Ref: e.Ref, Height: m.ItemRowHeight()})
		}
	}
	return pages
}

type group struct {
	key     string
	entries []Entry
}

// bucket partitions entries by group key, preserving first-seen group order
// and the entry order inside each group.
func bucket(entries []Entry) []group {
	var out []group
	idx := make(map[string]int)
	for _, e := range entries {
		i, ok := idx[e.Group]
		if !ok {
			i = len(out)
			idx[e.Group] = i
			out = append(out, group{key: e.Group})
		}
		out[i].entries = append(out[i].entries, e)
	}
	return out
}
