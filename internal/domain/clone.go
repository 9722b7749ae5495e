/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

// Explicit structural deep copies over the known variant set. History
// snapshots and section hand-offs depend on these never aliasing live state;
// a serialize/deserialize round-trip would silently drop non-plain fields,
// so copies are spelled out per type.

// Clone returns a deep copy of the element, including style payloads.
func (e CanvasElement) Clone() CanvasElement {
	c := e
	if e.Text != nil {
		t := *e.Text
		c.Text = &t
	}
	if e.Shape != nil {
		s := *e.Shape
		c.Shape = &s
	}
	if e.TOC != nil {
		c.TOC = e.TOC.clone()
	}
	return c
}

func (t *TOCSettings) clone() *TOCSettings {
	c := *t
	if t.TitleStyle != nil {
		s := *t.TitleStyle
		c.TitleStyle = &s
	}
	if t.HeaderStyle != nil {
		s := *t.HeaderStyle
		c.HeaderStyle = &s
	}
	if t.ItemStyle != nil {
		s := *t.ItemStyle
		c.ItemStyle = &s
	}
	return &c
}

// CloneElements deep-copies a whole collection. A nil input yields an empty,
// non-nil slice so callers can mutate the result unconditionally.
func CloneElements(els []CanvasElement) []CanvasElement {
	out := make([]CanvasElement, len(els))
	for i, e := range els {
		out[i] = e.Clone()
	}
	return out
}

// Clone returns a deep copy of the design.
func (d Design) Clone() Design {
	return Design{Elements: CloneElements(d.Elements), Background: d.Background}
}

// Clone returns a deep copy of the catalog data maps.
func (c *CatalogData) Clone() *CatalogData {
	if c == nil {
		return nil
	}
	out := &CatalogData{
		Sections:       make(map[SectionType]Design, len(c.Sections)),
		ChapterDesigns: make(map[string]Design, len(c.ChapterDesigns)),
	}
	for k, v := range c.Sections {
		out.Sections[k] = v.Clone()
	}
	for k, v := range c.ChapterDesigns {
		out.ChapterDesigns[k] = v.Clone()
	}
	return out
}

// Clone returns a deep copy of the payload.
func (p DocumentPayload) Clone() DocumentPayload {
	c := p
	c.Elements = CloneElements(p.Elements)
	c.CatalogData = p.CatalogData.Clone()
	return c
}
