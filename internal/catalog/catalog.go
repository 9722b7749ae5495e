/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package catalog composes multiple element collections — the five fixed
// document sections plus per-chapter sub-designs — over a single live editor.
// Exactly one collection is bound into the element store at a time; switching
// serializes the live collection back to its owning slot before activating
// the destination. Switching is a hard history boundary.
package catalog

import (
	"log/slog"

	"gocatalogstudio/internal/canvas"
	"gocatalogstudio/internal/domain"
	applog "gocatalogstudio/internal/log"
)

// slot addresses one design: a section, or a chapter design when Chapter is
// non-empty (only valid under the chapterDivider section).
type slot struct {
	Section domain.SectionType
	Chapter string
}

// Manager owns every section's data and the binding of one slot into the
// live editor.
type Manager struct {
	ed       *canvas.Editor
	flat     domain.Design // single-mode design
	sections map[domain.SectionType]domain.Design
	chapters map[string]domain.Design
	enabled  bool
	active   slot
	log      *slog.Logger
}

// NewManager wraps an editor in catalog management. The manager starts in
// single (flat) mode; the live collection is the flat design.
func NewManager(ed *canvas.Editor) *Manager {
	m := &Manager{
		ed:       ed,
		sections: make(map[domain.SectionType]domain.Design, len(domain.SectionTypes)),
		chapters: make(map[string]domain.Design),
		log:      applog.WithComponent("catalog"),
	}
	for _, t := range domain.SectionTypes {
		m.sections[t] = domain.Design{}
	}
	return m
}

// Enabled reports whether catalog mode is on.
func (m *Manager) Enabled() bool { return m.enabled }

// ActiveSection returns the bound section type; meaningful only in catalog
// mode.
func (m *Manager) ActiveSection() domain.SectionType { return m.active.Section }

// ActiveChapter returns the bound chapter key, or "" when the chapter divider
// template (or a non-divider section) is live.
func (m *Manager) ActiveChapter() string { return m.active.Chapter }

// ChapterKeys returns the known chapter design keys (unordered).
func (m *Manager) ChapterKeys() []string {
	keys := make([]string, 0, len(m.chapters))
	for k := range m.chapters {
		keys = append(keys, k)
	}
	return keys
}

// SetEnabled toggles catalog mode. Toggling only changes which slot family is
// bound and how the document serializes; element data is never mutated.
func (m *Manager) SetEnabled(on bool) {
	if on == m.enabled {
		return
	}
	if on {
		m.flat = m.ed.CurrentDesign()
		m.enabled = true
		m.active = slot{Section: domain.SectionCover}
		m.ed.LoadDesign(m.sections[domain.SectionCover])
		m.log.Info("catalog mode enabled")
		return
	}
	m.storeLive()
	m.enabled = false
	m.active = slot{}
	m.ed.LoadDesign(m.flat)
	m.log.Info("catalog mode disabled")
}

// SwitchSection activates one of the five fixed sections. Unknown types and
// switches outside catalog mode are no-ops; re-activating the current section
// (with no chapter bound) is a no-op too.
func (m *Manager) SwitchSection(target domain.SectionType) {
	if !m.enabled || !domain.ValidSectionType(target) {
		return
	}
	dst := slot{Section: target}
	if dst == m.active {
		return
	}
	m.switchTo(dst)
}

// SwitchChapter activates the chapter design for the given group key,
// creating it from the current chapter divider template when first seen.
// An empty key returns to the template itself. Chapters exist only under the
// chapterDivider section, so the section is switched along if needed.
func (m *Manager) SwitchChapter(key string) {
	if !m.enabled {
		return
	}
	dst := slot{Section: domain.SectionChapterDivider, Chapter: key}
	if dst == m.active {
		return
	}
	m.switchTo(dst)
}

// switchTo is the serialize-then-load transition: write the live design back
// into its originating slot, seed a first-seen chapter from the divider
// template, then bind the destination. LoadDesign clears selection and resets
// history.
func (m *Manager) switchTo(dst slot) {
	m.storeLive()
	if dst.Chapter != "" {
		if _, ok := m.chapters[dst.Chapter]; !ok {
			m.chapters[dst.Chapter] = m.sections[domain.SectionChapterDivider].Clone()
			m.log.Debug("chapter design seeded", slog.String("chapter", dst.Chapter))
		}
	}
	m.active = dst
	m.ed.LoadDesign(m.designFor(dst))
}

// storeLive serializes the live collection back into its owning slot.
func (m *Manager) storeLive() {
	live := m.ed.CurrentDesign()
	if !m.enabled {
		m.flat = live
		return
	}
	if m.active.Chapter != "" {
		m.chapters[m.active.Chapter] = live
		return
	}
	m.sections[m.active.Section] = live
}

func (m *Manager) designFor(s slot) domain.Design {
	if s.Chapter != "" {
		return m.chapters[s.Chapter]
	}
	return m.sections[s.Section]
}

// BuildPayload assembles the persistence record for the whole document,
// folding the live collection back into its slot (on deep copies — the live
// state is not disturbed).
func (m *Manager) BuildPayload() domain.DocumentPayload {
	st := m.ed.Store()
	p := domain.DocumentPayload{
		CanvasWidth:     st.Canvas().W,
		CanvasHeight:    st.Canvas().H,
		PageCount:       st.PageCount(),
		BackgroundColor: st.Background(),
	}
	live := m.ed.CurrentDesign()
	if !m.enabled {
		p.Type = domain.DocumentSingle
		p.Elements = live.Elements
		return p
	}
	p.Type = domain.DocumentCatalog
	// The manifest always carries an elements array; catalog content lives
	// in catalogData.
	p.Elements = []domain.CanvasElement{}
	cd := &domain.CatalogData{
		Sections:       make(map[domain.SectionType]domain.Design, len(m.sections)),
		ChapterDesigns: make(map[string]domain.Design, len(m.chapters)),
	}
	for k, v := range m.sections {
		cd.Sections[k] = v.Clone()
	}
	for k, v := range m.chapters {
		cd.ChapterDesigns[k] = v.Clone()
	}
	if m.active.Chapter != "" {
		cd.ChapterDesigns[m.active.Chapter] = live
	} else {
		cd.Sections[m.active.Section] = live
	}
	p.CatalogData = cd
	return p
}

// LoadPayload installs a persisted document into the manager and editor,
// including its canvas geometry and page count. Unknown section types in the
// payload are dropped.
func (m *Manager) LoadPayload(p domain.DocumentPayload) {
	for _, t := range domain.SectionTypes {
		m.sections[t] = domain.Design{}
	}
	m.chapters = make(map[string]domain.Design)
	st := m.ed.Store()
	st.SetCanvas(p.CanvasWidth, p.CanvasHeight)
	st.SetPageCount(p.PageCount)
	if p.Type == domain.DocumentCatalog && p.CatalogData != nil {
		for k, v := range p.CatalogData.Sections {
			if domain.ValidSectionType(k) {
				m.sections[k] = v.Clone()
			}
		}
		for k, v := range p.CatalogData.ChapterDesigns {
			m.chapters[k] = v.Clone()
		}
		m.enabled = true
		m.active = slot{Section: domain.SectionCover}
		m.ed.LoadDesign(m.sections[domain.SectionCover])
		return
	}
	m.enabled = false
	m.active = slot{}
	m.flat = domain.Design{Elements: domain.CloneElements(p.Elements), Background: p.BackgroundColor}
	m.ed.LoadDesign(m.flat)
}
