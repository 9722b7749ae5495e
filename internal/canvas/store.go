/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package canvas implements the in-memory editing engine: the authoritative
// element store, selection, transforms and the gesture/commit cycle. The
// engine is single-writer and synchronous; callers on other goroutines must
// treat returned collections as momentary snapshots.
package canvas

import (
	"math"

	"github.com/google/uuid"

	"gocatalogstudio/internal/domain"
	"gocatalogstudio/internal/geom"
)

// DuplicateOffset is the fixed position shift applied to duplicated elements.
const DuplicateOffset = 20.0

// Grid holds snapping settings.
type Grid struct {
	Size    float64
	Enabled bool
}

// Store is the authoritative element collection for the live design and its
// atomic mutation API. All invariant violations degrade to no-ops or clamped
// corrections; Store methods never fail.
type Store struct {
	elements   []domain.CanvasElement
	canvas     geom.Size
	pageCount  int
	activePage int
	grid       Grid
	background string
}

// NewStore creates a store for a canvas of the given size with one page.
func NewStore(width, height float64) *Store {
	return &Store{
		canvas:    geom.Size{W: width, H: height},
		pageCount: 1,
	}
}

// Elements returns the live collection ordered as stored. The slice is a
// momentary snapshot view; the next mutation may invalidate it.
func (s *Store) Elements() []domain.CanvasElement { return s.elements }

// ElementsOnPage returns the elements tagged with the given page index.
func (s *Store) ElementsOnPage(page int) []domain.CanvasElement {
	var out []domain.CanvasElement
	for _, e := range s.elements {
		if e.PageIndex == page {
			out = append(out, e)
		}
	}
	return out
}

// Get returns a copy of the element with the given id.
func (s *Store) Get(id string) (domain.CanvasElement, bool) {
	if i := s.index(id); i >= 0 {
		return s.elements[i].Clone(), true
	}
	return domain.CanvasElement{}, false
}

func (s *Store) index(id string) int {
	for i := range s.elements {
		if s.elements[i].ID == id {
			return i
		}
	}
	return -1
}

// Replace installs a collection wholesale (history restore, section load).
// The store takes ownership of the slice.
func (s *Store) Replace(els []domain.CanvasElement) { s.elements = els }

// Canvas returns the canvas size in document units.
func (s *Store) Canvas() geom.Size { return s.canvas }

// Background returns the live design's background color.
func (s *Store) Background() string { return s.background }

// SetBackground sets the live design's background color.
func (s *Store) SetBackground(c string) { s.background = c }

// SetGrid configures grid snapping for moves and placement.
func (s *Store) SetGrid(g Grid) { s.grid = g }

// GridSettings returns the current snapping settings.
func (s *Store) GridSettings() Grid { return s.grid }

// ActivePage returns the page new elements are tagged with.
func (s *Store) ActivePage() int { return s.activePage }

// PageCount returns the number of pages.
func (s *Store) PageCount() int { return s.pageCount }

// SetActivePage switches the page new elements are tagged with. Out-of-range
// indexes are clamped.
func (s *Store) SetActivePage(page int) {
	if page < 0 {
		page = 0
	}
	if page > s.pageCount-1 {
		page = s.pageCount - 1
	}
	s.activePage = page
}

// SetCanvas installs the canvas size of a loaded document. Non-positive
// dimensions are ignored.
func (s *Store) SetCanvas(width, height float64) {
	if width > 0 && height > 0 {
		s.canvas = geom.Size{W: width, H: height}
	}
}

// SetPageCount installs the page count of a loaded document. Values below one
// collapse to a single page; the active page is clamped into range.
func (s *Store) SetPageCount(n int) {
	if n < 1 {
		n = 1
	}
	s.pageCount = n
	if s.activePage >= n {
		s.activePage = n - 1
	}
}

// AddPage appends an empty page and returns its index.
func (s *Store) AddPage() int {
	s.pageCount++
	return s.pageCount - 1
}

// RemovePage deletes page k's elements and shifts later pages down by one.
// The active page follows the shift so it keeps naming the same logical page.
// Removing the only page, or an unknown page, is a no-op.
func (s *Store) RemovePage(k int) {
	if k < 0 || k >= s.pageCount || s.pageCount == 1 {
		return
	}
	kept := s.elements[:0]
	for _, e := range s.elements {
		if e.PageIndex == k {
			continue
		}
		if e.PageIndex > k {
			e.PageIndex--
		}
		kept = append(kept, e)
	}
	s.elements = kept
	s.pageCount--
	switch {
	case s.activePage > k:
		s.activePage--
	case s.activePage >= s.pageCount:
		s.activePage = s.pageCount - 1
	}
}

// Add inserts an element: assigns a fresh id, stacks it on top and tags it
// with the active page. Position is snapped/clamped and the dimension floored
// like any other placement.
func (s *Store) Add(e domain.CanvasElement) domain.CanvasElement {
	e = e.Clone()
	e.ID = uuid.NewString()
	e.ZIndex = s.maxZ() + 1
	e.PageIndex = s.activePage
	e.Visible = true
	e.Dimension = s.sanitizeDimension(e.Dimension)
	e.Position = s.placePosition(e.Position, e.Dimension)
	s.elements = append(s.elements, e)
	return e.Clone()
}

// Update merges the patch into the element. Unknown ids are a no-op; the
// resulting dimension and position are re-clamped to keep the invariants.
func (s *Store) Update(id string, p domain.ElementPatch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	e := &s.elements[i]
	e.Apply(p)
	if p.Dimension != nil {
		e.Dimension = s.sanitizeDimension(e.Dimension)
	}
	if p.Position != nil {
		e.Position = clampFinite(e.Position, e.Dimension, s.canvas)
	}
	if p.PageIndex != nil && (e.PageIndex < 0 || e.PageIndex >= s.pageCount) {
		e.PageIndex = s.activePage
	}
	return true
}

// Delete removes the given elements. Unknown ids are skipped silently.
func (s *Store) Delete(ids ...string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.elements[:0]
	for _, e := range s.elements {
		if !drop[e.ID] {
			kept = append(kept, e)
		}
	}
	s.elements = kept
}

// Duplicate deep-copies the element under a new id, offsets it by the fixed
// duplicate shift and raises it to the top.
func (s *Store) Duplicate(id string) (domain.CanvasElement, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.CanvasElement{}, false
	}
	c := s.elements[i].Clone()
	c.ID = uuid.NewString()
	c.Position.X += DuplicateOffset
	c.Position.Y += DuplicateOffset
	c.Position = clampFinite(c.Position, c.Dimension, s.canvas)
	c.ZIndex = s.maxZ() + 1
	s.elements = append(s.elements, c)
	return c.Clone(), true
}

// BringToFront raises the element above every other.
func (s *Store) BringToFront(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.elements[i].ZIndex = s.maxZ() + 1
}

// SendToBack lowers the element below every other. While the current minimum
// is above zero the target simply takes min-1; once the floor is reached,
// every other element shifts up by one and the target takes zero. This keeps
// renumbering a boundary-only cost.
func (s *Store) SendToBack(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	minZ := math.MaxInt
	for j := range s.elements {
		if j != i && s.elements[j].ZIndex < minZ {
			minZ = s.elements[j].ZIndex
		}
	}
	if minZ == math.MaxInt {
		return // only element
	}
	if minZ > 0 {
		s.elements[i].ZIndex = minZ - 1
		return
	}
	for j := range s.elements {
		if j != i {
			s.elements[j].ZIndex++
		}
	}
	s.elements[i].ZIndex = 0
}

// ToggleAspectLock flips the aspect lock, capturing the current ratio when
// enabling so later resizes have a stored ratio to derive from.
func (s *Store) ToggleAspectLock(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	e := &s.elements[i]
	e.AspectRatioLocked = !e.AspectRatioLocked
	if e.AspectRatioLocked && e.Dimension.Height > 0 {
		e.AspectRatio = e.Dimension.Width / e.Dimension.Height
	}
}

func (s *Store) maxZ() int {
	maxZ := -1
	for _, e := range s.elements {
		if e.ZIndex > maxZ {
			maxZ = e.ZIndex
		}
	}
	return maxZ
}

// placePosition applies grid snapping (when enabled) and clamps into the
// canvas so the element stays fully visible.
func (s *Store) placePosition(p domain.Position, d domain.Dimension) domain.Position {
	if s.grid.Enabled {
		p.X = geom.SnapToGrid(p.X, s.grid.Size)
		p.Y = geom.SnapToGrid(p.Y, s.grid.Size)
	}
	return clampFinite(p, d, s.canvas)
}

// sanitizeDimension floors both axes and repairs non-finite inputs.
func (s *Store) sanitizeDimension(d domain.Dimension) domain.Dimension {
	if !geom.Finite(d.Width) {
		d.Width = domain.MinElementSize
	}
	if !geom.Finite(d.Height) {
		d.Height = domain.MinElementSize
	}
	if d.Width < domain.MinElementSize {
		d.Width = domain.MinElementSize
	}
	if d.Height < domain.MinElementSize {
		d.Height = domain.MinElementSize
	}
	return d
}

func clampFinite(p domain.Position, d domain.Dimension, canvas geom.Size) domain.Position {
	if !geom.Finite(p.X) {
		p.X = 0
	}
	if !geom.Finite(p.Y) {
		p.Y = 0
	}
	p.X = geom.Clamp(p.X, 0, canvas.W-d.Width)
	p.Y = geom.Clamp(p.Y, 0, canvas.H-d.Height)
	return p
}
