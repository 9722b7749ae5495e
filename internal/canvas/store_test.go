/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"math"
	"testing"

	"gocatalogstudio/internal/domain"
)

func newTestStore() *Store {
	s := NewStore(800, 600)
	s.SetGrid(Grid{Size: 10, Enabled: true})
	return s
}

func addShape(s *Store, x, y, w, h float64) domain.CanvasElement {
	return s.Add(domain.CanvasElement{
		Type:      domain.ElementShape,
		Position:  domain.Position{X: x, Y: y},
		Dimension: domain.Dimension{Width: w, Height: h},
	})
}

func TestAddSnapsAndAssignsDefaults(t *testing.T) {
	s := newTestStore()
	e := addShape(s, 7, 7, 50, 50)
	if e.ID == "" {
		t.Fatalf("expected generated id")
	}
	// grid 10: the created element must store the snapped position
	if e.Position.X != 10 || e.Position.Y != 10 {
		t.Fatalf("expected snapped (10,10), got (%v,%v)", e.Position.X, e.Position.Y)
	}
	if !e.Visible || e.PageIndex != 0 {
		t.Fatalf("defaults wrong: %+v", e)
	}
	e2 := addShape(s, 0, 0, 10, 10)
	if e2.ZIndex <= e.ZIndex {
		t.Fatalf("new element must stack on top: %d vs %d", e2.ZIndex, e.ZIndex)
	}
}

func TestAddFloorsDimensionAndRepairsNonFinite(t *testing.T) {
	s := newTestStore()
	e := s.Add(domain.CanvasElement{
		Type:      domain.ElementShape,
		Dimension: domain.Dimension{Width: 3, Height: math.NaN()},
	})
	if e.Dimension.Width != domain.MinElementSize || e.Dimension.Height != domain.MinElementSize {
		t.Fatalf("expected floored dimension, got %+v", e.Dimension)
	}
}

func TestMoveClampsToCanvas(t *testing.T) {
	s := newTestStore()
	e := addShape(s, 0, 0, 50, 50)
	s.Move(e.ID, 9999, -50)
	got, _ := s.Get(e.ID)
	if got.Position.X != 750 || got.Position.Y != 0 {
		t.Fatalf("expected clamped (750,0), got %+v", got.Position)
	}
}

func TestMoveLockedIsNoop(t *testing.T) {
	s := newTestStore()
	e := addShape(s, 100, 100, 50, 50)
	s.Update(e.ID, domain.ElementPatch{Locked: domain.Bool(true)})
	s.Move(e.ID, 300, 300)
	got, _ := s.Get(e.ID)
	if got.Position.X != 100 || got.Position.Y != 100 {
		t.Fatalf("locked element moved: %+v", got.Position)
	}
}

func TestResizeAspectLocked(t *testing.T) {
	s := NewStore(2000, 2000)
	e := addShape(s, 0, 0, 100, 100)
	s.ToggleAspectLock(e.ID)
	// width delta (50) >= height delta (20): width drives, height follows
	s.Resize(e.ID, 150, 120)
	got, _ := s.Get(e.ID)
	if got.Dimension.Width != 150 || got.Dimension.Height != 150 {
		t.Fatalf("expected 150x150, got %+v", got.Dimension)
	}
	// height delta larger: height drives
	s.Resize(e.ID, 160, 300)
	got, _ = s.Get(e.ID)
	if got.Dimension.Width != 300 || got.Dimension.Height != 300 {
		t.Fatalf("expected 300x300, got %+v", got.Dimension)
	}
}

func TestResizeFloorsAtMinimum(t *testing.T) {
	s := newTestStore()
	e := addShape(s, 0, 0, 100, 100)
	s.Resize(e.ID, 2, 4)
	got, _ := s.Get(e.ID)
	if got.Dimension.Width != domain.MinElementSize || got.Dimension.Height != domain.MinElementSize {
		t.Fatalf("expected min floor, got %+v", got.Dimension)
	}
}

func TestSendToBackBoundaryRenumbering(t *testing.T) {
	s := newTestStore()
	a := addShape(s, 0, 0, 20, 20) // z=0
	b := addShape(s, 0, 0, 20, 20) // z=1
	c := addShape(s, 0, 0, 20, 20) // z=2
	s.SendToBack(c.ID)             // min is 0: everyone shifts up, c takes 0
	ga, _ := s.Get(a.ID)
	gb, _ := s.Get(b.ID)
	gc, _ := s.Get(c.ID)
	if gc.ZIndex != 0 || ga.ZIndex != 1 || gb.ZIndex != 2 {
		t.Fatalf("boundary renumbering wrong: a=%d b=%d c=%d", ga.ZIndex, gb.ZIndex, gc.ZIndex)
	}
	s.SendToBack(b.ID) // min (excluding b) is 0 again
	gb, _ = s.Get(b.ID)
	if gb.ZIndex != 0 {
		t.Fatalf("expected b at 0, got %d", gb.ZIndex)
	}
	s.BringToFront(gc.ID)
	gc, _ = s.Get(c.ID)
	max := -1
	for _, e := range s.Elements() {
		if e.ID != gc.ID && e.ZIndex > max {
			max = e.ZIndex
		}
	}
	if gc.ZIndex <= max {
		t.Fatalf("bringToFront must exceed every other z: %d vs %d", gc.ZIndex, max)
	}
}

func TestDuplicateOffsetsAndRaises(t *testing.T) {
	s := NewStore(800, 600)
	e := addShape(s, 100, 100, 50, 50)
	c, ok := s.Duplicate(e.ID)
	if !ok {
		t.Fatalf("duplicate failed")
	}
	if c.ID == e.ID {
		t.Fatalf("duplicate kept the id")
	}
	if c.Position.X != 120 || c.Position.Y != 120 {
		t.Fatalf("expected +%v offset, got %+v", DuplicateOffset, c.Position)
	}
	if c.ZIndex <= e.ZIndex {
		t.Fatalf("duplicate must land on top")
	}
}

func TestRemovePageShiftsLaterPages(t *testing.T) {
	s := NewStore(800, 600)
	p0 := addShape(s, 0, 0, 20, 20)
	s.AddPage()
	s.AddPage()
	s.SetActivePage(1)
	p1 := addShape(s, 0, 0, 20, 20)
	s.SetActivePage(2)
	p2 := addShape(s, 0, 0, 20, 20)

	s.RemovePage(1)
	if s.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", s.PageCount())
	}
	if _, ok := s.Get(p1.ID); ok {
		t.Fatalf("page 1 element should be gone")
	}
	g0, _ := s.Get(p0.ID)
	g2, _ := s.Get(p2.ID)
	if g0.PageIndex != 0 || g2.PageIndex != 1 {
		t.Fatalf("page indexes wrong: %d, %d", g0.PageIndex, g2.PageIndex)
	}
}

func TestRemovePageFollowsActivePage(t *testing.T) {
	s := NewStore(800, 600)
	s.AddPage()
	s.AddPage()
	s.SetActivePage(2)
	s.RemovePage(0)
	// the active page keeps naming the same logical page after the shift
	if s.ActivePage() != 1 {
		t.Fatalf("active page must shift with its content: got %d, want 1", s.ActivePage())
	}
	s.SetActivePage(1)
	s.RemovePage(1)
	if s.ActivePage() != 0 {
		t.Fatalf("active page after removing the last page: got %d, want 0", s.ActivePage())
	}
}

func TestSetPageCountClampsActivePage(t *testing.T) {
	s := NewStore(800, 600)
	s.AddPage()
	s.AddPage()
	s.SetActivePage(2)
	s.SetPageCount(2)
	if s.PageCount() != 2 || s.ActivePage() != 1 {
		t.Fatalf("got %d pages, active %d; want 2 pages, active 1", s.PageCount(), s.ActivePage())
	}
	s.SetPageCount(0)
	if s.PageCount() != 1 || s.ActivePage() != 0 {
		t.Fatalf("page count floor is one page: got %d, active %d", s.PageCount(), s.ActivePage())
	}
}

func TestRemoveOnlyPageIsNoop(t *testing.T) {
	s := NewStore(800, 600)
	addShape(s, 0, 0, 20, 20)
	s.RemovePage(0)
	if s.PageCount() != 1 || len(s.Elements()) != 1 {
		t.Fatalf("removing the only page must be a no-op")
	}
}

func TestUpdateReclamps(t *testing.T) {
	s := newTestStore()
	e := addShape(s, 700, 500, 50, 50)
	s.Update(e.ID, domain.ElementPatch{Position: domain.Pos(795, 595)})
	got, _ := s.Get(e.ID)
	if got.Position.X != 750 || got.Position.Y != 550 {
		t.Fatalf("patched position not re-clamped: %+v", got.Position)
	}
}
