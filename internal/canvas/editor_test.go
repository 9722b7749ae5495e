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
	"testing"

	"gocatalogstudio/internal/domain"
)

func newTestEditor() *Editor {
	return NewEditor(800, 600, 0)
}

func TestEditorUndoRedoMutations(t *testing.T) {
	ed := newTestEditor()
	e := ed.AddElement(domain.CanvasElement{
		Type:      domain.ElementText,
		Position:  domain.Position{X: 100, Y: 100},
		Dimension: domain.Dimension{Width: 100, Height: 40},
	})
	ed.MoveElement(e.ID, 300, 300)
	got, _ := ed.Store().Get(e.ID)
	if got.Position.X != 300 {
		t.Fatalf("move not applied: %+v", got.Position)
	}
	if !ed.Undo() {
		t.Fatalf("undo failed")
	}
	got, _ = ed.Store().Get(e.ID)
	if got.Position.X != 100 {
		t.Fatalf("undo did not restore position: %+v", got.Position)
	}
	if !ed.Redo() {
		t.Fatalf("redo failed")
	}
	got, _ = ed.Store().Get(e.ID)
	if got.Position.X != 300 {
		t.Fatalf("redo did not reapply: %+v", got.Position)
	}
	if !ed.Undo() || !ed.Undo() {
		t.Fatalf("expected two undo steps back to empty")
	}
	if len(ed.Store().Elements()) != 0 {
		t.Fatalf("expected empty canvas at timeline start")
	}
}

func TestGestureCommitsOnce(t *testing.T) {
	ed := newTestEditor()
	e := ed.AddElement(domain.CanvasElement{
		Type:      domain.ElementShape,
		Dimension: domain.Dimension{Width: 50, Height: 50},
	})
	// a drag produces many intermediate positions but one history entry
	for x := 10.0; x <= 200; x += 10 {
		ed.DragTo(e.ID, x, 0)
	}
	ed.CommitGesture()
	if !ed.Undo() {
		t.Fatalf("undo failed")
	}
	got, _ := ed.Store().Get(e.ID)
	if got.Position.X != 0 {
		t.Fatalf("one undo must jump back across the whole gesture, got x=%v", got.Position.X)
	}
}

func TestEmptyGestureCommitsNothing(t *testing.T) {
	ed := newTestEditor()
	e := ed.AddElement(domain.CanvasElement{Type: domain.ElementShape, Dimension: domain.Dimension{Width: 20, Height: 20}})
	ed.UpdateElement(e.ID, domain.ElementPatch{Locked: domain.Bool(true)})
	// dragging a locked element and committing must not burn an undo step
	ed.DragTo(e.ID, 300, 300)
	ed.StretchTo(e.ID, 100, 100)
	ed.CommitGesture()
	ed.CommitGesture()
	if !ed.Undo() {
		t.Fatalf("undo failed")
	}
	got, _ := ed.Store().Get(e.ID)
	if got.Locked {
		t.Fatalf("expected the lock patch to be the newest entry; empty gestures must not commit")
	}
}

func TestDeleteSelectedPrunesSelection(t *testing.T) {
	ed := newTestEditor()
	a := ed.AddElement(domain.CanvasElement{Type: domain.ElementShape, Dimension: domain.Dimension{Width: 20, Height: 20}})
	b := ed.AddElement(domain.CanvasElement{Type: domain.ElementShape, Dimension: domain.Dimension{Width: 20, Height: 20}})
	ed.Selection().Set(a.ID, b.ID)
	ed.DeleteSelected()
	if len(ed.Store().Elements()) != 0 {
		t.Fatalf("expected empty store")
	}
	if ed.Selection().Len() != 0 {
		t.Fatalf("selection must not reference deleted elements")
	}
	if !ed.Undo() {
		t.Fatalf("undo failed")
	}
	if len(ed.Store().Elements()) != 2 {
		t.Fatalf("undo must restore both elements")
	}
	// the restored elements are not re-selected; stale ids stay pruned
	if ed.Selection().Len() != 0 {
		t.Fatalf("selection should stay empty after undo")
	}
}

func TestDeleteUnknownIdsNoCommit(t *testing.T) {
	ed := newTestEditor()
	ed.AddElement(domain.CanvasElement{Type: domain.ElementShape, Dimension: domain.Dimension{Width: 20, Height: 20}})
	before := ed.CanUndo()
	ed.DeleteElements("no-such-id")
	if ed.CanUndo() != before || len(ed.Store().Elements()) != 1 {
		t.Fatalf("deleting unknown ids must not commit")
	}
}

func TestLockedElementProducesNoHistory(t *testing.T) {
	ed := newTestEditor()
	e := ed.AddElement(domain.CanvasElement{Type: domain.ElementShape, Dimension: domain.Dimension{Width: 20, Height: 20}})
	ed.UpdateElement(e.ID, domain.ElementPatch{Locked: domain.Bool(true)})
	ed.MoveElement(e.ID, 400, 400)
	ed.ResizeElement(e.ID, 100, 100)
	// two commits so far: add + lock patch
	if !ed.Undo() {
		t.Fatalf("undo failed")
	}
	got, _ := ed.Store().Get(e.ID)
	if got.Locked {
		t.Fatalf("expected the lock patch to be the newest entry; locked moves must not commit")
	}
}

func TestLoadDesignResetsHistoryAndSelection(t *testing.T) {
	ed := newTestEditor()
	e := ed.AddElement(domain.CanvasElement{Type: domain.ElementShape, Dimension: domain.Dimension{Width: 20, Height: 20}})
	ed.Selection().Set(e.ID)
	ed.LoadDesign(domain.Design{
		Elements:   []domain.CanvasElement{{ID: "n1", Type: domain.ElementText, Dimension: domain.Dimension{Width: 50, Height: 20}, Visible: true}},
		Background: "#eeeeee",
	})
	if ed.CanUndo() || ed.CanRedo() {
		t.Fatalf("design load is a hard history boundary")
	}
	if ed.Selection().Len() != 0 {
		t.Fatalf("selection must clear on design load")
	}
	if ed.Store().Background() != "#eeeeee" {
		t.Fatalf("background not loaded")
	}
}

func TestCurrentDesignIsDetached(t *testing.T) {
	ed := newTestEditor()
	ed.AddElement(domain.CanvasElement{Type: domain.ElementText, Content: "hello", Dimension: domain.Dimension{Width: 50, Height: 20}})
	d := ed.CurrentDesign()
	d.Elements[0].Content = "mutated"
	if ed.Store().Elements()[0].Content != "hello" {
		t.Fatalf("CurrentDesign aliased live storage")
	}
}

func TestDirtyAndStatusLifecycle(t *testing.T) {
	ed := newTestEditor()
	if ed.Dirty() || ed.Status() != StatusSaved {
		t.Fatalf("fresh editor must be clean and saved")
	}
	ed.AddElement(domain.CanvasElement{Type: domain.ElementShape, Dimension: domain.Dimension{Width: 20, Height: 20}})
	if !ed.Dirty() || ed.Status() != StatusUnsaved {
		t.Fatalf("mutation must mark dirty/unsaved, got %v/%v", ed.Dirty(), ed.Status())
	}
	ed.ClearDirty()
	ed.SetStatus(StatusSaved)
	if ed.Dirty() || ed.Status() != StatusSaved {
		t.Fatalf("clear did not take")
	}
	if !ed.Undo() {
		t.Fatalf("undo failed")
	}
	if !ed.Dirty() || ed.Status() != StatusUnsaved {
		t.Fatalf("undo is a content change and must re-mark unsaved")
	}
}
