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
	"log/slog"

	"gocatalogstudio/internal/domain"
	"gocatalogstudio/internal/history"
	applog "gocatalogstudio/internal/log"
)

// SaveStatus is the persistence state surfaced to the UI. The core only ever
// moves it to StatusUnsaved; the external autosave collaborator drives the
// other transitions.
type SaveStatus string

const (
	StatusSaved   SaveStatus = "saved"
	StatusSaving  SaveStatus = "saving"
	StatusUnsaved SaveStatus = "unsaved"
	StatusError   SaveStatus = "error"
)

// Editor binds a Store, a Selection and a History manager into the commit
// cycle: every committed mutation pushes one history snapshot and raises the
// dirty flag; live gesture updates push nothing until CommitGesture.
type Editor struct {
	store     *Store
	sel       Selection
	hist      *history.Manager
	gesturing bool
	dirty     bool
	status    SaveStatus
	log       *slog.Logger
}

// NewEditor creates an editor over an empty canvas of the given size.
// historyDepth <= 0 uses the default capacity.
func NewEditor(width, height float64, historyDepth int) *Editor {
	st := NewStore(width, height)
	return &Editor{
		store:  st,
		hist:   history.New(historyDepth, st.Elements()),
		status: StatusSaved,
		log:    applog.WithComponent("canvas"),
	}
}

// Store exposes the element store for reads and gesture-phase updates.
func (ed *Editor) Store() *Store { return ed.store }

// Selection exposes the live selection set.
func (ed *Editor) Selection() *Selection { return &ed.sel }

// commit finalizes a structural mutation: snapshot, dirty, unsaved.
func (ed *Editor) commit() {
	ed.hist.Commit(ed.store.Elements())
	ed.dirty = true
	ed.status = StatusUnsaved
}

// AddElement inserts the element and commits.
func (ed *Editor) AddElement(e domain.CanvasElement) domain.CanvasElement {
	added := ed.store.Add(e)
	ed.commit()
	return added
}

// UpdateElement merges the patch and commits. Unknown ids are a no-op.
func (ed *Editor) UpdateElement(id string, p domain.ElementPatch) {
	if ed.store.Update(id, p) {
		ed.commit()
	}
}

// DeleteElements removes the given elements and commits. If none of the ids
// exist nothing happens.
func (ed *Editor) DeleteElements(ids ...string) {
	any := false
	for _, id := range ids {
		if ed.store.index(id) >= 0 {
			any = true
			break
		}
	}
	if !any {
		return
	}
	ed.store.Delete(ids...)
	ed.sel.Prune(ed.store)
	ed.commit()
}

// DeleteSelected removes the current selection.
func (ed *Editor) DeleteSelected() {
	if ed.sel.Len() == 0 {
		return
	}
	ed.DeleteElements(append([]string(nil), ed.sel.IDs()...)...)
}

// DuplicateElement copies the element and selects the copy.
func (ed *Editor) DuplicateElement(id string) (domain.CanvasElement, bool) {
	c, ok := ed.store.Duplicate(id)
	if !ok {
		return domain.CanvasElement{}, false
	}
	ed.sel.Set(c.ID)
	ed.commit()
	return c, true
}

// mutable reports whether id names an element that moves and resizes may
// touch. Locked elements stay put and produce no history entry.
func (ed *Editor) mutable(id string) bool {
	e, ok := ed.store.Get(id)
	return ok && !e.Locked
}

// MoveElement performs a single committed move (snap, clamp, snapshot).
func (ed *Editor) MoveElement(id string, x, y float64) {
	if !ed.mutable(id) {
		return
	}
	ed.store.Move(id, x, y)
	ed.commit()
}

// ResizeElement performs a single committed resize.
func (ed *Editor) ResizeElement(id string, w, h float64) {
	if !ed.mutable(id) {
		return
	}
	ed.store.Resize(id, w, h)
	ed.commit()
}

// BringToFront raises the element and commits.
func (ed *Editor) BringToFront(id string) {
	if ed.store.index(id) < 0 {
		return
	}
	ed.store.BringToFront(id)
	ed.commit()
}

// SendToBack lowers the element and commits.
func (ed *Editor) SendToBack(id string) {
	if ed.store.index(id) < 0 {
		return
	}
	ed.store.SendToBack(id)
	ed.commit()
}

// ToggleAspectLock flips the lock and commits.
func (ed *Editor) ToggleAspectLock(id string) {
	if ed.store.index(id) < 0 {
		return
	}
	ed.store.ToggleAspectLock(id)
	ed.commit()
}

// RemovePage drops page k and commits. Removing the only page is a no-op.
func (ed *Editor) RemovePage(k int) {
	if k < 0 || k >= ed.store.PageCount() || ed.store.PageCount() == 1 {
		return
	}
	ed.store.RemovePage(k)
	ed.sel.Prune(ed.store)
	ed.commit()
}

// Alignment over the selection; fewer than two selected is a no-op.

func (ed *Editor) AlignLeft()   { ed.alignSel(ed.store.AlignLeft) }
func (ed *Editor) AlignRight()  { ed.alignSel(ed.store.AlignRight) }
func (ed *Editor) AlignTop()    { ed.alignSel(ed.store.AlignTop) }
func (ed *Editor) AlignBottom() { ed.alignSel(ed.store.AlignBottom) }
func (ed *Editor) AlignCenter() { ed.alignSel(ed.store.AlignCenter) }
func (ed *Editor) AlignMiddle() { ed.alignSel(ed.store.AlignMiddle) }

func (ed *Editor) alignSel(fn func([]string)) {
	if ed.sel.Len() < 2 {
		return
	}
	fn(ed.sel.IDs())
	ed.commit()
}

// Distribution over the selection; fewer than three selected is a no-op.

func (ed *Editor) DistributeHorizontal() {
	if ed.sel.Len() < 3 {
		return
	}
	ed.store.DistributeHorizontal(ed.sel.IDs())
	ed.commit()
}

func (ed *Editor) DistributeVertical() {
	if ed.sel.Len() < 3 {
		return
	}
	ed.store.DistributeVertical(ed.sel.IDs())
	ed.commit()
}

// Live gestures. DragTo/StretchTo update positions synchronously without
// touching history; CommitGesture pushes the single snapshot that makes the
// whole gesture one undo step. A cancelled gesture simply never commits.

func (ed *Editor) DragTo(id string, x, y float64) {
	if !ed.mutable(id) {
		return
	}
	ed.store.Move(id, x, y)
	ed.gesturing = true
}

func (ed *Editor) StretchTo(id string, w, h float64) {
	if !ed.mutable(id) {
		return
	}
	ed.store.Resize(id, w, h)
	ed.gesturing = true
}

// CommitGesture finalizes the in-flight gesture. A gesture that never touched
// an element commits nothing.
func (ed *Editor) CommitGesture() {
	if !ed.gesturing {
		return
	}
	ed.gesturing = false
	ed.commit()
}

// Undo restores the previous committed snapshot. Past the oldest entry it is
// a no-op.
func (ed *Editor) Undo() bool {
	els, ok := ed.hist.Undo()
	if !ok {
		return false
	}
	ed.restore(els)
	return true
}

// Redo re-applies an undone snapshot. Past the newest entry it is a no-op.
func (ed *Editor) Redo() bool {
	els, ok := ed.hist.Redo()
	if !ok {
		return false
	}
	ed.restore(els)
	return true
}

func (ed *Editor) restore(els []domain.CanvasElement) {
	ed.store.Replace(els)
	ed.sel.Prune(ed.store)
	ed.dirty = true
	ed.status = StatusUnsaved
}

// CanUndo reports whether an undo step exists.
func (ed *Editor) CanUndo() bool { return ed.hist.CanUndo() }

// CanRedo reports whether a redo step exists.
func (ed *Editor) CanRedo() bool { return ed.hist.CanRedo() }

// CurrentDesign serializes the live collection and background as a deep copy,
// for section slots and persistence.
func (ed *Editor) CurrentDesign() domain.Design {
	return domain.Design{
		Elements:   domain.CloneElements(ed.store.Elements()),
		Background: ed.store.Background(),
	}
}

// LoadDesign installs a design as the live collection. The selection is
// cleared and history is reset — loading is a hard history boundary.
func (ed *Editor) LoadDesign(d domain.Design) {
	ed.store.Replace(domain.CloneElements(d.Elements))
	ed.store.SetBackground(d.Background)
	ed.sel.Clear()
	ed.gesturing = false
	ed.hist.Reset(ed.store.Elements())
	ed.log.Debug("design loaded", slog.Int("elements", len(d.Elements)))
}

// Dirty reports whether committed changes await persistence.
func (ed *Editor) Dirty() bool { return ed.dirty }

// ClearDirty is called by the save collaborator once a write has been
// scheduled for the current state.
func (ed *Editor) ClearDirty() { ed.dirty = false }

// Status returns the save status for display.
func (ed *Editor) Status() SaveStatus { return ed.status }

// SetStatus is driven by the external autosave collaborator.
func (ed *Editor) SetStatus(st SaveStatus) { ed.status = st }
