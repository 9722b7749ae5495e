/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package history implements linear, non-branching undo/redo over deep
// snapshots of the element collection. Each document (and each catalog
// section activation) owns its own Manager instance, so independent sections
// can never share a timeline.
package history

import "gocatalogstudio/internal/domain"

// DefaultCapacity bounds the number of retained snapshots. The oldest entry
// is evicted once the cap is reached.
const DefaultCapacity = 50

// Manager owns a bounded snapshot list and a cursor. entries[cursor] is
// always the current committed state; entries after the cursor form the redo
// tail. The core is single-writer, so no locking is needed here.
type Manager struct {
	capacity int
	entries  [][]domain.CanvasElement
	cursor   int
}

// New creates a Manager seeded with a deep copy of the initial collection.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int, initial []domain.CanvasElement) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	m := &Manager{capacity: capacity}
	m.entries = append(m.entries, domain.CloneElements(initial))
	return m
}

// Commit records a new committed state. Any redo tail left by prior undos is
// truncated first; the snapshot is a deep copy, never an alias. Continuous
// gestures must not call Commit per frame — only on gesture end.
func (m *Manager) Commit(els []domain.CanvasElement) {
	m.entries = append(m.entries[:m.cursor+1], domain.CloneElements(els))
	m.cursor++
	if len(m.entries) > m.capacity {
		drop := len(m.entries) - m.capacity
		m.entries = append([][]domain.CanvasElement{}, m.entries[drop:]...)
		m.cursor -= drop
	}
}

// Undo steps the cursor back and returns a fresh deep copy of that state.
// At the oldest entry it is a no-op and reports false.
func (m *Manager) Undo() ([]domain.CanvasElement, bool) {
	if m.cursor == 0 {
		return nil, false
	}
	m.cursor--
	return domain.CloneElements(m.entries[m.cursor]), true
}

// Redo steps the cursor forward and returns a fresh deep copy of that state.
// Past the newest entry it is a no-op and reports false.
func (m *Manager) Redo() ([]domain.CanvasElement, bool) {
	if m.cursor >= len(m.entries)-1 {
		return nil, false
	}
	m.cursor++
	return domain.CloneElements(m.entries[m.cursor]), true
}

// Reset discards the whole timeline and re-seeds it with the given state.
// Section switches use this: undo never crosses a section boundary.
func (m *Manager) Reset(els []domain.CanvasElement) {
	m.entries = m.entries[:0]
	m.entries = append(m.entries, domain.CloneElements(els))
	m.cursor = 0
}

// CanUndo reports whether an undo step is available.
func (m *Manager) CanUndo() bool { return m.cursor > 0 }

// CanRedo reports whether a redo step is available.
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries)-1 }

// Depth returns the number of retained snapshots.
func (m *Manager) Depth() int { return len(m.entries) }
