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

// Selection is an ordered set of selected element ids. It gates the
// multi-element transforms: align needs at least two members, distribute at
// least three.
type Selection struct {
	ids []string
}

// Add appends an id unless already selected.
func (s *Selection) Add(id string) {
	if s.Has(id) {
		return
	}
	s.ids = append(s.ids, id)
}

// Set replaces the selection with exactly the given ids, in order.
func (s *Selection) Set(ids ...string) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		s.Add(id)
	}
}

// Toggle flips membership of an id.
func (s *Selection) Toggle(id string) {
	if s.Has(id) {
		s.Remove(id)
		return
	}
	s.Add(id)
}

// Remove drops an id; unknown ids are a no-op.
func (s *Selection) Remove(id string) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() { s.ids = s.ids[:0] }

// Has reports membership.
func (s *Selection) Has(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns the selected ids in selection order. The caller must not
// mutate the returned slice.
func (s *Selection) IDs() []string { return s.ids }

// Len returns the selection size.
func (s *Selection) Len() int { return len(s.ids) }

// Prune drops ids no longer present in the store. Called after restores and
// deletions so transforms never act on ghosts.
func (s *Selection) Prune(st *Store) {
	kept := s.ids[:0]
	for _, id := range s.ids {
		if st.index(id) >= 0 {
			kept = append(kept, id)
		}
	}
	s.ids = kept
}
