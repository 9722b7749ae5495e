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
	"sort"

	"gocatalogstudio/internal/domain"
)

// Move places the element at (x, y), snapping to the grid when enabled and
// clamping into the canvas. Locked and unknown elements are no-ops.
func (s *Store) Move(id string, x, y float64) {
	i := s.index(id)
	if i < 0 || s.elements[i].Locked {
		return
	}
	e := &s.elements[i]
	e.Position = s.placePosition(domain.Position{X: x, Y: y}, e.Dimension)
}

// Resize sets the element size, enforcing the minimum floor per axis. When
// the aspect lock is on, the axis with the larger magnitude delta drives the
// new size and the other axis is derived from the stored ratio (then floored
// again).
func (s *Store) Resize(id string, width, height float64) {
	i := s.index(id)
	if i < 0 || s.elements[i].Locked {
		return
	}
	e := &s.elements[i]
	if e.AspectRatioLocked {
		ratio := e.AspectRatio
		if ratio <= 0 && e.Dimension.Height > 0 {
			ratio = e.Dimension.Width / e.Dimension.Height
		}
		if ratio > 0 {
			dw := math.Abs(width - e.Dimension.Width)
			dh := math.Abs(height - e.Dimension.Height)
			if dw >= dh {
				height = width / ratio
			} else {
				width = height * ratio
			}
		}
	}
	e.Dimension = s.sanitizeDimension(domain.Dimension{Width: width, Height: height})
	e.Position = clampFinite(e.Position, e.Dimension, s.canvas)
}

// Edge alignment: the named edge of every selected element moves to the
// extreme value across the selection. Fewer than two ids is a no-op.

func (s *Store) AlignLeft(ids []string) {
	s.align(ids, func(els []*domain.CanvasElement) {
		edge := math.Inf(1)
		for _, e := range els {
			edge = math.Min(edge, e.Position.X)
		}
		for _, e := range els {
			e.Position.X = edge
		}
	})
}

func (s *Store) AlignRight(ids []string) {
	s.align(ids, func(els []*domain.CanvasElement) {
		edge := math.Inf(-1)
		for _, e := range els {
			edge = math.Max(edge, e.Position.X+e.Dimension.Width)
		}
		for _, e := range els {
			e.Position.X = edge - e.Dimension.Width
		}
	})
}

func (s *Store) AlignTop(ids []string) {
	s.align(ids, func(els []*domain.CanvasElement) {
		edge := math.Inf(1)
		for _, e := range els {
			edge = math.Min(edge, e.Position.Y)
		}
		for _, e := range els {
			e.Position.Y = edge
		}
	})
}

func (s *Store) AlignBottom(ids []string) {
	s.align(ids, func(els []*domain.CanvasElement) {
		edge := math.Inf(-1)
		for _, e := range els {
			edge = math.Max(edge, e.Position.Y+e.Dimension.Height)
		}
		for _, e := range els {
			e.Position.Y = edge - e.Dimension.Height
		}
	})
}

// AlignCenter moves each element's horizontal midpoint to the selection's
// average midpoint.
func (s *Store) AlignCenter(ids []string) {
	s.align(ids, func(els []*domain.CanvasElement) {
		var sum float64
		for _, e := range els {
			sum += e.Position.X + e.Dimension.Width/2
		}
		center := sum / float64(len(els))
		for _, e := range els {
			e.Position.X = center - e.Dimension.Width/2
		}
	})
}

// AlignMiddle moves each element's vertical midpoint to the selection's
// average midpoint.
func (s *Store) AlignMiddle(ids []string) {
	s.align(ids, func(els []*domain.CanvasElement) {
		var sum float64
		for _, e := range els {
			sum += e.Position.Y + e.Dimension.Height/2
		}
		middle := sum / float64(len(els))
		for _, e := range els {
			e.Position.Y = middle - e.Dimension.Height/2
		}
	})
}

// DistributeHorizontal spaces three or more elements with uniform gaps
// between their outer edges: sort by x, keep the first and last in place and
// spread the rest with gap = (span - total widths) / (count - 1).
func (s *Store) DistributeHorizontal(ids []string) {
	els := s.resolve(ids)
	if len(els) < 3 {
		return
	}
	sort.SliceStable(els, func(a, b int) bool { return els[a].Position.X < els[b].Position.X })
	first, last := els[0], els[len(els)-1]
	span := (last.Position.X + last.Dimension.Width) - first.Position.X
	var occupied float64
	for _, e := range els {
		occupied += e.Dimension.Width
	}
	gap := (span - occupied) / float64(len(els)-1)
	x := first.Position.X
	for _, e := range els {
		e.Position.X = x
		x += e.Dimension.Width + gap
	}
}

// DistributeVertical is the y-axis counterpart. The occupied size sums
// element heights, not widths.
func (s *Store) DistributeVertical(ids []string) {
	els := s.resolve(ids)
	if len(els) < 3 {
		return
	}
	sort.SliceStable(els, func(a, b int) bool { return els[a].Position.Y < els[b].Position.Y })
	first, last := els[0], els[len(els)-1]
	span := (last.Position.Y + last.Dimension.Height) - first.Position.Y
	var occupied float64
	for _, e := range els {
		occupied += e.Dimension.Height
	}
	gap := (span - occupied) / float64(len(els)-1)
	y := first.Position.Y
	for _, e := range els {
		e.Position.Y = y
		y += e.Dimension.Height + gap
	}
}

func (s *Store) align(ids []string, fn func([]*domain.CanvasElement)) {
	els := s.resolve(ids)
	if len(els) < 2 {
		return
	}
	fn(els)
}

// resolve maps ids to live element pointers, dropping unknowns.
func (s *Store) resolve(ids []string) []*domain.CanvasElement {
	out := make([]*domain.CanvasElement, 0, len(ids))
	for _, id := range ids {
		if i := s.index(id); i >= 0 {
			out = append(out, &s.elements[i])
		}
	}
	return out
}
