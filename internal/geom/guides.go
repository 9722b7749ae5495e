/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package geom

// Live alignment guide detection during drag. The detector is UI-agnostic and
// deterministic; it is called on every intermediate drag position and is
// purely advisory. It never moves or snaps anything — grid snapping is a
// separate, independent concern.

import "math"

// GuideTolerance is the match distance in screen pixels. The document-unit
// tolerance passed to the comparison is GuideTolerance divided by the zoom
// factor, so the felt tolerance on screen stays constant.
const GuideTolerance = 5.0

// GuideKind labels which features aligned.
type GuideKind string

const (
	GuideEdge   GuideKind = "edge"
	GuideCenter GuideKind = "center"
)

// Guide is a transient alignment indicator: the line coordinate on its axis
// plus the ids of the sibling elements co-aligned at that coordinate.
// Vertical guides carry an X position, horizontal guides a Y position.
type Guide struct {
	Kind     GuideKind
	Position float64
	Elements []string
}

// GuideSet holds at most one active guide per axis.
type GuideSet struct {
	Vertical   *Guide
	Horizontal *Guide
}

// Candidate is a sibling rect considered during detection.
type Candidate struct {
	ID   string
	Rect Rect
}

// axisFeature is one comparable coordinate of a rect on one axis.
type axisFeature struct {
	pos  float64
	kind GuideKind
}

func xFeatures(r Rect) [3]axisFeature {
	return [3]axisFeature{
		{r.X, GuideEdge},
		{r.CenterX(), GuideCenter},
		{r.X + r.W, GuideEdge},
	}
}

func yFeatures(r Rect) [3]axisFeature {
	return [3]axisFeature{
		{r.Y, GuideEdge},
		{r.CenterY(), GuideCenter},
		{r.Y + r.H, GuideEdge},
	}
}

// DetectGuides compares the moving rect's edges and centers against every
// sibling's edges and centers within the zoom-scaled tolerance. The nearest
// match per axis becomes that axis's active guide. A zoom of 1 means one
// document unit per screen pixel; zoom must be positive, anything else is
// treated as 1.
func DetectGuides(moving Rect, siblings []Candidate, zoom float64) GuideSet {
	if zoom <= 0 {
		zoom = 1
	}
	tol := GuideTolerance / zoom

	var set GuideSet
	set.Vertical = bestGuide(xFeatures(moving), siblings, tol, xFeatures)
	set.Horizontal = bestGuide(yFeatures(moving), siblings, tol, yFeatures)
	return set
}

func bestGuide(moving [3]axisFeature, siblings []Candidate, tol float64, features func(Rect) [3]axisFeature) *Guide {
	bestDist := math.Inf(1)
	var best *Guide
	for _, s := range siblings {
		for _, sf := range features(s.Rect) {
			for _, mf := range moving {
				d := math.Abs(mf.pos - sf.pos)
				if d > tol || d >= bestDist {
					continue
				}
				bestDist = d
				best = &Guide{Kind: sf.kind, Position: FloatRound(sf.pos, 3)}
			}
		}
	}
	if best == nil {
		return nil
	}
	// Collect every sibling with a feature on the winning line.
	for _, s := range siblings {
		for _, sf := range features(s.Rect) {
			if math.Abs(FloatRound(sf.pos, 3)-best.Position) <= 1e-9 {
				best.Elements = append(best.Elements, s.ID)
				break
			}
		}
	}
	return best
}
