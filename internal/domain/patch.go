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

// Partial element patches. Nil fields are left untouched; style sub-objects
// merge field-by-field rather than replacing the whole payload.

// TextStylePatch updates individual text style fields.
type TextStylePatch struct {
	FontFamily    *string  `json:"fontFamily,omitempty"`
	FontSize      *float64 `json:"fontSize,omitempty"`
	FontWeight    *string  `json:"fontWeight,omitempty"`
	Color         *string  `json:"color,omitempty"`
	Alignment     *string  `json:"alignment,omitempty"`
	LineHeight    *float64 `json:"lineHeight,omitempty"`
	LetterSpacing *float64 `json:"letterSpacing,omitempty"`
}

// ShapeStylePatch updates individual shape style fields.
type ShapeStylePatch struct {
	Fill         *string  `json:"fill,omitempty"`
	Stroke       *string  `json:"stroke,omitempty"`
	StrokeWidth  *float64 `json:"strokeWidth,omitempty"`
	CornerRadius *float64 `json:"cornerRadius,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`
}

// TOCSettingsPatch updates individual tocList settings.
type TOCSettingsPatch struct {
	Title       *string         `json:"title,omitempty"`
	ShowTitle   *bool           `json:"showTitle,omitempty"`
	GroupBy     *string         `json:"groupBy,omitempty"`
	Columns     *int            `json:"columns,omitempty"`
	Leader      *string         `json:"leader,omitempty"`
	TitleStyle  *TextStylePatch `json:"titleStyle,omitempty"`
	HeaderStyle *TextStylePatch `json:"headerStyle,omitempty"`
	ItemStyle   *TextStylePatch `json:"itemStyle,omitempty"`
}

// ElementPatch is a partial update for a CanvasElement. The ID and Type of an
// element are immutable and therefore have no patch fields.
type ElementPatch struct {
	Position          *Position         `json:"position,omitempty"`
	Dimension         *Dimension        `json:"dimension,omitempty"`
	Rotation          *float64          `json:"rotation,omitempty"`
	ZIndex            *int              `json:"zIndex,omitempty"`
	PageIndex         *int              `json:"pageIndex,omitempty"`
	Visible           *bool             `json:"visible,omitempty"`
	Locked            *bool             `json:"locked,omitempty"`
	Content           *string           `json:"content,omitempty"`
	Text              *TextStylePatch   `json:"textStyle,omitempty"`
	Shape             *ShapeStylePatch  `json:"shapeStyle,omitempty"`
	TOC               *TOCSettingsPatch `json:"tocSettings,omitempty"`
	DataBinding       *string           `json:"dataBinding,omitempty"`
	AspectRatio       *float64          `json:"aspectRatio,omitempty"`
	AspectRatioLocked *bool             `json:"aspectRatioLocked,omitempty"`
}

// Apply merges the patch into the element. Fields not named in the patch are
// preserved; absent style payloads are created on first patch.
func (e *CanvasElement) Apply(p ElementPatch) {
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Dimension != nil {
		e.Dimension = *p.Dimension
	}
	if p.Rotation != nil {
		e.Rotation = *p.Rotation
	}
	if p.ZIndex != nil {
		e.ZIndex = *p.ZIndex
	}
	if p.PageIndex != nil {
		e.PageIndex = *p.PageIndex
	}
	if p.Visible != nil {
		e.Visible = *p.Visible
	}
	if p.Locked != nil {
		e.Locked = *p.Locked
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Text != nil {
		if e.Text == nil {
			e.Text = &TextStyle{}
		}
		applyTextPatch(e.Text, p.Text)
	}
	if p.Shape != nil {
		if e.Shape == nil {
			e.Shape = &ShapeStyle{}
		}
		applyShapePatch(e.Shape, p.Shape)
	}
	if p.TOC != nil {
		if e.TOC == nil {
			e.TOC = &TOCSettings{}
		}
		applyTOCPatch(e.TOC, p.TOC)
	}
	if p.DataBinding != nil {
		e.DataBinding = *p.DataBinding
	}
	if p.AspectRatio != nil {
		e.AspectRatio = *p.AspectRatio
	}
	if p.AspectRatioLocked != nil {
		e.AspectRatioLocked = *p.AspectRatioLocked
	}
}

func applyTextPatch(s *TextStyle, p *TextStylePatch) {
	if p.FontFamily != nil {
		s.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.FontWeight != nil {
		s.FontWeight = *p.FontWeight
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.Alignment != nil {
		s.Alignment = *p.Alignment
	}
	if p.LineHeight != nil {
		s.LineHeight = *p.LineHeight
	}
	if p.LetterSpacing != nil {
		s.LetterSpacing = *p.LetterSpacing
	}
}

func applyShapePatch(s *ShapeStyle, p *ShapeStylePatch) {
	if p.Fill != nil {
		s.Fill = *p.Fill
	}
	if p.Stroke != nil {
		s.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil {
		s.StrokeWidth = *p.StrokeWidth
	}
	if p.CornerRadius != nil {
		s.CornerRadius = *p.CornerRadius
	}
	if p.Opacity != nil {
		s.Opacity = *p.Opacity
	}
}

func applyTOCPatch(s *TOCSettings, p *TOCSettingsPatch) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.ShowTitle != nil {
		s.ShowTitle = *p.ShowTitle
	}
	if p.GroupBy != nil {
		s.GroupBy = *p.GroupBy
	}
	if p.Columns != nil {
		s.Columns = *p.Columns
	}
	if p.Leader != nil {
		s.Leader = *p.Leader
	}
	if p.TitleStyle != nil {
		if s.TitleStyle == nil {
			s.TitleStyle = &TextStyle{}
		}
		applyTextPatch(s.TitleStyle, p.TitleStyle)
	}
	if p.HeaderStyle != nil {
		if s.HeaderStyle == nil {
			s.HeaderStyle = &TextStyle{}
		}
		applyTextPatch(s.HeaderStyle, p.HeaderStyle)
	}
	if p.ItemStyle != nil {
		if s.ItemStyle == nil {
			s.ItemStyle = &TextStyle{}
		}
		applyTextPatch(s.ItemStyle, p.ItemStyle)
	}
}

// Helper constructors for pointer patch fields.

func Float(v float64) *float64    { return &v }
func Int(v int) *int              { return &v }
func Bool(v bool) *bool           { return &v }
func Str(v string) *string        { return &v }
func Pos(x, y float64) *Position  { return &Position{X: x, Y: y} }
func Dim(w, h float64) *Dimension { return &Dimension{Width: w, Height: h} }
