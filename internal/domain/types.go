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

// This file defines the core data model for Go Catalog Studio: the element
// sum type placed on document pages, the fixed catalog section roles, and the
// persistence payload exchanged with the save collaborator. All coordinates
// and sizes are in unscaled document units.

// ElementType is the closed discriminant of the element variant model.
// Dispatch on this tag, never on the presence of optional style payloads.
type ElementType string

const (
	ElementText      ElementType = "text"
	ElementShape     ElementType = "shape"
	ElementImage     ElementType = "image"
	ElementQRCode    ElementType = "qrcode"
	ElementDataField ElementType = "dataField"
	ElementTOCList   ElementType = "tocList"
	ElementTable     ElementType = "table"
)

// MinElementSize is the floor applied to both axes of every element dimension.
const MinElementSize = 10.0

// Position is a top-left corner in document units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimension is an element size in document units.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextStyle applies to text, dataField and table cell content.
type TextStyle struct {
	FontFamily    string  `json:"fontFamily,omitempty"`
	FontSize      float64 `json:"fontSize,omitempty"`
	FontWeight    string  `json:"fontWeight,omitempty"`
	Color         string  `json:"color,omitempty"`
	Alignment     string  `json:"alignment,omitempty"` // left, center, right, justify
	LineHeight    float64 `json:"lineHeight,omitempty"`
	LetterSpacing float64 `json:"letterSpacing,omitempty"`
}

// ShapeStyle applies to shape elements (and image frames).
type ShapeStyle struct {
	Fill         string  `json:"fill,omitempty"`
	Stroke       string  `json:"stroke,omitempty"`
	StrokeWidth  float64 `json:"strokeWidth,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`
	Opacity      float64 `json:"opacity,omitempty"`
}

// TOCSettings configures a tocList element. Row style metrics feed the flow
// engine, so preview and export must read them from the same place.
type TOCSettings struct {
	Title       string     `json:"title,omitempty"`
	ShowTitle   bool       `json:"showTitle,omitempty"`
	GroupBy     string     `json:"groupBy,omitempty"` // data column used for grouping
	Columns     int        `json:"columns,omitempty"`
	Leader      string     `json:"leader,omitempty"` // dots, dashes, none
	TitleStyle  *TextStyle `json:"titleStyle,omitempty"`
	HeaderStyle *TextStyle `json:"headerStyle,omitempty"`
	ItemStyle   *TextStyle `json:"itemStyle,omitempty"`
}

// CanvasElement is a single positioned, stylable content node.
// Invariants: IDs are unique within a collection, dimensions respect
// MinElementSize on both axes, position and dimension are always finite.
type CanvasElement struct {
	ID        string      `json:"id"`
	Type      ElementType `json:"type"`
	Position  Position    `json:"position"`
	Dimension Dimension   `json:"dimension"`
	Rotation  float64     `json:"rotation"` // degrees
	ZIndex    int         `json:"zIndex"`   // paint-order key, not necessarily contiguous
	PageIndex int         `json:"pageIndex"`
	Visible   bool        `json:"visible"`
	Locked    bool        `json:"locked"`

	// Content holds the literal payload: text body, image path, qr target.
	// For bound elements it is the fallback shown when no row is selected.
	Content string `json:"content,omitempty"`

	// Variant style payloads; exactly the ones matching Type are meaningful.
	Text  *TextStyle   `json:"textStyle,omitempty"`
	Shape *ShapeStyle  `json:"shapeStyle,omitempty"`
	TOC   *TOCSettings `json:"tocSettings,omitempty"`

	// DataBinding names an external column; displayed content is resolved
	// against the selected row at read time, never stored here.
	DataBinding string `json:"dataBinding,omitempty"`

	AspectRatio       float64 `json:"aspectRatio,omitempty"` // width / height
	AspectRatioLocked bool    `json:"aspectRatioLocked,omitempty"`
}

// SectionType enumerates the five fixed structural roles of catalog mode.
type SectionType string

const (
	SectionCover          SectionType = "cover"
	SectionTOC            SectionType = "toc"
	SectionChapterDivider SectionType = "chapterDivider"
	SectionProductPage    SectionType = "productPage"
	SectionBackCover      SectionType = "backCover"
)

// SectionTypes lists the fixed roles in document order.
var SectionTypes = []SectionType{
	SectionCover,
	SectionTOC,
	SectionChapterDivider,
	SectionProductPage,
	SectionBackCover,
}

// ValidSectionType reports whether t is one of the five fixed roles.
func ValidSectionType(t SectionType) bool {
	for _, s := range SectionTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Design is one element collection plus its background color. Sections and
// chapter designs are stored as Designs.
type Design struct {
	Elements   []CanvasElement `json:"elements"`
	Background string          `json:"background,omitempty"`
}

// CatalogData is the structured serialization of catalog mode: one design per
// fixed section plus an open-ended map of per-chapter designs.
type CatalogData struct {
	Sections       map[SectionType]Design `json:"sections"`
	ChapterDesigns map[string]Design      `json:"chapterDesigns,omitempty"`
}

// DocumentPayload is the record handed to the persistence collaborator.
// Flat mode carries Elements; catalog mode carries CatalogData instead.
type DocumentPayload struct {
	CanvasWidth     float64         `json:"canvasWidth"`
	CanvasHeight    float64         `json:"canvasHeight"`
	PageCount       int             `json:"pageCount"`
	BackgroundColor string          `json:"backgroundColor,omitempty"`
	Type            string          `json:"type"` // "single" or "catalog"
	Elements        []CanvasElement `json:"elements"`
	CatalogData     *CatalogData    `json:"catalogData,omitempty"`
}

// Document type tags for DocumentPayload.Type.
const (
	DocumentSingle  = "single"
	DocumentCatalog = "catalog"
)
