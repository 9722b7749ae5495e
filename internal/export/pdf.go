/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"gocatalogstudio/internal/binding"
	"gocatalogstudio/internal/domain"
	"gocatalogstudio/internal/flow"
)

// PDFOptions controls PDF export behavior.
// Units are document units mapped 1:1 to points; built-in Helvetica keeps
// text vector without embedding.
//
// Coordinates:
// - Page origin is top-left.
// - Element positions are already page coordinates, no margin shift applies.
type PDFOptions struct {
	IncludeFrames bool  // draw hairline frames around image/qrcode placeholders
	Pages         []int // if empty, export all pages
}

// ExportPDF renders the document to a single multi-page PDF at outPath.
// src may be nil; bound fields then fall back to their static content.
func ExportPDF(doc Doc, src *binding.Source, outPath string, opt PDFOptions) error {
	if doc.CanvasWidth <= 0 || doc.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be positive")
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: doc.CanvasWidth, Ht: doc.CanvasHeight},
		OrientationStr: "",
	})
	pdf.SetTitle("Catalog", false)
	pdf.SetAuthor("Go Catalog Studio", false)
	pdf.SetFont("Helvetica", "", 12)

	pages := pageIndexes(doc.PageCount, opt.Pages)
	for _, pidx := range pages {
		if pidx < 0 || pidx >= doc.PageCount {
			continue
		}
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: doc.CanvasWidth, Ht: doc.CanvasHeight})

		if doc.Background != "" {
			r, g, b := parseHexColor(doc.Background)
			pdf.SetFillColor(int(r), int(g), int(b))
			pdf.Rect(0, 0, doc.CanvasWidth, doc.CanvasHeight, "F")
		}

		for _, e := range doc.pageElements(pidx) {
			drawElementPDF(pdf, doc, e, pidx, src, opt)
		}
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawElementPDF(pdf *gofpdf.Fpdf, doc Doc, e domain.CanvasElement, pidx int, src *binding.Source, opt PDFOptions) {
	x := e.Position.X
	y := e.Position.Y
	w := e.Dimension.Width
	h := e.Dimension.Height

	switch e.Type {
	case domain.ElementShape:
		style := "D"
		if e.Shape != nil && e.Shape.Fill != "" {
			r, g, b := parseHexColor(e.Shape.Fill)
			pdf.SetFillColor(int(r), int(g), int(b))
			style = "FD"
		}
		sw := 1.0
		sc := "#000000"
		if e.Shape != nil {
			if e.Shape.StrokeWidth > 0 {
				sw = e.Shape.StrokeWidth
			}
			if e.Shape.Stroke != "" {
				sc = e.Shape.Stroke
			}
		}
		r, g, b := parseHexColor(sc)
		pdf.SetDrawColor(int(r), int(g), int(b))
		pdf.SetLineWidth(sw)
		pdf.Rect(x, y, w, h, style)

	case domain.ElementText, domain.ElementDataField:
		text := binding.Resolve(e, src)
		drawTextBlockPDF(pdf, x, y, w, text, e.Text)

	case domain.ElementImage, domain.ElementQRCode:
		// Placeholder frame with the resolved reference as a caption. Raster
		// embedding comes with asset management.
		if opt.IncludeFrames {
			pdf.SetDrawColor(128, 128, 128)
			pdf.SetLineWidth(0.5)
			pdf.Rect(x, y, w, h, "D")
		}
		ref := binding.Resolve(e, src)
		if ref != "" {
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(128, 128, 128)
			pdf.Text(x+4, y+h-4, ref)
			pdf.SetTextColor(0, 0, 0)
		}

	case domain.ElementTable:
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.5)
		pdf.Rect(x, y, w, h, "D")

	case domain.ElementTOCList:
		drawTOCPDF(pdf, e, pidx, src)
	}
}

// drawTextBlockPDF renders a text run inside the element box, one line per
// newline, styled from the element's text style.
func drawTextBlockPDF(pdf *gofpdf.Fpdf, x, y, w float64, text string, ts *domain.TextStyle) {
	fsz := 12.0
	lh := 1.4
	styleStr := ""
	if ts != nil {
		if ts.FontSize > 0 {
			fsz = ts.FontSize
		}
		if ts.LineHeight > 0 {
			lh = ts.LineHeight
		}
		if ts.FontWeight == "bold" {
			styleStr = "B"
		}
		if ts.Color != "" {
			r, g, b := parseHexColor(ts.Color)
			pdf.SetTextColor(int(r), int(g), int(b))
			defer pdf.SetTextColor(0, 0, 0)
		}
	}
	pdf.SetFont("Helvetica", styleStr, fsz)
	cy := y + fsz // approx baseline offset
	for _, line := range strings.Split(text, "\n") {
		cx := x
		if ts != nil && ts.Alignment == "center" {
			cx = x + (w-pdf.GetStringWidth(line))/2
		} else if ts != nil && ts.Alignment == "right" {
			cx = x + w - pdf.GetStringWidth(line)
		}
		pdf.Text(cx, cy, line)
		cy += fsz * lh
	}
}

// drawTOCPDF lays the element's entries out with the flow engine and renders
// the partition page matching the document page. A tocList on page n shows
// partition page (docPage - n), so the listing continues across pages that
// carry the same element.
func drawTOCPDF(pdf *gofpdf.Fpdf, e domain.CanvasElement, pidx int, src *binding.Source) {
	m := tocMetrics(e)
	partition := flow.Paginate(tocEntries(e, src), m)
	slot := pidx - e.PageIndex
	if slot < 0 || slot >= len(partition) {
		return
	}

	x := e.Position.X
	y := e.Position.Y
	colW := e.Dimension.Width / float64(m.Columns)
	leader := "dots"
	if e.TOC != nil && e.TOC.Leader != "" {
		leader = e.TOC.Leader
	}

	if slot == 0 && m.ShowTitle {
		drawTextBlockPDF(pdf, x, y, e.Dimension.Width, e.TOC.Title, e.TOC.TitleStyle)
		y += m.TitleHeight + flow.TitleGap
	}

	// Rows fill column by column against the per-column height budget.
	perCol := m.ContainerHeight - flow.PagePadding
	if slot == 0 && m.ShowTitle {
		perCol -= m.TitleHeight + flow.TitleGap
	}
	col := 0
	cy := y
	for _, row := range partition[slot].Rows {
		if cy+row.Height > y+perCol && col < m.Columns-1 {
			col++
			cy = y
		}
		cx := x + float64(col)*colW
		switch row.Kind {
		case flow.RowHeader:
			var hs *domain.TextStyle
			if e.TOC != nil {
				hs = e.TOC.HeaderStyle
			}
			if hs == nil {
				hs = &domain.TextStyle{FontSize: m.HeaderFontSize, FontWeight: "bold"}
			}
			drawTextBlockPDF(pdf, cx, cy+flow.HeaderPadding/2, colW, row.Label, hs)
		case flow.RowItem:
			var is *domain.TextStyle
			if e.TOC != nil {
				is = e.TOC.ItemStyle
			}
			drawTOCItemPDF(pdf, cx, cy, colW, row, is, m, leader)
		}
		cy += row.Height
	}
}

func drawTOCItemPDF(pdf *gofpdf.Fpdf, x, y, w float64, row flow.Row, ts *domain.TextStyle, m flow.Metrics, leader string) {
	fsz := m.ItemFontSize
	styleStr := ""
	if ts != nil {
		if ts.FontSize > 0 {
			fsz = ts.FontSize
		}
		if ts.FontWeight == "bold" {
			styleStr = "B"
		}
	}
	pdf.SetFont("Helvetica", styleStr, fsz)
	base := y + fsz
	pdf.Text(x, base, row.Label)
	if row.Ref == "" {
		return
	}
	refW := pdf.GetStringWidth(row.Ref)
	pdf.Text(x+w-refW, base, row.Ref)
	if leader == "dots" {
		lw := pdf.GetStringWidth(row.Label)
		gap := w - lw - refW - 8
		if gap > 0 {
			dot := pdf.GetStringWidth(". ")
			n := int(gap / dot)
			if n > 0 {
				pdf.Text(x+lw+4, base, strings.Repeat(". ", n))
			}
		}
	}
}

func pageIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return specific
}
