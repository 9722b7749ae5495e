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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"gocatalogstudio/internal/binding"
	"gocatalogstudio/internal/domain"
	"gocatalogstudio/internal/flow"
)

// PNGOptions controls PNG export behavior.
// - DPI: output raster density; document units are points (1pt = 1/72").
// - Pages: if empty, export all.
// Text is rendered with a bitmap face at a fixed size, so PNG pages are
// previews rather than print masters; the PDF path carries vector text.
type PNGOptions struct {
	DPI   int
	Pages []int
}

// ExportPNGPages renders each page as a separate PNG under outDir, named
// page-<n>.png with n starting at 1.
func ExportPNGPages(doc Doc, src *binding.Source, outDir string, opt PNGOptions) error {
	if doc.CanvasWidth <= 0 || doc.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be positive")
	}
	dpi := opt.DPI
	if dpi <= 0 {
		dpi = 144
	}
	scale := float64(dpi) / 72.0
	pixW := int(math.Round(doc.CanvasWidth * scale))
	pixH := int(math.Round(doc.CanvasHeight * scale))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	pages := pageIndexes(doc.PageCount, opt.Pages)
	for _, pidx := range pages {
		if pidx < 0 || pidx >= doc.PageCount {
			continue
		}
		img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
		bg := color.RGBA{255, 255, 255, 255}
		if doc.Background != "" {
			r, g, b := parseHexColor(doc.Background)
			bg = color.RGBA{r, g, b, 255}
		}
		draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

		for _, e := range doc.pageElements(pidx) {
			drawElementPNG(img, e, pidx, src, scale)
		}

		name := filepath.Join(outDir, fmt.Sprintf("page-%d.png", pidx+1))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create png: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode png: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close png: %w", err)
		}
	}
	return nil
}

func drawElementPNG(img *image.RGBA, e domain.CanvasElement, pidx int, src *binding.Source, scale float64) {
	x := int(math.Round(e.Position.X * scale))
	y := int(math.Round(e.Position.Y * scale))
	w := int(math.Round(e.Dimension.Width * scale))
	h := int(math.Round(e.Dimension.Height * scale))

	switch e.Type {
	case domain.ElementShape:
		if e.Shape != nil && e.Shape.Fill != "" {
			r, g, b := parseHexColor(e.Shape.Fill)
			fillRect(img, x, y, x+w-1, y+h-1, color.RGBA{r, g, b, 255})
		}
		sc := color.RGBA{0, 0, 0, 255}
		if e.Shape != nil && e.Shape.Stroke != "" {
			r, g, b := parseHexColor(e.Shape.Stroke)
			sc = color.RGBA{r, g, b, 255}
		}
		strokeRect(img, x, y, x+w-1, y+h-1, sc)

	case domain.ElementText, domain.ElementDataField:
		tc := color.RGBA{0, 0, 0, 255}
		if e.Text != nil && e.Text.Color != "" {
			r, g, b := parseHexColor(e.Text.Color)
			tc = color.RGBA{r, g, b, 255}
		}
		drawTextPNG(img, x, y, binding.Resolve(e, src), tc)

	case domain.ElementImage, domain.ElementQRCode:
		gray := color.RGBA{128, 128, 128, 255}
		strokeRect(img, x, y, x+w-1, y+h-1, gray)
		if ref := binding.Resolve(e, src); ref != "" {
			drawTextPNG(img, x+2, y+h-16, ref, gray)
		}

	case domain.ElementTable:
		strokeRect(img, x, y, x+w-1, y+h-1, color.RGBA{0, 0, 0, 255})

	case domain.ElementTOCList:
		drawTOCPNG(img, e, pidx, src, scale)
	}
}

// drawTOCPNG mirrors the PDF layout at raster resolution: same partition,
// same column fill, leaders reduced to a dotted baseline run.
func drawTOCPNG(img *image.RGBA, e domain.CanvasElement, pidx int, src *binding.Source, scale float64) {
	m := tocMetrics(e)
	partition := flow.Paginate(tocEntries(e, src), m)
	slot := pidx - e.PageIndex
	if slot < 0 || slot >= len(partition) {
		return
	}

	black := color.RGBA{0, 0, 0, 255}
	x := e.Position.X
	y := e.Position.Y
	colW := e.Dimension.Width / float64(m.Columns)

	if slot == 0 && m.ShowTitle {
		drawTextPNG(img, int(math.Round(x*scale)), int(math.Round(y*scale)), e.TOC.Title, black)
		y += m.TitleHeight + flow.TitleGap
	}

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
		px := int(math.Round(cx * scale))
		py := int(math.Round(cy * scale))
		label := row.Label
		if row.Kind == flow.RowItem && row.Ref != "" {
			label = label + " " + strings.Repeat(".", 3) + " " + row.Ref
		}
		drawTextPNG(img, px, py, label, black)
		cy += row.Height
	}
}

// drawTextPNG draws one or more lines with the 7x13 bitmap face, top-left
// anchored at (x, y) in pixels.
func drawTextPNG(img *image.RGBA, x, y int, text string, col color.RGBA) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	cy := y + face.Ascent
	for _, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(x, cy)
		d.DrawString(line)
		cy += face.Height + 2
	}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
