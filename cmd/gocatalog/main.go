/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gocatalogstudio/internal/backend"
	"gocatalogstudio/internal/binding"
	"gocatalogstudio/internal/config"
	"gocatalogstudio/internal/domain"
	"gocatalogstudio/internal/export"
	applog "gocatalogstudio/internal/log"
	"gocatalogstudio/internal/storage"
	"gocatalogstudio/internal/version"
)

// A4 portrait in points; the default canvas for new documents.
const (
	defaultCanvasW = 595.0
	defaultCanvasH = 842.0
)

func usage() {
	fmt.Println("Go Catalog Studio — development skeleton")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gocatalog version|-v|--version            Show version")
	fmt.Println("  gocatalog init <dir> [catalog]            Create a new document at <dir>, optionally in catalog mode")
	fmt.Println("  gocatalog open <dir>                      Open document at <dir> and print summary")
	fmt.Println("  gocatalog save <dir>                      Save document at <dir> (creates backup)")
	fmt.Println("  gocatalog export-pdf <dir> <out.pdf>      Export all pages as one PDF")
	fmt.Println("  gocatalog export-png <dir> <outDir>       Export each page as a PNG")
	fmt.Println("  gocatalog rows                            Load the configured data source and print a summary")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var dh *storage.DocumentHandle
	defer func() {
		if r := recover(); r != nil {
			l.Error("panic", slog.Any("recover", r))
			if dh != nil {
				if path, err := storage.SaveEmergency(dh); err == nil {
					fmt.Println("Emergency save written to", path)
				}
			}
			os.Exit(1)
		}
	}()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Go Catalog Studio — development skeleton")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 3 {
				fmt.Println("init requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			docType := domain.DocumentSingle
			if len(args) > 3 && args[3] == "catalog" {
				docType = domain.DocumentCatalog
			}
			l.Info("init document", slog.String("root", abs), slog.String("type", string(docType)))
			p := domain.DocumentPayload{
				CanvasWidth:     defaultCanvasW,
				CanvasHeight:    defaultCanvasH,
				PageCount:       1,
				BackgroundColor: "#ffffff",
				Type:            docType,
				Elements:        []domain.CanvasElement{},
			}
			if docType == domain.DocumentCatalog {
				p.CatalogData = &domain.CatalogData{
					Sections:       map[domain.SectionType]domain.Design{},
					ChapterDesigns: map[string]domain.Design{},
				}
			}
			h, err := storage.InitDocument(abs, p)
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			dh = h
			fmt.Println("Created document at", abs)
			return
		case "open":
			h := mustOpen(l, args)
			dh = h
			fmt.Printf("Opened document: %s\n", h.Root)
			fmt.Printf("Type: %s, pages: %d, elements: %d\n", h.Payload.Type, h.Payload.PageCount, len(h.Payload.Elements))
			return
		case "save":
			h := mustOpen(l, args)
			dh = h
			if err := storage.Save(h); err != nil {
				l.Error("save failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Saved document and created a backup of the previous manifest (if any).")
			return
		case "export-pdf":
			if len(args) < 4 {
				fmt.Println("export-pdf requires <dir> and <out.pdf>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args)
			dh = h
			out := args[3]
			if !filepath.IsAbs(out) {
				out = filepath.Join(h.Root, "exports", out)
			}
			src := loadRows(l)
			if err := export.ExportPDF(export.FromPayload(h.Payload), src, out, export.PDFOptions{IncludeFrames: true}); err != nil {
				l.Error("pdf export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote", out)
			return
		case "export-png":
			if len(args) < 4 {
				fmt.Println("export-png requires <dir> and <outDir>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args)
			dh = h
			out := args[3]
			if !filepath.IsAbs(out) {
				out = filepath.Join(h.Root, "exports", out)
			}
			src := loadRows(l)
			if err := export.ExportPNGPages(export.FromPayload(h.Payload), src, out, export.PNGOptions{}); err != nil {
				l.Error("png export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote pages to", out)
			return
		case "rows":
			src := loadRows(l)
			if src == nil {
				fmt.Println("No data source configured (set GCS_PG_DSN or the config file).")
				os.Exit(1)
			}
			fmt.Printf("Columns: %v\n", src.Columns())
			fmt.Printf("Rows: %d\n", src.RowCount())
			return
		}
	}

	usage()
}

func mustOpen(l *slog.Logger, args []string) *storage.DocumentHandle {
	if len(args) < 3 {
		fmt.Println(args[1], "requires <dir>")
		usage()
		os.Exit(2)
	}
	abs, _ := filepath.Abs(args[2])
	l.Info("open document", slog.String("root", abs))
	h, err := storage.Open(abs)
	if err != nil {
		l.Error("open failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return h
}

// loadRows connects to the configured row provider. A missing or unreachable
// data source is not fatal for exports; bound fields fall back to static
// content.
func loadRows(l *slog.Logger) *binding.Source {
	cfg, secret, err := config.Load()
	if err != nil {
		l.Warn("config load failed", slog.Any("err", err))
		return nil
	}
	dsn := cfg.DataSource.DSN
	if secret != "" {
		dsn = secret
	}
	if dsn == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := backend.Open(ctx, dsn)
	if err != nil {
		l.Warn("data source unavailable", slog.Any("err", err))
		return nil
	}
	defer func() { _ = db.Close() }()
	cols, rows, err := backend.NewRowSource(db, cfg.DataSource.Table, cfg.DataSource.OrderBy).Load(ctx)
	if err != nil {
		l.Warn("row load failed", slog.Any("err", err))
		return nil
	}
	return binding.NewSource(cols, rows)
}
