/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package backend loads row data for element bindings from Postgres. It is
// read-only: the editor never writes product data, it only binds to it.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	applog "gocatalogstudio/internal/log"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to Postgres using the pgx stdlib driver and verifies the
// connection with a bounded ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// RowSource reads the ordered column list and row records of one table,
// feeding the binding source.
type RowSource struct {
	db      *sql.DB
	table   string
	orderBy string
	log     *slog.Logger
}

// NewRowSource creates a loader for the given table. orderBy may be empty,
// in which case the database's natural order is used (stable enough for
// small product tables, but callers should configure an order column).
func NewRowSource(db *sql.DB, table, orderBy string) *RowSource {
	return &RowSource{
		db:      db,
		table:   table,
		orderBy: orderBy,
		log:     applog.WithComponent("backend"),
	}
}

// Load fetches every row of the table as strings. NULL values come back as
// empty strings; the binding layer treats them like any other value.
func (r *RowSource) Load(ctx context.Context) ([]string, []map[string]string, error) {
	q := "SELECT * FROM " + quoteIdent(r.table)
	if r.orderBy != "" {
		q += " ORDER BY " + quoteIdent(r.orderBy)
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", r.table, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns: %w", err)
	}
	var records []map[string]string
	vals := make([]sql.NullString, len(cols))
	scan := make([]any, len(cols))
	for i := range vals {
		scan[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		rec := make(map[string]string, len(cols))
		for i, c := range cols {
			rec[c] = vals[i].String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows: %w", err)
	}
	r.log.Debug("rows loaded", slog.String("table", r.table), slog.Int("count", len(records)))
	return cols, records, nil
}

// quoteIdent double-quotes a SQL identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
