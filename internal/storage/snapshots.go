/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"gocatalogstudio/internal/domain"
)

// language=SQL
// dialect=SQLite
const insertSnapshotSQL = `INSERT INTO snapshots(ts, payload) VALUES (?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestSnapshotSQL = `SELECT ts, payload FROM snapshots ORDER BY ts DESC, id DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const pruneOldSnapshotsSQL = `DELETE FROM snapshots WHERE id NOT IN (
	SELECT id FROM snapshots ORDER BY ts DESC, id DESC LIMIT ?
)`

// SaveSnapshot records a full payload snapshot in the document's index
// database. Snapshots are a recovery aid independent of the manifest backups.
func SaveSnapshot(ctx context.Context, dh *DocumentHandle, p domain.DocumentPayload, ts time.Time) error {
	if dh == nil {
		return errors.New("nil DocumentHandle")
	}
	blob, err := json.Marshal(p)
	if err != nil {
		return err
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, insertSnapshotSQL, ts.UTC().Format(time.RFC3339Nano), blob)
	return err
}

// LatestSnapshot returns the newest stored payload, or ok=false if none.
func LatestSnapshot(ctx context.Context, dh *DocumentHandle) (domain.DocumentPayload, time.Time, bool, error) {
	var zero domain.DocumentPayload
	if dh == nil {
		return zero, time.Time{}, false, errors.New("nil DocumentHandle")
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return zero, time.Time{}, false, err
	}
	defer func() { _ = db.Close() }()
	var tsStr string
	var blob []byte
	err = db.QueryRowContext(ctx, selectLatestSnapshotSQL).Scan(&tsStr, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, time.Time{}, false, nil
	}
	if err != nil {
		return zero, time.Time{}, false, err
	}
	var p domain.DocumentPayload
	if err := json.Unmarshal(blob, &p); err != nil {
		return zero, time.Time{}, false, err
	}
	ts, _ := time.Parse(time.RFC3339Nano, tsStr)
	return p, ts, true, nil
}

// PruneSnapshots keeps at most keepLast snapshots and deletes older ones.
func PruneSnapshots(ctx context.Context, dh *DocumentHandle, keepLast int) (int64, error) {
	if dh == nil {
		return 0, errors.New("nil DocumentHandle")
	}
	if keepLast <= 0 {
		return 0, nil
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, pruneOldSnapshotsSQL, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
