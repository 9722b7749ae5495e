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
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIndexInitCreatesDatabase(t *testing.T) {
	root := filepath.Join(t.TempDir(), "doc")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	db, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("init index: %v", err)
	}
	defer func() { _ = db.Close() }()
	if _, err := os.Stat(IndexPath(root)); err != nil {
		t.Fatalf("index file missing: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		t.Fatalf("snapshots table missing: %v", err)
	}
}

func TestSnapshotLatestAndPrune(t *testing.T) {
	root := filepath.Join(t.TempDir(), "doc")
	dh, err := InitDocument(root, testPayload())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := dh.Payload
		p.PageCount = i + 1
		if err := SaveSnapshot(ctx, dh, p, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("snapshot %d: %v", i, err)
		}
	}

	p, ts, ok, err := LatestSnapshot(ctx, dh)
	if err != nil || !ok {
		t.Fatalf("latest: ok=%v err=%v", ok, err)
	}
	if p.PageCount != 5 {
		t.Fatalf("expected newest snapshot (pageCount=5), got %d", p.PageCount)
	}
	if !ts.Equal(base.Add(4 * time.Minute)) {
		t.Fatalf("timestamp wrong: %v", ts)
	}

	deleted, err := PruneSnapshots(ctx, dh, 2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 pruned, got %d", deleted)
	}
	if p, _, ok, _ := LatestSnapshot(ctx, dh); !ok || p.PageCount != 5 {
		t.Fatalf("prune must keep the newest snapshots")
	}
}

func TestLatestSnapshotEmpty(t *testing.T) {
	root := filepath.Join(t.TempDir(), "doc")
	dh, err := InitDocument(root, testPayload())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, _, ok, err := LatestSnapshot(context.Background(), dh); ok || err != nil {
		t.Fatalf("empty trail: ok=%v err=%v", ok, err)
	}
}
