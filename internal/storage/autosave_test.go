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
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gocatalogstudio/internal/canvas"
	"gocatalogstudio/internal/domain"
)

// fakeSink records status transitions under a lock; the autosaver fires from
// a timer goroutine.
type fakeSink struct {
	mu       sync.Mutex
	dirty    bool
	statuses []canvas.SaveStatus
}

func (f *fakeSink) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

func (f *fakeSink) ClearDirty() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirty = false
}

func (f *fakeSink) SetStatus(st canvas.SaveStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, st)
}

func (f *fakeSink) markDirty() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirty = true
}

func (f *fakeSink) lastStatus() canvas.SaveStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.statuses) == 0 {
		return ""
	}
	return f.statuses[len(f.statuses)-1]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestAutosaveDebouncedWrite(t *testing.T) {
	root := filepath.Join(t.TempDir(), "doc")
	dh, err := InitDocument(root, testPayload())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	sink := &fakeSink{}
	sink.markDirty()
	var mu sync.Mutex
	bg := "#111111"
	build := func() domain.DocumentPayload {
		mu.Lock()
		defer mu.Unlock()
		p := testPayload()
		p.BackgroundColor = bg
		return p
	}
	a := NewAutosaver(dh, sink, build, 30*time.Millisecond, 0)
	defer a.Stop()

	a.Notify()
	mu.Lock()
	bg = "#222222" // a further mutation inside the window
	mu.Unlock()
	a.Notify()

	waitFor(t, func() bool { return sink.lastStatus() == canvas.StatusSaved })
	if sink.Dirty() {
		t.Fatalf("successful save must clear the dirty flag")
	}
	got, err := Open(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got.Payload.BackgroundColor != "#222222" {
		t.Fatalf("debounced save wrote a stale payload: %q", got.Payload.BackgroundColor)
	}
}

func TestAutosaveSkipsWhenClean(t *testing.T) {
	root := filepath.Join(t.TempDir(), "doc")
	dh, err := InitDocument(root, testPayload())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	sink := &fakeSink{} // never dirty
	a := NewAutosaver(dh, sink, testPayload, 20*time.Millisecond, 0)
	defer a.Stop()
	a.Notify()
	time.Sleep(100 * time.Millisecond)
	if st := sink.lastStatus(); st != "" {
		t.Fatalf("clean editor must not trigger a save, got status %q", st)
	}
}

func TestFlushSavesImmediately(t *testing.T) {
	root := filepath.Join(t.TempDir(), "doc")
	dh, err := InitDocument(root, testPayload())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	sink := &fakeSink{}
	sink.markDirty()
	build := func() domain.DocumentPayload {
		p := testPayload()
		p.PageCount = 7
		return p
	}
	a := NewAutosaver(dh, sink, build, time.Hour, 0)
	defer a.Stop()
	a.Notify()
	if err := a.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if sink.lastStatus() != canvas.StatusSaved || sink.Dirty() {
		t.Fatalf("flush must complete the save synchronously")
	}
	got, err := Open(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got.Payload.PageCount != 7 {
		t.Fatalf("flushed payload not on disk: %d", got.Payload.PageCount)
	}
}

func TestAutosaveFailureSetsErrorStatus(t *testing.T) {
	dh := &DocumentHandle{Root: t.TempDir()} // missing manifest path: Save must fail
	sink := &fakeSink{}
	sink.markDirty()
	a := NewAutosaver(dh, sink, testPayload, time.Hour, 0)
	if err := a.Flush(); err == nil {
		t.Fatalf("expected save failure")
	}
	if sink.lastStatus() != canvas.StatusError {
		t.Fatalf("failure must surface as error status, got %q", sink.lastStatus())
	}
}
