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
	"log/slog"
	"sync"
	"time"

	"gocatalogstudio/internal/canvas"
	"gocatalogstudio/internal/domain"
	applog "gocatalogstudio/internal/log"
)

// DefaultDebounce is the autosave delay after the last mutation.
const DefaultDebounce = 2 * time.Second

// StatusSink is the slice of the editor the autosaver drives. The core never
// blocks on a write; it only observes these transitions.
type StatusSink interface {
	Dirty() bool
	ClearDirty()
	SetStatus(canvas.SaveStatus)
}

// Autosaver watches the dirty flag and performs a debounced write of the
// current payload, restarted on every further mutation. Write failures
// surface only through the save status; the next mutation retries.
type Autosaver struct {
	dh       *DocumentHandle
	sink     StatusSink
	build    func() domain.DocumentPayload
	debounce time.Duration
	keepSnap int

	mu    sync.Mutex
	timer *time.Timer
	log   *slog.Logger
}

// NewAutosaver wires a handle, a payload builder and the editor's status
// surface together. keepSnapshots <= 0 disables the sqlite snapshot trail.
func NewAutosaver(dh *DocumentHandle, sink StatusSink, build func() domain.DocumentPayload, debounce time.Duration, keepSnapshots int) *Autosaver {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Autosaver{
		dh:       dh,
		sink:     sink,
		build:    build,
		debounce: debounce,
		keepSnap: keepSnapshots,
		log:      applog.WithComponent("autosave"),
	}
}

// Notify (re)starts the debounce window. Call it after every committed
// mutation.
func (a *Autosaver) Notify() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.fire)
}

// Flush performs an immediate synchronous save, cancelling any pending timer.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	return a.save()
}

// Stop cancels any pending write without saving.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *Autosaver) fire() {
	if !a.sink.Dirty() {
		return
	}
	_ = a.save()
}

func (a *Autosaver) save() error {
	a.sink.SetStatus(canvas.StatusSaving)
	payload := a.build()
	a.dh.Payload = payload
	if err := Save(a.dh); err != nil {
		a.sink.SetStatus(canvas.StatusError)
		a.log.Error("autosave failed", slog.Any("err", err))
		if path, eerr := SaveEmergency(a.dh); eerr == nil {
			a.log.Info("emergency copy written", slog.String("path", path))
		}
		return err
	}
	a.sink.ClearDirty()
	a.sink.SetStatus(canvas.StatusSaved)
	if a.keepSnap > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := SaveSnapshot(ctx, a.dh, payload, time.Now()); err != nil {
			a.log.Warn("snapshot record failed", slog.Any("err", err))
		} else if _, err := PruneSnapshots(ctx, a.dh, a.keepSnap); err != nil {
			a.log.Warn("snapshot prune failed", slog.Any("err", err))
		}
	}
	return nil
}
