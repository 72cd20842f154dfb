// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teradata-labs/grouptip/pkg/tooltip"
)

const defaultDebounce = 250 * time.Millisecond

// settingsWatcher reloads a tooltip settings file when it changes on disk.
// The parent directory is watched so editors that replace the file by
// renaming are followed.
type settingsWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
	onReload func(tooltip.Settings)

	timerMu sync.Mutex
	timer   *time.Timer

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newSettingsWatcher(path string, logger *zap.Logger, onReload func(tooltip.Settings)) (*settingsWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &settingsWatcher{
		path:     abs,
		watcher:  watcher,
		logger:   logger,
		debounce: defaultDebounce,
		onReload: onReload,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start processes file events until ctx is done or Stop is called.
func (w *settingsWatcher) Start(ctx context.Context) {
	w.logger.Info("Watching tooltip settings", zap.String("path", w.path))
	go w.loop(ctx)
}

// Stop ends the watch loop and waits for it.
func (w *settingsWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
	<-w.doneCh

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMu.Unlock()
}

func (w *settingsWatcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Settings watcher error", zap.Error(err))

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (w *settingsWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *settingsWatcher) reload() {
	settings, err := readSettings(w.path)
	if err != nil {
		w.logger.Warn("Keeping previous tooltip settings", zap.Error(err))
		return
	}
	w.logger.Info("Tooltip settings file changed", zap.String("path", w.path))
	w.onReload(settings)
}

// readSettings loads and validates a settings file.
func readSettings(path string) (tooltip.Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return tooltip.Settings{}, fmt.Errorf("failed to open settings: %w", err)
	}
	defer f.Close()

	settings, err := tooltip.LoadSettings(f)
	if err != nil {
		return tooltip.Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return tooltip.Settings{}, err
	}
	return settings, nil
}
