// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/assettrack-tui/internal/report"
)

// =============================================================================
// LIVE RELOAD
// =============================================================================

// debounceDelay collapses the write+rename bursts editors produce into a
// single reload.
const debounceDelay = 300 * time.Millisecond

// Watcher reloads the global configuration when the config file changes
// on disk.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger report.Logger

	// onReload, if set, runs after each successful reload.
	onReload func(*Config)

	mu      sync.Mutex
	pending map[string]time.Time
	done    chan struct{}
	once    sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for watcher events.
func WithWatcherLogger(l report.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = l }
}

// WithOnReload registers a callback invoked with the freshly loaded
// configuration after each reload.
func WithOnReload(fn func(*Config)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher creates a watcher over the config directory. Watching the
// directory rather than the file survives the atomic rename Save does.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:     fsw,
		logger:  report.Nop,
		pending: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins processing filesystem events until ctx is cancelled or
// Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.processEvents(ctx)
	go w.processPending(ctx)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.done) })
	return w.fsw.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isConfigFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("config watcher: %v", err)
		}
	}
}

func (w *Watcher) processPending(ctx context.Context) {
	ticker := time.NewTicker(debounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) flushPending() {
	w.mu.Lock()
	ready := false
	now := time.Now()
	for name, stamp := range w.pending {
		if now.Sub(stamp) >= debounceDelay {
			delete(w.pending, name)
			ready = true
		}
	}
	w.mu.Unlock()

	if !ready {
		return
	}
	if err := ReloadGlobal(); err != nil {
		w.logger.Errorf("config reload: %v", err)
		return
	}
	w.logger.Infof("configuration reloaded")
	if w.onReload != nil {
		w.onReload(Global())
	}
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	return base == "config.toml" || base == "config.json"
}
