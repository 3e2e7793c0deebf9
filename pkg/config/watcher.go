// Copyright 2026 Author(s) of MCP Any
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/mcpany/denyfilter/pkg/denylist"
	"github.com/mcpany/denyfilter/pkg/logging"
)

// Watcher monitors configuration files for changes and triggers a reload.
type Watcher struct {
	watcher *fsnotify.Watcher
	reload  func() error
	done    chan struct{}
}

// NewWatcher creates a Watcher over the given files. reload is invoked on
// every write or create event; a reload error leaves the previous
// configuration in service.
func NewWatcher(paths []string, reload func() error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %q: %w", path, err)
		}
	}
	return &Watcher{
		watcher: watcher,
		reload:  reload,
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching. It returns immediately; events are handled until
// Stop is called or ctx is canceled.
func (w *Watcher) Start(ctx context.Context) {
	log := logging.GetLogger().With("component", "configWatcher")
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					log.Info("configuration file modified, reloading", "file", event.Name)
					if err := w.reload(); err != nil {
						log.Error("failed to reload configuration, keeping previous matcher", "error", err)
					}
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Error("file watcher error", "error", err)
			case <-ctx.Done():
				return
			case <-w.done:
				return
			}
		}
	}()
}

// Stop stops watching and releases the underlying watcher.
func (w *Watcher) Stop() {
	close(w.done)
	if err := w.watcher.Close(); err != nil {
		logging.GetLogger().Error("failed to close file watcher", "error", err)
	}
}

// NewReloadingHandle loads and compiles the configuration from store, places
// the matcher in a fresh Handle, and returns a Watcher that recompiles and
// atomically swaps the handle whenever one of paths changes. In-flight checks
// keep the generation they loaded; a failed reload keeps the last good
// matcher in service.
func NewReloadingHandle(store Store, paths []string) (*denylist.Handle, *Watcher, error) {
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	m, err := Compile(cfg)
	if err != nil {
		return nil, nil, err
	}
	handle := denylist.NewHandle(m)

	log := logging.GetLogger().With("component", "configWatcher")
	watcher, err := NewWatcher(paths, func() error {
		cfg, err := store.Load()
		if err != nil {
			return err
		}
		m, err := Compile(cfg)
		if err != nil {
			return err
		}
		old := handle.Swap(m)
		if old != nil {
			log.Info("deny list matcher replaced",
				"old_version", old.Version(),
				"new_version", m.Version(),
				"patterns", m.PatternCount(),
			)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return handle, watcher, nil
}
