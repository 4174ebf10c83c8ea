package repository

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultReloadDebounce = 500 * time.Millisecond

// Reloader rebuilds the active reference snapshot.
type Reloader interface {
	Reload(ctx context.Context) (*Catalog, error)
}

// ReferenceWatcher reloads the reference data when one of its files changes
// on disk. Bursts of events (editors often write, rename and chmod in quick
// succession) collapse into a single reload.
type ReferenceWatcher struct {
	watcher  *fsnotify.Watcher
	store    Reloader
	dir      string
	debounce time.Duration
	logger   *zap.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewReferenceWatcher watches dir. A debounce of zero uses the default.
func NewReferenceWatcher(dir string, store Reloader, debounce time.Duration, logger *zap.Logger) (*ReferenceWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceWatcher{
		watcher:  w,
		store:    store,
		dir:      dir,
		debounce: debounce,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (rw *ReferenceWatcher) Start(ctx context.Context) error {
	var err error
	rw.startOnce.Do(func() {
		if err = rw.watcher.Add(rw.dir); err != nil {
			close(rw.doneCh)
			return
		}
		rw.logger.Info("watching reference data", zap.String("dir", rw.dir))
		go rw.run(ctx)
	})
	return err
}

// Stop ends the watch loop and releases the underlying watcher.
func (rw *ReferenceWatcher) Stop() {
	rw.stopOnce.Do(func() {
		close(rw.stopCh)
		rw.startOnce.Do(func() { close(rw.doneCh) })
		<-rw.doneCh
		if err := rw.watcher.Close(); err != nil {
			rw.logger.Warn("closing reference watcher", zap.Error(err))
		}
	})
}

func (rw *ReferenceWatcher) run(ctx context.Context) {
	defer close(rw.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-rw.stopCh:
			return
		case ev, ok := <-rw.watcher.Events:
			if !ok {
				return
			}
			if !rw.relevant(ev) {
				continue
			}
			rw.logger.Debug("reference file changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(rw.debounce)
			} else {
				timer.Reset(rw.debounce)
			}
			fire = timer.C
		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			rw.logger.Warn("reference watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			if _, err := rw.store.Reload(ctx); err != nil {
				rw.logger.Warn("keeping previous reference data", zap.Error(err))
			}
		}
	}
}

func (rw *ReferenceWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	return slices.Contains(DataFiles, filepath.Base(ev.Name))
}
