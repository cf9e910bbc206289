package config

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher watches a config directory and triggers a callback on change.
type FileWatcher struct {
	Dir      string
	onChange func(string) // called with the path that changed
	logger   *zap.Logger

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// NewFileWatcher creates a watcher for dir. Only *.yaml files are reported.
func NewFileWatcher(dir string, onChange func(string), logger *zap.Logger) *FileWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWatcher{
		Dir:      dir,
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins watching in a goroutine. It returns once the directory is registered.
func (w *FileWatcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(w.Dir); err != nil {
		_ = fw.Close()
		return err
	}
	w.watcher = fw
	ctx, w.cancel = context.WithCancel(ctx)
	go w.loop(ctx)
	return nil
}

// Stop terminates the watcher and waits for its goroutine to exit.
func (w *FileWatcher) Stop() {
	w.once.Do(func() {
		if w.cancel == nil {
			close(w.done)
			return
		}
		w.cancel()
		<-w.done
	})
}

func (w *FileWatcher) loop(ctx context.Context) {
	defer close(w.done)
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != ".yaml" {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("config file changed",
				zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if w.onChange != nil {
				w.onChange(ev.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("config watcher error", zap.Error(err))
				continue
			}
			// events were dropped, treat as a change of everything
			if w.onChange != nil {
				w.onChange(w.Dir)
			}
		}
	}
}
