package service

import (
	"context"
	"path/filepath"

	"telejoin/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
)

// Invalidator drops cached state when a source changes
type Invalidator interface {
	Invalidate()
}

// Watcher watches the directories holding telemetry sources
// Editors often replace files by rename, so the directory is watched rather
// than the file itself
type Watcher struct {
	sources map[string]struct{}
	dirs    []string
	target  Invalidator
	notify  func(path string)
}

// NewWatcher builds a watcher over sources; notify may be nil
func NewWatcher(sources []string, target Invalidator, notify func(path string)) *Watcher {
	w := &Watcher{sources: map[string]struct{}{}, target: target, notify: notify}
	seen := map[string]struct{}{}
	for _, p := range sources {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		w.sources[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	return w
}

// Start registers the directories and runs the event loop until ctx ends
// The returned channel closes once the loop has exited
func (w *Watcher) Start(ctx context.Context) (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range w.dirs {
		if err := fw.Add(d); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	log := logger.Named("watcher")
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() { _ = fw.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-fw.Events:
				if !ok {
					return
				}
				w.handle(evt, log)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("watcher error")
			}
		}
	}()
	log.Info().Strs("dirs", w.dirs).Msg("watching telemetry sources")
	return done, nil
}

const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

func (w *Watcher) handle(evt fsnotify.Event, log *logger.Logger) {
	if evt.Op&relevant == 0 {
		return
	}
	abs, err := filepath.Abs(evt.Name)
	if err != nil {
		return
	}
	if _, ok := w.sources[abs]; !ok {
		return
	}
	w.target.Invalidate()
	log.Info().Str("path", abs).Str("op", evt.Op.String()).Msg("telemetry source changed, cache dropped")
	if w.notify != nil {
		w.notify(abs)
	}
}
