package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is the quiet period after the last matching event before a
// change is reported. A SQLite commit touches the journal and the database
// several times; only the settled state is worth reloading.
const debounce = 100 * time.Millisecond

// Watcher reports changes to a single settings file. SQLite side files
// (journal, WAL) count as changes to the database they belong to, and a
// burst of them is reported once, as the database path, after it settles.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	name    string

	Events chan string
	Errors chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path. The parent directory is watched so the
// file may be created or replaced after the watcher starts.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("settings: cannot create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("settings: cannot watch %s: %w", dir, err)
	}

	w := &Watcher{
		watcher: fw,
		path:    path,
		name:    filepath.Base(path),
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) matches(path string) bool {
	base := filepath.Base(path)
	return base == w.name || strings.HasPrefix(base, w.name+"-")
}

func (w *Watcher) run() {
	defer close(w.done)

	// Removing the rollback journal is the commit point, so removals count.
	const ops = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&ops == 0 || !w.matches(event.Name) {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			select {
			case w.Events <- w.path:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Watch calls fn after every change to path until ctx is done. Errors from
// the underlying watcher are passed to onErr when it is not nil.
func Watch(ctx context.Context, path string, fn func(), onErr func(error)) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-w.Events:
				if !ok {
					return
				}
				fn()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				if onErr != nil {
					onErr(err)
				}
			}
		}
	}()
	return nil
}
