package frame

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a frame must stay quiet before it is reported.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports frames as the solver writes them into a directory.
type Watcher struct {
	dir      string
	debounce time.Duration

	// OnError receives non-fatal watcher errors. Nil drops them.
	OnError func(error)
}

// NewWatcher creates a watcher for dir. A non-positive debounce selects
// DefaultDebounce.
func NewWatcher(dir string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{dir: dir, debounce: debounce}
}

// Watch blocks until ctx is cancelled, calling fn with the number of every
// frame whose files were created or rewritten. A frame is reported once
// both of its files exist and no write happened for the debounce interval.
// Frames reported in one batch arrive in ascending order.
func (w *Watcher) Watch(ctx context.Context, fn func(n int)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	pending := make(map[int]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(ev.Name)
			n, ok := parseNumber(name, "fort.q")
			if !ok {
				n, ok = parseNumber(name, "fort.t")
			}
			if !ok {
				continue
			}
			pending[n] = true
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError(err)
			}

		case <-timer.C:
			for _, n := range w.ready(pending) {
				delete(pending, n)
				fn(n)
			}
		}
	}
}

// ready returns the pending frames whose file pair is complete.
func (w *Watcher) ready(pending map[int]bool) []int {
	var nums []int
	for n := range pending {
		if !exists(filepath.Join(w.dir, QFile(n))) || !exists(filepath.Join(w.dir, TFile(n))) {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
