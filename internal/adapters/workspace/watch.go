package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"chemint/internal/domain"
	"chemint/internal/logging"
)

// Watch reports PDB files modified under the root or added with Add.
// Files created after the watch started are registered and reported too.
func (r *Repository) Watch(ctx context.Context, onUpdate func(domain.Structure)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range r.watchDirs() {
		if err := watcher.Add(dir); err != nil {
			r.log.Warn("cannot watch directory", logging.String("dir", dir), logging.Err(err))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("watcher error", logging.Err(err))
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(watcher, ev, onUpdate)
		}
	}
}

func (r *Repository) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, onUpdate func(domain.Structure)) {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if ev.Op&fsnotify.Create != 0 && r.isUnderRoot(ev.Name) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			// New subdirectories are watched as they appear
			if err := watcher.Add(ev.Name); err != nil {
				r.log.Warn("cannot watch directory", logging.String("dir", ev.Name), logging.Err(err))
			}
			return
		}
	}
	if !IsStructureFile(ev.Name) {
		return
	}

	idx, ok := r.lookup(ev.Name)
	if !ok {
		if !r.isUnderRoot(ev.Name) {
			return
		}
		r.mu.Lock()
		idx = r.registerLocked(ev.Name)
		r.mu.Unlock()
	}

	s, err := r.load(idx)
	if err != nil {
		// Editors often write files in several steps; the next event retries
		r.log.Debug("skipping unreadable update", logging.String("path", ev.Name), logging.Err(err))
		return
	}
	r.log.Info("structure changed", logging.Int("index", idx), logging.String("name", s.Name))
	onUpdate(s)
}

func (r *Repository) isUnderRoot(path string) bool {
	if r.root == "" {
		return false
	}
	rel, err := filepath.Rel(r.root, path)
	return err == nil && !strings.HasPrefix(rel, "..")
}

// watchDirs lists the root, its non-hidden subdirectories and the
// directories of files added from elsewhere
func (r *Repository) watchDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	if r.root != "" {
		_ = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if path != r.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if !e.sample && !r.isUnderRoot(e.path) {
			add(filepath.Dir(e.path))
		}
	}
	return dirs
}
