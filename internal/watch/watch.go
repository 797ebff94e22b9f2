// Package watch provides file watching with a debounced rescan callback.
//
// Events inside the debounce window coalesce, so one burst of writes (an
// editor saving, a render touching many files) triggers a single callback
// with the full set of changed paths.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/qdoc-dev/qdoc/internal/log"
)

const defaultDebounce = 500 * time.Millisecond

// defaultIgnores are always excluded: VCS metadata, render artifacts and
// editor noise.
var defaultIgnores = []string{
	"**/.git/**",
	"**/_site/**",
	"**/_freeze/**",
	"**/.quarto/**",
	"**/renv/**",
	"**/node_modules/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
}

// Config holds the parameters for a Watcher.
type Config struct {
	// Dir is the root of the watched tree. Empty means the current working
	// directory.
	Dir string

	// Patterns are doublestar globs relative to Dir selecting the files
	// that trigger a rescan. Empty matches every non-ignored file.
	Patterns []string

	// Ignore are additional globs that never trigger a rescan, merged with
	// the built-in ignores.
	Ignore []string

	// Debounce is the quiet period after the last event before OnChange
	// fires. Zero or negative falls back to 500ms.
	Debounce time.Duration

	// OnChange receives the sorted, deduplicated changed paths (relative
	// to Dir). Errors are reported and watching continues.
	OnChange func(ctx context.Context, changed []string) error
}

// Watcher monitors a directory tree and fires a debounced callback when
// matching files change.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	ignores  []string
	debounce time.Duration
	dir      string
	started  atomic.Bool
}

// New creates a Watcher rooted at cfg.Dir and registers every non-ignored
// directory below it.
func New(cfg Config) (*Watcher, error) {
	dir := cfg.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch directory: %w", err)
	}

	// Invalid globs fail here, not silently at match time.
	if err := validatePatterns(cfg.Patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  ignores,
		debounce: cfg.Debounce,
		dir:      abs,
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}

	if err := w.addDirectories(); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks.
// Returns nil on cancellation. Run must be called at most once.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watcher already running")
	}
	defer w.fsw.Close()

	l := log.FromContext(ctx)
	pending := make(map[string]struct{})

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch event channel closed")
			}

			rel, err := filepath.Rel(w.dir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			if w.isIgnored(rel) {
				continue
			}

			// Directories created after startup get watched too.
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			if !w.matches(rel) {
				continue
			}

			pending[rel] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)

			l.Debug("rescan triggered", "changed", strconv.Itoa(len(changed)))
			if w.cfg.OnChange != nil {
				if err := w.cfg.OnChange(ctx, changed); err != nil {
					l.Printf("warning: rescan failed: %v\n", err)
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch error channel closed")
			}
			l.Printf("warning: watch error: %v\n", err)
		}
	}
}

// addDirectories registers every non-ignored directory under the root.
// Inaccessible paths are skipped. Pattern filtering happens per event, not
// here, so files matching a pattern in any subdirectory are seen.
func (w *Watcher) addDirectories() error {
	return filepath.WalkDir(w.dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil || !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.dir, path)
		if err != nil {
			return nil
		}
		if rel != "." && (w.isIgnored(rel) || w.isIgnored(rel+"/")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// maybeAddDir registers a newly created directory.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return
	}
	if w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}
	// Best effort; a failed add surfaces later as missed events.
	_ = w.fsw.Add(path)
}

func (w *Watcher) isIgnored(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if ok, err := doublestar.Match(pat, normalized); err == nil && ok {
			return true
		}
	}
	return false
}

// matches reports whether rel matches a watch pattern. No patterns means
// everything matches.
func (w *Watcher) matches(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	normalized := filepath.ToSlash(rel)
	for _, pat := range w.cfg.Patterns {
		if ok, err := doublestar.Match(pat, normalized); err == nil && ok {
			return true
		}
	}
	return false
}

func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if _, err := doublestar.Match(pat, ""); err != nil {
			return fmt.Errorf("invalid %s pattern %q: %w", label, pat, err)
		}
	}
	return nil
}
