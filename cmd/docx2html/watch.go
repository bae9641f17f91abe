package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-docx2html/internal/config"
	"github.com/alnah/go-docx2html/internal/layout"
)

const defaultDebounce = 500 * time.Millisecond

// runWatchCmd builds every guide, then rebuilds the guides of documents that
// change until interrupted.
func runWatchCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return parseErr(err)
	}
	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	debounce, err := config.ParseDuration("watch.debounce", cfg.Watch.Debounce)
	if err != nil {
		return err
	}
	if debounce == 0 {
		debounce = defaultDebounce
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	if info, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("%w: %v", ErrReadSource, err)
	} else if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrWatchInput, inputPath)
	}

	b, err := newBuilder(cfg, inputPath, env, logger)
	if err != nil {
		return err
	}
	defer b.close()

	w := &watcher{b: b, env: env, log: logger, quiet: flags.common.quiet, verbose: flags.common.verbose, debounce: debounce}
	w.fullBuild(ctx)
	return w.run(ctx)
}

// watcher owns the pending change set; events, timer and rebuilds are all
// handled on the run goroutine.
type watcher struct {
	b        *builder
	env      *Environment
	log      *slog.Logger
	quiet    bool
	verbose  bool
	debounce time.Duration

	pending map[string]bool
	rescan  bool
}

func (w *watcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer fsw.Close()
	addDirsRecursive(fsw, w.b.input, w.log)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	w.pending = make(map[string]bool)
	w.log.Info("watching for changes", "dir", w.b.input, "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watch stopped")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(fsw, ev) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)
		case <-timer.C:
			w.rebuild(ctx)
		}
	}
}

// handleEvent records a change and reports whether a rebuild is due.
func (w *watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) bool {
	if shouldIgnoreEvent(ev.Name) || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(fsw, ev.Name, w.log)
			w.rescan = true
			return true
		}
	}
	if _, ok := layout.FormatOf(ev.Name); !ok || w.b.isOutput(ev.Name) {
		return false
	}
	w.log.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
	w.pending[ev.Name] = true
	return true
}

func (w *watcher) fullBuild(ctx context.Context) {
	jobs, err := w.b.plan()
	if err != nil {
		w.log.Warn("initial build", "error", err)
		return
	}
	printResults(w.b.build(ctx, jobs), w.quiet, w.verbose, w.env)
}

// rebuild converts the pending documents in path order, or everything after
// a new directory appeared.
func (w *watcher) rebuild(ctx context.Context) {
	if w.rescan {
		w.rescan = false
		clear(w.pending)
		w.fullBuild(ctx)
		return
	}

	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	clear(w.pending)
	sort.Strings(paths)

	var jobs []guideJob
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		job, err := w.b.planFile(p)
		if err != nil {
			w.log.Warn("skipped", "path", p, "error", err)
			continue
		}
		jobs = append(jobs, job)
	}
	if len(jobs) > 0 {
		printResults(w.b.build(ctx, jobs), w.quiet, w.verbose, w.env)
	}
}

func addDirsRecursive(fsw *fsnotify.Watcher, root string, log *slog.Logger) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			log.Warn("watch add failed", "dir", path, "error", err)
		}
		return nil
	})
}

// shouldIgnoreEvent drops hidden files, Office lock files and editor swap
// files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasPrefix(base, "~$") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".tmp") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"))
}
