package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
	"git.home.luguber.info/inful/gitsemver/internal/git"
	"git.home.luguber.info/inful/gitsemver/internal/logfields"
)

// WatchCmd implements the 'watch' command: it re-runs the analysis whenever
// the repository's git state changes and prints the version when it differs
// from the previous one.
type WatchCmd struct {
	Path     string        `arg:"" optional:"" default:"." help:"Path to the git repository"`
	Debounce time.Duration `name:"debounce" default:"2s" help:"Quiet period after a change before re-analyzing"`
}

func (w *WatchCmd) Run(_ *Global, _ *CLI) error {
	repo, err := git.Open(w.Path)
	if err != nil {
		return gserrors.GitOpenError(w.Path, err)
	}
	gitDir, err := repo.GitDir()
	if err != nil {
		return gserrors.GitOpenError(w.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return gserrors.InternalError("failed to create file watcher", err)
	}
	defer watcher.Close()

	// HEAD lives in the git dir itself; branch commits and tag updates land
	// under refs. Paths that do not exist yet are skipped.
	for _, p := range []string{
		gitDir,
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	} {
		if err := watcher.Add(p); err != nil {
			slog.Debug("Not watching path", logfields.Path(p), logfields.Error(err))
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var mu sync.Mutex
	last := ""

	analyzeAndPrint := func() {
		// Reopen per run so every analysis sees the current on-disk state.
		res, err := runAnalysis(w.Path, "", "", "")
		if err != nil {
			slog.Error("Analysis failed", logfields.Repository(w.Path), logfields.Error(err))
			return
		}
		version := res.Version.String()

		mu.Lock()
		defer mu.Unlock()
		if version == last {
			return
		}
		last = version
		fmt.Println(version)
	}

	slog.Info("Watching repository",
		logfields.Repository(w.Path),
		slog.Duration("debounce", w.Debounce))
	analyzeAndPrint()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Repository change detected",
				logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.Debounce, analyzeAndPrint)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}
