package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/averyk/folio/internal/content"
	"github.com/averyk/folio/internal/storage"
)

// EventCallback is called after a watcher-driven content change.
// kind is one of "created", "updated", "deleted"; path is relative to the
// content root (e.g. "posts/launch.md").
type EventCallback func(kind, path string)

// Watch starts an fsnotify watcher on the content root and processes file
// change events until ctx is cancelled. Post files keep the search index
// current; changes in every category are forwarded to cb (if non-nil) so
// that connected clients can refresh.
//
// New directories created at runtime are automatically added to the watch
// list. Rename events trigger a debounced reconciliation pass that removes
// stale index entries whose files no longer exist on disk.
func Watch(ctx context.Context, db *DB, store storage.Provider, contentRoot string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, contentRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", contentRoot))

	// reconcileTimer debounces rename reconciliation.
	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(200 * time.Millisecond)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(200 * time.Millisecond)
		}
	}

	notify := func(kind, rel string) {
		if cb != nil {
			cb(kind, rel)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcilePosts(db, store, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			// New directories join the watch list.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					}
					indexNewDir(db, store, contentRoot, absPath, logger, cb)
					continue
				}
			}

			if !strings.HasSuffix(absPath, ".md") {
				continue
			}

			rel, relErr := filepath.Rel(contentRoot, absPath)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			isPost := strings.HasPrefix(rel, content.DirPosts+"/")

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				kind := "updated"
				if ev.Op&fsnotify.Create != 0 {
					kind = "created"
				}
				if isPost {
					data, readErr := store.Read(rel)
					if readErr != nil {
						logger.Warn("watcher: read failed", slog.String("path", rel), slog.String("error", readErr.Error()))
						continue
					}
					slug := content.SlugFromPath(content.DirPosts, rel)
					if idxErr := indexPost(db, slug, data); idxErr != nil {
						logger.Warn("watcher: index failed", slog.String("path", rel), slog.String("error", idxErr.Error()))
					}
				}
				logger.Debug("watcher: change", slog.String("path", rel), slog.String("op", kind))
				notify(kind, rel)

			case ev.Op&fsnotify.Remove != 0:
				if isPost {
					slug := content.SlugFromPath(content.DirPosts, rel)
					if delErr := db.DeletePost(slug); delErr != nil {
						logger.Warn("watcher: delete failed", slog.String("path", rel), slog.String("error", delErr.Error()))
					}
				}
				logger.Debug("watcher: deleted", slog.String("path", rel))
				notify("deleted", rel)

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify fires Rename on the OLD path only; the new path
				// arrives as a separate Create event. Drop the old index
				// entry now and schedule a reconciliation pass for
				// stragglers.
				if isPost {
					slug := content.SlugFromPath(content.DirPosts, rel)
					if delErr := db.DeletePost(slug); delErr != nil {
						logger.Warn("watcher: rename delete failed", slog.String("path", rel), slog.String("error", delErr.Error()))
					}
				}
				notify("deleted", rel)
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcilePosts does a lightweight sync using batch lookups: index
// entries without a file on disk are removed, and on-disk posts that are
// missing or changed are re-indexed.
func reconcilePosts(db *DB, store storage.Provider, logger *slog.Logger, cb EventCallback) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	infos, err := store.List(content.DirPosts)
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(infos))
	for _, fi := range infos {
		disk[content.SlugFromPath(content.DirPosts, fi.Path)] = fi.Checksum
	}

	for slug := range checksums {
		if _, ok := disk[slug]; !ok {
			if delErr := db.DeletePost(slug); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("slug", slug))
				if cb != nil {
					cb("deleted", content.DirPosts+"/"+slug+".md")
				}
			}
		}
	}

	for slug, cs := range disk {
		if checksums[slug] == cs {
			continue
		}
		rel := content.DirPosts + "/" + slug + ".md"
		data, readErr := store.Read(rel)
		if readErr != nil {
			continue
		}
		if idxErr := indexPost(db, slug, data); idxErr == nil {
			logger.Debug("reconcile: indexed", slog.String("slug", slug))
			if cb != nil {
				cb("created", rel)
			}
		}
	}
}

// indexNewDir indexes any post files found in a newly created directory.
func indexNewDir(db *DB, store storage.Provider, contentRoot, dirPath string, logger *slog.Logger, cb EventCallback) {
	_ = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, relErr := filepath.Rel(contentRoot, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !strings.HasPrefix(rel, content.DirPosts+"/") {
			if cb != nil {
				cb("created", rel)
			}
			return nil
		}
		data, readErr := store.Read(rel)
		if readErr != nil {
			return nil
		}
		slug := content.SlugFromPath(content.DirPosts, rel)
		if idxErr := indexPost(db, slug, data); idxErr == nil {
			logger.Debug("watcher: indexed from new dir", slog.String("slug", slug))
			if cb != nil {
				cb("created", rel)
			}
		}
		return nil
	})
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
