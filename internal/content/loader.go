package content

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/averyk/folio/internal/storage"
)

// Category directories under the content root.
const (
	DirPosts      = "posts"
	DirExperience = "experience"
	DirVentures   = "ventures"
)

// Loader reads a content category from storage and returns the valid
// records. Every call re-reads from storage; the filesystem is the only
// source of truth and nothing is cached here.
//
// A file that fails to parse or validate is logged and skipped. That is a
// local degradation, never a fatal error for the whole load.
type Loader struct {
	store  storage.Provider
	logger *slog.Logger
}

// NewLoader creates a Loader over the given store.
func NewLoader(store storage.Provider, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, logger: logger}
}

// Posts returns every valid blog post, unordered.
func (l *Loader) Posts() ([]Post, error) {
	var out []Post
	err := l.each(DirPosts, func(slug string, data []byte) {
		p, err := DecodePost(slug, data)
		if err != nil {
			l.skip(DirPosts, slug, err)
			return
		}
		out = append(out, *p)
	})
	return out, err
}

// Experience returns every valid experience entry, unordered.
func (l *Loader) Experience() ([]Experience, error) {
	var out []Experience
	err := l.each(DirExperience, func(slug string, data []byte) {
		e, err := DecodeExperience(slug, data)
		if err != nil {
			l.skip(DirExperience, slug, err)
			return
		}
		out = append(out, *e)
	})
	return out, err
}

// Ventures returns every valid venture entry, unordered.
func (l *Loader) Ventures() ([]Venture, error) {
	var out []Venture
	err := l.each(DirVentures, func(slug string, data []byte) {
		v, err := DecodeVenture(slug, data)
		if err != nil {
			l.skip(DirVentures, slug, err)
			return
		}
		out = append(out, *v)
	})
	return out, err
}

// each reads every file in a category directory and hands it to fn.
// Unreadable files are logged and skipped.
func (l *Loader) each(dir string, fn func(slug string, data []byte)) error {
	infos, err := l.store.List(dir)
	if err != nil {
		return fmt.Errorf("content: list %s: %w", dir, err)
	}
	for _, fi := range infos {
		data, err := l.store.Read(fi.Path)
		if err != nil {
			l.logger.Warn("content: read failed",
				slog.String("path", fi.Path),
				slog.String("error", err.Error()))
			continue
		}
		fn(SlugFromPath(dir, fi.Path), data)
	}
	return nil
}

func (l *Loader) skip(dir, slug string, err error) {
	l.logger.Warn("content: invalid file skipped",
		slog.String("category", dir),
		slog.String("slug", slug),
		slog.String("error", err.Error()))
}

// SlugFromPath derives the record identifier from a storage path: the
// path within its category directory, minus the .md extension. One file,
// one identifier; uniqueness within a category is enforced by the
// filesystem itself.
func SlugFromPath(dir, path string) string {
	rel := strings.TrimPrefix(path, dir+"/")
	return strings.TrimSuffix(rel, ".md")
}
