// Package siteservice coordinates the content loader and the search index
// for the API and page layers.
package siteservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/averyk/folio/internal/apperr"
	"github.com/averyk/folio/internal/content"
	"github.com/averyk/folio/internal/index"
	"github.com/averyk/folio/internal/storage"
)

// PostDetail is the full representation of one blog post, including the
// derived view fields the presentation layer needs.
type PostDetail struct {
	content.Post
	Body        string            `json:"body"`
	ReadingTime string            `json:"reading_time"`
	Toc         []content.Heading `json:"toc"`
}

// ListOptions controls post listings.
type ListOptions struct {
	Tag                string
	Category           string
	IncludeUnpublished bool
	Limit              int
	Offset             int
}

// VentureFilter controls venture listings.
type VentureFilter struct {
	FeaturedOnly bool
	Status       string
}

// Service loads content on demand and delegates search to the index.
// Every load re-reads the filesystem; there is no cache here and therefore
// nothing to invalidate.
type Service struct {
	loader *content.Loader
	store  storage.Provider
	db     index.PostIndex
	logger *slog.Logger
}

// NewService creates a new site service.
func NewService(store storage.Provider, db index.PostIndex, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		loader: content.NewLoader(store, logger),
		store:  store,
		db:     db,
		logger: logger,
	}
}

// ListPosts returns ordered, filtered posts plus the total count before
// pagination. Unpublished posts are excluded unless explicitly requested.
func (s *Service) ListPosts(_ context.Context, opts ListOptions) ([]content.Post, int, error) {
	posts, err := s.loader.Posts()
	if err != nil {
		return nil, 0, err
	}
	if !opts.IncludeUnpublished {
		posts = content.Published(posts)
	}
	if opts.Tag != "" {
		posts = content.WithTag(posts, opts.Tag)
	}
	if opts.Category != "" {
		posts = content.WithCategory(posts, opts.Category)
	}
	content.SortPosts(posts)

	total := len(posts)
	if opts.Offset > 0 {
		if opts.Offset >= len(posts) {
			posts = nil
		} else {
			posts = posts[opts.Offset:]
		}
	}
	if opts.Limit > 0 && opts.Limit < len(posts) {
		posts = posts[:opts.Limit]
	}
	return posts, total, nil
}

// GetPost reads one post by slug and derives its view fields. Unknown
// slugs, invalid files, and unpublished posts all surface as ErrNotFound:
// a record that cannot be fully parsed is never served partially.
func (s *Service) GetPost(_ context.Context, slug string, includeUnpublished bool) (*PostDetail, error) {
	data, err := s.store.Read(content.DirPosts + "/" + slug + ".md")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	p, err := content.DecodePost(slug, data)
	if err != nil {
		s.logger.Warn("siteservice: invalid post requested",
			slog.String("slug", slug), slog.String("error", err.Error()))
		return nil, apperr.ErrNotFound
	}
	if !p.Published && !includeUnpublished {
		return nil, apperr.ErrNotFound
	}
	return &PostDetail{
		Post:        *p,
		Body:        p.Body,
		ReadingTime: content.ReadingTime(p.Body),
		Toc:         content.TableOfContents(p.Body),
	}, nil
}

// Experience returns all experience entries in presentation order.
func (s *Service) Experience(_ context.Context) ([]content.Experience, error) {
	entries, err := s.loader.Experience()
	if err != nil {
		return nil, err
	}
	content.SortExperience(entries)
	return entries, nil
}

// GetExperience reads one experience entry by slug.
func (s *Service) GetExperience(_ context.Context, slug string) (*content.Experience, error) {
	data, err := s.store.Read(content.DirExperience + "/" + slug + ".md")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	e, err := content.DecodeExperience(slug, data)
	if err != nil {
		s.logger.Warn("siteservice: invalid experience requested",
			slog.String("slug", slug), slog.String("error", err.Error()))
		return nil, apperr.ErrNotFound
	}
	return e, nil
}

// Ventures returns ventures in presentation order with optional filters.
func (s *Service) Ventures(_ context.Context, f VentureFilter) ([]content.Venture, error) {
	ventures, err := s.loader.Ventures()
	if err != nil {
		return nil, err
	}
	if f.FeaturedOnly {
		ventures = content.FeaturedVentures(ventures)
	}
	if f.Status != "" {
		ventures = content.VenturesWithStatus(ventures, f.Status)
	}
	content.SortVentures(ventures)
	return ventures, nil
}

// GetVenture reads one venture by slug.
func (s *Service) GetVenture(_ context.Context, slug string) (*content.Venture, error) {
	data, err := s.store.Read(content.DirVentures + "/" + slug + ".md")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	v, err := content.DecodeVenture(slug, data)
	if err != nil {
		s.logger.Warn("siteservice: invalid venture requested",
			slog.String("slug", slug), slog.String("error", err.Error()))
		return nil, apperr.ErrNotFound
	}
	return v, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// ReadingTimeOf exposes the reading-time derivation for list views.
func (s *Service) ReadingTimeOf(p content.Post) string {
	return content.ReadingTime(p.Body)
}

// Reindexer rebuilds the search index from the content store. Wired to
// the admin endpoint; the watcher handles the steady state.
type Reindexer struct {
	DB     *index.DB
	Store  storage.Provider
	Logger *slog.Logger
}

// Reindex runs a full sync and reports its duration.
func (r *Reindexer) Reindex(_ context.Context) (time.Duration, error) {
	start := time.Now()
	if err := index.Sync(r.DB, r.Store, r.Logger); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
