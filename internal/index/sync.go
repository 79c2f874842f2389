package index

import (
	"log/slog"

	"github.com/averyk/folio/internal/checksum"
	"github.com/averyk/folio/internal/content"
	"github.com/averyk/folio/internal/storage"
)

// Sync walks the posts directory and brings the search index up to date:
//   - new or changed files are parsed and upserted
//   - files removed from disk are deleted from the index
//
// Files that fail to parse are logged and skipped, matching the loader's
// degradation policy.
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	infos, err := store.List(content.DirPosts)
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(infos))
	for _, fi := range infos {
		slug := content.SlugFromPath(content.DirPosts, fi.Path)
		disk[slug] = struct{}{}

		if checksums[slug] == fi.Checksum {
			continue
		}

		data, err := store.Read(fi.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", fi.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexPost(db, slug, data); err != nil {
			logger.Warn("sync: index failed", slog.String("slug", slug), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("slug", slug))
		}
	}

	// Remove stale entries.
	for slug := range checksums {
		if _, ok := disk[slug]; !ok {
			if err := db.DeletePost(slug); err != nil {
				logger.Warn("sync: delete failed", slog.String("slug", slug), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("slug", slug))
			}
		}
	}

	return nil
}

// indexPost parses post data and upserts it into the DB.
func indexPost(db *DB, slug string, data []byte) error {
	p, err := content.DecodePost(slug, data)
	if err != nil {
		return err
	}
	return db.UpsertPost(PostRow{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Tags:        p.Tags,
		Checksum:    checksum.Sum(data),
		Published:   p.Published,
		Date:        p.Date,
	}, p.Body)
}
