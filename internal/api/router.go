package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/averyk/folio/internal/mail"
	"github.com/averyk/folio/internal/siteservice"
)

// NewRouter creates a chi router with all API routes mounted. The content
// routes are public; admin routes sit behind Bearer-token auth.
// sseHandler, if non-nil, is mounted at GET /events. contentRoot resolves
// the static assets directory.
func NewRouter(svc *siteservice.Service, reindexer *siteservice.Reindexer, sender mail.Sender,
	site SiteInfo, authEnabled bool, token string, sseHandler http.Handler, contentRoot string) chi.Router {

	h := NewHandler(svc, reindexer, sender, site)
	ah := NewAssetHandler(contentRoot)

	r := chi.NewRouter()

	// Content (public, read-only).
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/*", h.GetPost)
	r.Get("/experience", h.ListExperience)
	r.Get("/experience/*", h.GetExperience)
	r.Get("/ventures", h.ListVentures)
	r.Get("/ventures/*", h.GetVenture)
	r.Get("/search", h.Search)
	r.Get("/site", h.Site)

	// Contact form.
	r.Post("/contact", h.Contact)

	// Static assets.
	r.Get("/assets/{filename}", ah.ServeFile)

	// SSE endpoint.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	// Admin (token-guarded).
	r.Group(func(admin chi.Router) {
		admin.Use(AuthMiddleware(authEnabled, token))
		admin.Post("/admin/reindex", h.Reindex)
	})

	return r
}
