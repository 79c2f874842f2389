package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/averyk/folio/internal/apperr"
	"github.com/averyk/folio/internal/mail"
	"github.com/averyk/folio/internal/siteservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc       *siteservice.Service
	reindexer *siteservice.Reindexer
	sender    mail.Sender
	site      SiteInfo
}

// NewHandler creates a new Handler.
func NewHandler(svc *siteservice.Service, reindexer *siteservice.Reindexer, sender mail.Sender, site SiteInfo) *Handler {
	return &Handler{svc: svc, reindexer: reindexer, sender: sender, site: site}
}

// slugParam extracts the content slug from the URL (everything after the
// route prefix). Nested slugs like 2025/launch arrive through the chi
// wildcard; encoded slashes from clients are unescaped.
func slugParam(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListPosts handles GET /api/posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	posts, total, err := h.svc.ListPosts(r.Context(), siteservice.ListOptions{
		Tag:      q.Get("tag"),
		Category: q.Get("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		slog.Error("list posts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	items := make([]PostListItem, len(posts))
	for i, p := range posts {
		items[i] = PostListItem{
			Slug:        p.Slug,
			Title:       p.Title,
			Description: p.Description,
			Date:        p.Date,
			Author:      p.Author,
			Category:    p.Category,
			Tags:        p.Tags,
			Featured:    p.Featured,
			ReadingTime: h.svc.ReadingTimeOf(p),
		}
	}
	writeJSON(w, http.StatusOK, PostListResponse{Posts: items, Total: total})
}

// GetPost handles GET /api/posts/*.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	post, err := h.svc.GetPost(r.Context(), slug, false)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get post failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ListExperience handles GET /api/experience.
func (h *Handler) ListExperience(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Experience(r.Context())
	if err != nil {
		slog.Error("list experience failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"experience": entries})
}

// GetExperience handles GET /api/experience/*.
func (h *Handler) GetExperience(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	e, err := h.svc.GetExperience(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get experience failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// ListVentures handles GET /api/ventures.
func (h *Handler) ListVentures(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ventures, err := h.svc.Ventures(r.Context(), siteservice.VentureFilter{
		FeaturedOnly: q.Get("featured") == "true",
		Status:       q.Get("status"),
	})
	if err != nil {
		slog.Error("list ventures failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	items := make([]VentureItem, len(ventures))
	for i, v := range ventures {
		items[i] = VentureItem{Venture: v, Glyph: v.Icon.Glyph()}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ventures": items})
}

// GetVenture handles GET /api/ventures/*.
func (h *Handler) GetVenture(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	v, err := h.svc.GetVenture(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get venture failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, VentureItem{Venture: *v, Glyph: v.Icon.Glyph()})
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	items := make([]SearchResultItem, len(results))
	for i, res := range results {
		items[i] = SearchResultItem{Slug: res.Slug, Title: res.Title, Snippet: res.Snippet}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: items})
}

// Site handles GET /api/site.
func (h *Handler) Site(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.site)
}

// Contact handles POST /api/contact.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	err := h.sender.Send(mail.Message{Name: req.Name, Email: req.Email, Content: req.Message})
	if err != nil {
		if errors.Is(err, apperr.ErrUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, errorBody("contact is not configured"))
			return
		}
		slog.Error("contact send failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("failed to send message"))
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

// Reindex handles POST /api/admin/reindex (Bearer-token guarded).
func (h *Handler) Reindex(w http.ResponseWriter, r *http.Request) {
	took, err := h.reindexer.Reindex(r.Context())
	if err != nil {
		slog.Error("reindex failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "took": took.String()})
}
