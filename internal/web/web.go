// Package web renders the HTML pages of the site from embedded templates.
package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/averyk/folio/internal/apperr"
	"github.com/averyk/folio/internal/content"
	"github.com/averyk/folio/internal/siteservice"
)

// SiteData is the site metadata every page receives.
type SiteData struct {
	Name          string
	Tagline       string
	ContactEmail  string
	SchedulingURL string
}

// Handler renders HTML pages.
type Handler struct {
	svc    *siteservice.Service
	site   SiteData
	tmpl   *template.Template
	md     goldmark.Markdown
	logger *slog.Logger
}

// NewHandler creates the page handler with templates parsed from the
// embedded filesystem.
func NewHandler(svc *siteservice.Service, site SiteData, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &Handler{svc: svc, site: site, tmpl: tmpl, md: md, logger: logger}, nil
}

// Routes mounts the page routes on a fresh router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/blog", h.Blog)
	r.Get("/blog/*", h.BlogPost)
	r.Get("/ventures", h.Ventures)
	r.Get("/ventures/*", h.VentureDetail)
	r.Get("/experience", h.Experience)
	return r
}

// anchorIDs makes goldmark heading ids match the table-of-contents
// anchors derived by the content package.
type anchorIDs struct {
	used map[string]bool
}

func newAnchorIDs() *anchorIDs {
	return &anchorIDs{used: map[string]bool{}}
}

func (a *anchorIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	base := content.Anchor(string(value))
	if base == "" {
		base = "section"
	}
	id := base
	for i := 1; a.used[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	a.used[id] = true
	return []byte(id)
}

func (a *anchorIDs) Put(_ []byte) {}

// renderMarkdown converts a Markdown body to HTML with stable heading ids.
func (h *Handler) renderMarkdown(body string) (template.HTML, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(newAnchorIDs()))
	if err := h.md.Convert([]byte(body), &buf, parser.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("web: render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark output over trusted local content
}

type pageData struct {
	Site  SiteData
	Title string
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("web: render failed", slog.String("template", name), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_ = h.tmpl.ExecuteTemplate(w, "notfound", pageData{Site: h.site, Title: "Not Found"})
}

// Home renders the landing page: featured ventures, recent posts, and the
// experience timeline.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ventures, err := h.svc.Ventures(r.Context(), siteservice.VentureFilter{FeaturedOnly: true})
	if err != nil {
		h.fail(w, "home ventures", err)
		return
	}
	posts, _, err := h.svc.ListPosts(r.Context(), siteservice.ListOptions{Limit: 3})
	if err != nil {
		h.fail(w, "home posts", err)
		return
	}
	experience, err := h.svc.Experience(r.Context())
	if err != nil {
		h.fail(w, "home experience", err)
		return
	}
	h.render(w, "home", struct {
		pageData
		Ventures   []content.Venture
		Posts      []postCard
		Experience []content.Experience
	}{
		pageData:   pageData{Site: h.site, Title: h.site.Name},
		Ventures:   ventures,
		Posts:      h.cards(posts),
		Experience: experience,
	})
}

type postCard struct {
	content.Post
	ReadingTime string
}

func (h *Handler) cards(posts []content.Post) []postCard {
	out := make([]postCard, len(posts))
	for i, p := range posts {
		out[i] = postCard{Post: p, ReadingTime: h.svc.ReadingTimeOf(p)}
	}
	return out
}

// Blog renders the post index.
func (h *Handler) Blog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	posts, _, err := h.svc.ListPosts(r.Context(), siteservice.ListOptions{
		Tag:      q.Get("tag"),
		Category: q.Get("category"),
	})
	if err != nil {
		h.fail(w, "blog index", err)
		return
	}
	h.render(w, "blog", struct {
		pageData
		Posts []postCard
	}{
		pageData: pageData{Site: h.site, Title: "Blog"},
		Posts:    h.cards(posts),
	})
}

// BlogPost renders a single post page.
func (h *Handler) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "*")
	post, err := h.svc.GetPost(r.Context(), slug, false)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.notFound(w)
			return
		}
		h.fail(w, "blog post", err)
		return
	}
	html, err := h.renderMarkdown(post.Body)
	if err != nil {
		h.fail(w, "blog post markdown", err)
		return
	}
	h.render(w, "post", struct {
		pageData
		Post *siteservice.PostDetail
		HTML template.HTML
	}{
		pageData: pageData{Site: h.site, Title: post.Title},
		Post:     post,
		HTML:     html,
	})
}

// Ventures renders the full venture listing.
func (h *Handler) Ventures(w http.ResponseWriter, r *http.Request) {
	ventures, err := h.svc.Ventures(r.Context(), siteservice.VentureFilter{})
	if err != nil {
		h.fail(w, "ventures", err)
		return
	}
	h.render(w, "ventures", struct {
		pageData
		Ventures []content.Venture
	}{
		pageData: pageData{Site: h.site, Title: "Ventures"},
		Ventures: ventures,
	})
}

// VentureDetail renders a single venture page.
func (h *Handler) VentureDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "*")
	v, err := h.svc.GetVenture(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.notFound(w)
			return
		}
		h.fail(w, "venture detail", err)
		return
	}
	html, err := h.renderMarkdown(v.Body)
	if err != nil {
		h.fail(w, "venture markdown", err)
		return
	}
	h.render(w, "venture", struct {
		pageData
		Venture *content.Venture
		HTML    template.HTML
	}{
		pageData: pageData{Site: h.site, Title: v.Title},
		Venture:  v,
		HTML:     html,
	})
}

// Experience renders the experience timeline.
func (h *Handler) Experience(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Experience(r.Context())
	if err != nil {
		h.fail(w, "experience", err)
		return
	}
	h.render(w, "experience", struct {
		pageData
		Experience []content.Experience
	}{
		pageData:   pageData{Site: h.site, Title: "Experience"},
		Experience: entries,
	})
}

func (h *Handler) fail(w http.ResponseWriter, where string, err error) {
	h.logger.Error("web: "+where+" failed", slog.String("error", err.Error()))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
