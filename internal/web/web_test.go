package web

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/averyk/folio/internal/siteservice"
	"github.com/averyk/folio/internal/storage"
)

func testHandler(t *testing.T) (string, *Handler) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := siteservice.NewService(store, nil, logger)
	h, err := NewHandler(svc, SiteData{
		Name:          "Avery K",
		ContactEmail:  "hello@example.com",
		SchedulingURL: "https://cal.example.com/avery",
	}, logger)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return root, h
}

func write(t *testing.T, root, rel, data string) {
	t.Helper()
	abs := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

const postDoc = `---
title: Anchors Away
description: A post about anchors.
date: 2025-02-01
author: Avery
category: engineering
tags:
  - go
---
Intro prose.

## Getting Started: Part 1!

Details.
`

const ventureDoc = `---
title: Folio
description: File-backed portfolio server.
icon: rocket
status: active
technologies:
  - go
featured: true
---
`

func TestHomeRendersSections(t *testing.T) {
	root, h := testHandler(t)
	write(t, root, "ventures/folio.md", ventureDoc)
	write(t, root, "posts/anchors.md", postDoc)

	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Folio", "Anchors Away", "hello@example.com", "https://cal.example.com/avery"} {
		if !strings.Contains(body, want) {
			t.Errorf("home missing %q", want)
		}
	}
}

func TestPostPage_TocAnchorsMatchHeadingIDs(t *testing.T) {
	root, h := testHandler(t)
	write(t, root, "posts/anchors.md", postDoc)

	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blog/anchors", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `href="#getting-started-part-1"`) {
		t.Error("toc link missing derived anchor")
	}
	if !strings.Contains(body, `id="getting-started-part-1"`) {
		t.Error("rendered heading id does not match toc anchor")
	}
	if !strings.Contains(body, "1 min read") {
		t.Error("reading time missing")
	}
}

func TestPostPage_UnknownSlugIs404(t *testing.T) {
	_, h := testHandler(t)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blog/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestVenturePage(t *testing.T) {
	root, h := testHandler(t)
	write(t, root, "ventures/folio.md", ventureDoc)

	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ventures/folio", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "File-backed portfolio server.") {
		t.Error("venture description missing")
	}

	w = httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ventures/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown venture status = %d, want 404", w.Code)
	}
}

func TestVenturesPage_FallbackGlyph(t *testing.T) {
	root, h := testHandler(t)
	write(t, root, "ventures/odd.md", strings.Replace(ventureDoc, "icon: rocket", "icon: mystery", 1))

	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ventures", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "■") {
		t.Error("fallback glyph not rendered")
	}
}
