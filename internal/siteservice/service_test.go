package siteservice

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/averyk/folio/internal/apperr"
	"github.com/averyk/folio/internal/testutil"
)

func postFile(title, date string, published bool) string {
	return fmt.Sprintf(`---
title: %s
description: d
date: %s
author: a
category: engineering
tags: [go]
published: %t
---

## First

one two three
`, title, date, published)
}

func testService(t *testing.T) (string, *Service) {
	t.Helper()
	root, store := testutil.TestContentDir(t)
	svc := NewService(store, testutil.TestDB(t), nil)
	return root, svc
}

func TestGetPostDerivedFields(t *testing.T) {
	root, svc := testService(t)
	testutil.WriteFile(t, root, "posts/a.md", postFile("A", "2024-01-01", true))

	detail, err := svc.GetPost(context.Background(), "a", false)
	if err != nil {
		t.Fatal(err)
	}
	if detail.ReadingTime != "1 min read" {
		t.Errorf("reading time = %q", detail.ReadingTime)
	}
	if len(detail.Toc) != 1 || detail.Toc[0].Anchor != "first" {
		t.Errorf("toc = %+v", detail.Toc)
	}
}

func TestGetPostUnpublishedHidden(t *testing.T) {
	root, svc := testService(t)
	testutil.WriteFile(t, root, "posts/hidden.md", postFile("Hidden", "2024-01-01", false))

	if _, err := svc.GetPost(context.Background(), "hidden", false); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetPost(context.Background(), "hidden", true); err != nil {
		t.Fatalf("includeUnpublished should expose the draft: %v", err)
	}
}

func TestListPostsPagination(t *testing.T) {
	root, svc := testService(t)
	for i := 1; i <= 5; i++ {
		slug := fmt.Sprintf("posts/p%d.md", i)
		date := fmt.Sprintf("2024-01-0%d", i)
		testutil.WriteFile(t, root, slug, postFile("P", date, true))
	}

	posts, total, err := svc.ListPosts(context.Background(), ListOptions{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(posts) != 2 {
		t.Fatalf("page size = %d, want 2", len(posts))
	}
	// Newest first: offset 2 of dates 05..01 lands on the 3rd.
	if got := posts[0].Slug; got != "p3" {
		t.Errorf("first of page = %q, want p3", got)
	}
}

func TestGetVentureUnknown(t *testing.T) {
	_, svc := testService(t)
	if _, err := svc.GetVenture(context.Background(), "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
