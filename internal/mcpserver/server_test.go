package mcpserver

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/averyk/folio/internal/index"
	"github.com/averyk/folio/internal/testutil"
)

const tsPost = `---
title: Hello TypeScript
description: Notes on generics
date: 2024-03-01
author: Avery
category: engineering
tags: [typescript]
---

Generics are structural in TypeScript.
`

const draftPost = `---
title: Unfinished draft
description: wip
date: 2024-06-01
author: Avery
category: engineering
tags: [wip]
published: false
---

Not ready.
`

func testServer(t *testing.T) *Server {
	t.Helper()
	root, store := testutil.TestContentDir(t)
	testutil.WriteFile(t, root, "posts/hello-typescript.md", tsPost)
	testutil.WriteFile(t, root, "posts/draft.md", draftPost)
	db := testutil.TestDB(t)
	if err := index.Sync(db, store, slog.Default()); err != nil {
		t.Fatal(err)
	}
	return New(store, db)
}

func callReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
	if len(res.Content) == 0 {
		t.Fatal("tool returned no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func TestListPostsExcludesDrafts(t *testing.T) {
	s := testServer(t)

	res, err := s.listPosts(context.Background(), callReq(nil))
	if err != nil {
		t.Fatal(err)
	}
	out := textOf(t, res)
	if !strings.Contains(out, "hello-typescript") {
		t.Errorf("published post missing from listing: %s", out)
	}
	if strings.Contains(out, "draft") {
		t.Errorf("unpublished post leaked into listing: %s", out)
	}
}

func TestReadPost(t *testing.T) {
	s := testServer(t)

	res, err := s.readPost(context.Background(), callReq(map[string]any{"slug": "hello-typescript"}))
	if err != nil {
		t.Fatal(err)
	}
	if out := textOf(t, res); !strings.Contains(out, "Generics are structural") {
		t.Errorf("unexpected body: %s", out)
	}

	res, err = s.readPost(context.Background(), callReq(map[string]any{"slug": "nope"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected error result for unknown slug")
	}
}

func TestSearchPosts(t *testing.T) {
	s := testServer(t)

	res, err := s.searchPosts(context.Background(), callReq(map[string]any{"query": "generics"}))
	if err != nil {
		t.Fatal(err)
	}
	if out := textOf(t, res); !strings.Contains(out, "hello-typescript") {
		t.Errorf("search did not find post: %s", out)
	}
}
