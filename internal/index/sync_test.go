package index

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/averyk/folio/internal/storage"
)

const postDoc = `---
title: Watch Me
description: A post for sync tests.
date: 2025-01-02
author: Avery
category: engineering
tags:
  - go
---
Body with searchable prose.
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func syncEnv(t *testing.T) (string, storage.Provider, *DB) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, store, testDB(t)
}

func writePost(t *testing.T, root, name, doc string) {
	t.Helper()
	dir := filepath.Join(root, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSyncIndexesNewPosts(t *testing.T) {
	root, store, db := syncEnv(t)
	writePost(t, root, "watch-me.md", postDoc)

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	cs, err := db.AllChecksums()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cs["watch-me"]; !ok {
		t.Errorf("post not indexed, checksums = %v", cs)
	}
}

func TestSyncRemovesStaleEntries(t *testing.T) {
	root, store, db := syncEnv(t)
	writePost(t, root, "temp.md", postDoc)
	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(filepath.Join(root, "posts", "temp.md")); err != nil {
		t.Fatal(err)
	}
	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatal(err)
	}
	cs, _ := db.AllChecksums()
	if _, ok := cs["temp"]; ok {
		t.Error("stale entry survived sync")
	}
}

func TestSyncSkipsInvalidFiles(t *testing.T) {
	root, store, db := syncEnv(t)
	writePost(t, root, "broken.md", "---\ntitle: Only A Title\n---\nbody\n")

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync must not fail on a bad file: %v", err)
	}
	cs, _ := db.AllChecksums()
	if len(cs) != 0 {
		t.Errorf("invalid file was indexed: %v", cs)
	}
}

func TestSyncMissingPostsDirIsNoop(t *testing.T) {
	_, store, db := syncEnv(t)
	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync on empty store: %v", err)
	}
}
