package index

import (
	"os"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "folio-index-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func row(slug, title string, published bool) PostRow {
	return PostRow{
		Slug:      slug,
		Title:     title,
		Category:  "engineering",
		Tags:      []string{"go"},
		Checksum:  "cs-" + slug,
		Published: published,
		Date:      time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestUpsertAndSearch(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertPost(row("hello", "Hello World", true), "a body about goroutines"); err != nil {
		t.Fatalf("UpsertPost: %v", err)
	}

	results, err := db.Search("goroutines", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "hello" {
		t.Errorf("results = %v", results)
	}
}

func TestUnpublishedExcludedFromSearch(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertPost(row("draft", "Secret Draft", false), "unreleased writing"); err != nil {
		t.Fatalf("UpsertPost: %v", err)
	}
	results, err := db.Search("unreleased", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("draft leaked into search: %v", results)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	db := testDB(t)
	r := row("twice", "Twice", true)
	if err := db.UpsertPost(r, "same body"); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertPost(r, "same body"); err != nil {
		t.Fatal(err)
	}
	results, err := db.Search("same", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("expected a single hit after re-upsert, got %d", len(results))
	}
}

func TestDeleteAndChecksums(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertPost(row("a", "A", true), "body a")
	_ = db.UpsertPost(row("b", "B", true), "body b")

	cs, err := db.AllChecksums()
	if err != nil {
		t.Fatalf("AllChecksums: %v", err)
	}
	if len(cs) != 2 || cs["a"] != "cs-a" {
		t.Errorf("checksums = %v", cs)
	}

	if err := db.DeletePost("a"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	cs, _ = db.AllChecksums()
	if _, ok := cs["a"]; ok {
		t.Error("deleted post still indexed")
	}
}
