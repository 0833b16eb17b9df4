package cache

import (
	"log/slog"
	"testing"
	"time"

	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

func testBook() *wikidocs.Book {
	return &wikidocs.Book{
		ID:      7,
		Subject: "Test book",
		Pages: []*wikidocs.Page{
			{ID: 1, Subject: "1. First", Children: []*wikidocs.Page{
				{ID: 2, Subject: "1.1 Child"},
			}},
		},
	}
}

func newTestStore(t *testing.T, maxAge time.Duration) *Store {
	t.Helper()
	store, err := New(t.TempDir(), maxAge, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t, time.Hour)
	book := testBook()

	if err := store.Save(book.ID, book); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(book.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for a cached book")
	}
	if loaded.Subject != book.Subject || len(loaded.Pages) != 1 {
		t.Errorf("loaded book = %+v, want subject %q with 1 top-level page", loaded, book.Subject)
	}
	if len(loaded.Pages[0].Children) != 1 || loaded.Pages[0].Children[0].ID != 2 {
		t.Error("page tree did not survive the round trip")
	}
}

func TestLoadMissing(t *testing.T) {
	store := newTestStore(t, time.Hour)

	book, err := store.Load(404)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if book != nil {
		t.Errorf("Load of missing book = %+v, want nil", book)
	}
}

func TestIsValid(t *testing.T) {
	store := newTestStore(t, time.Hour)
	book := testBook()

	if store.IsValid(book.ID) {
		t.Error("book valid before Save")
	}
	if err := store.Save(book.ID, book); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !store.IsValid(book.ID) {
		t.Error("book invalid right after Save")
	}
}

func TestIsValid_Expired(t *testing.T) {
	store := newTestStore(t, time.Nanosecond)
	book := testBook()

	if err := store.Save(book.ID, book); err != nil {
		t.Fatalf("Save: %v", err)
	}
	time.Sleep(time.Millisecond)
	if store.IsValid(book.ID) {
		t.Error("book still valid past the validity window")
	}
}

func TestInvalidate(t *testing.T) {
	store := newTestStore(t, time.Hour)
	book := testBook()

	if err := store.Save(book.ID, book); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Invalidate(book.ID); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	if store.IsValid(book.ID) {
		t.Error("book valid after Invalidate")
	}
	loaded, err := store.Load(book.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != nil {
		t.Error("book still loadable after Invalidate")
	}

	// Invalidating an absent entry is not an error.
	if err := store.Invalidate(book.ID); err != nil {
		t.Errorf("second Invalidate: %v", err)
	}
}

func TestInfo(t *testing.T) {
	store := newTestStore(t, time.Hour)
	book := testBook()

	if info := store.Info(book.ID); info.Cached {
		t.Error("Info reports cached before Save")
	}

	if err := store.Save(book.ID, book); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info := store.Info(book.ID)
	if !info.Cached || !info.Valid {
		t.Errorf("Info = %+v, want cached and valid", info)
	}
	if info.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2 (whole subtree counted)", info.TotalPages)
	}
	if info.BookSubject != book.Subject {
		t.Errorf("BookSubject = %q, want %q", info.BookSubject, book.Subject)
	}
}
