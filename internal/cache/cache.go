// Package cache stores fetched book trees on disk so repeated tool calls
// do not refetch large page forests from the API.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ychoi-kr/wikidocs-mcp/internal/booktree"
	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

// DefaultMaxAge is how long a cached book stays valid without a refresh.
const DefaultMaxAge = 24 * time.Hour

// Store is a per-book JSON file cache. Each book gets a data file and a
// sidecar meta file recording when it was cached.
type Store struct {
	dir    string
	maxAge time.Duration
	log    *slog.Logger
}

// Meta is the sidecar metadata written next to each cached book.
type Meta struct {
	CachedAt    time.Time `json:"cached_at"`
	TotalPages  int       `json:"total_pages"`
	BookSubject string    `json:"book_subject"`
	Checksum    string    `json:"checksum"`
}

// Info describes the cache state for one book.
type Info struct {
	Cached      bool      `json:"cached"`
	CachedAt    time.Time `json:"cached_at,omitzero"`
	TotalPages  int       `json:"total_pages,omitempty"`
	BookSubject string    `json:"book_subject,omitempty"`
	Valid       bool      `json:"is_valid"`
}

// DefaultDir returns the per-user cache directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "wikidocs_mcp_cache")
	}
	return filepath.Join(home, ".wikidocs_mcp_cache")
}

// New creates a Store rooted at dir, creating it if needed. When dir cannot
// be created a temporary directory is used instead so the server can still
// run, just without a persistent cache.
func New(dir string, maxAge time.Duration, log *slog.Logger) (*Store, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		tmp, tmpErr := os.MkdirTemp("", "wikidocs_mcp_")
		if tmpErr != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		log.Warn("cache dir unavailable, using temporary directory", "dir", dir, "tmp", tmp, "error", err)
		dir = tmp
	}
	return &Store{dir: dir, maxAge: maxAge, log: log}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) dataPath(bookID int) string {
	return filepath.Join(s.dir, "book_"+strconv.Itoa(bookID)+".json")
}

func (s *Store) metaPath(bookID int) string {
	return filepath.Join(s.dir, "book_"+strconv.Itoa(bookID)+"_meta.json")
}

// Save writes a book snapshot and its metadata. Files are written to a temp
// name and renamed so a crashed write never leaves a torn cache entry.
func (s *Store) Save(bookID int, book *wikidocs.Book) error {
	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal book: %w", err)
	}
	if err := writeAtomic(s.dataPath(bookID), data); err != nil {
		return fmt.Errorf("write book cache: %w", err)
	}

	meta := Meta{
		CachedAt:    time.Now(),
		TotalPages:  len(booktree.Flatten(book.Pages)),
		BookSubject: book.Subject,
		Checksum:    fmt.Sprintf("%x", sha256.Sum256(data)),
	}
	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache meta: %w", err)
	}
	if err := writeAtomic(s.metaPath(bookID), metaData); err != nil {
		return fmt.Errorf("write cache meta: %w", err)
	}
	return nil
}

// Load returns the cached book, or nil when no cache entry exists.
func (s *Store) Load(bookID int) (*wikidocs.Book, error) {
	data, err := os.ReadFile(s.dataPath(bookID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read book cache: %w", err)
	}

	var book wikidocs.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("decode book cache: %w", err)
	}
	return &book, nil
}

// IsValid reports whether the cached entry for bookID exists and is younger
// than the validity window. Unreadable metadata counts as invalid, never as
// an error.
func (s *Store) IsValid(bookID int) bool {
	meta, err := s.readMeta(bookID)
	if err != nil {
		return false
	}
	return time.Since(meta.CachedAt) < s.maxAge
}

// Invalidate removes the cache entry for bookID. Missing files are fine.
func (s *Store) Invalidate(bookID int) error {
	for _, path := range []string{s.dataPath(bookID), s.metaPath(bookID)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove cache file: %w", err)
		}
	}
	return nil
}

// Info returns the cache state for bookID.
func (s *Store) Info(bookID int) Info {
	meta, err := s.readMeta(bookID)
	if err != nil {
		return Info{Cached: false}
	}
	return Info{
		Cached:      true,
		CachedAt:    meta.CachedAt,
		TotalPages:  meta.TotalPages,
		BookSubject: meta.BookSubject,
		Valid:       time.Since(meta.CachedAt) < s.maxAge,
	}
}

func (s *Store) readMeta(bookID int) (Meta, error) {
	data, err := os.ReadFile(s.metaPath(bookID))
	if err != nil {
		return Meta{}, err
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		s.log.Warn("unreadable cache meta", "book_id", bookID, "error", err)
		return Meta{}, err
	}
	return meta, nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
