// Package search provides relevance search over a book's cached pages and
// a table-of-contents style outline.
package search

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	bq "github.com/blevesearch/bleve/v2/search/query"

	"github.com/ychoi-kr/wikidocs-mcp/internal/booktree"
	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

// DefaultMaxResults caps search results when the caller does not.
const DefaultMaxResults = 20

const previewContext = 100

// Result is one search hit.
type Result struct {
	PageID    int     `json:"id"`
	Subject   string  `json:"subject"`
	Preview   string  `json:"content_preview"`
	Depth     int     `json:"depth"`
	ParentID  int     `json:"parent_id"`
	Seq       int     `json:"seq"`
	Score     float64 `json:"relevance_score"`
	MatchType string  `json:"match_type"`
}

// OutlineEntry is one row of a book structure summary.
type OutlineEntry struct {
	PageID     int    `json:"id"`
	Subject    string `json:"subject"`
	Depth      int    `json:"depth"`
	ParentID   int    `json:"parent_id"`
	Seq        int    `json:"seq"`
	HasContent bool   `json:"has_content"`
}

type bookIndex struct {
	index bleve.Index
	pages map[string]pageRef
}

type pageRef struct {
	page  *wikidocs.Page
	depth int
}

// Searcher maintains one in-memory bleve index per book, built lazily from
// the caller-supplied book snapshot and kept until dropped.
type Searcher struct {
	mu      sync.Mutex
	indexes map[int]*bookIndex
	log     *slog.Logger
}

func New(log *slog.Logger) *Searcher {
	return &Searcher{
		indexes: make(map[int]*bookIndex),
		log:     log,
	}
}

// Search runs a relevance query over the book's page titles and bodies.
// Title matches outrank body matches.
func (s *Searcher) Search(book *wikidocs.Book, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	bi, err := s.indexFor(book)
	if err != nil {
		return nil, err
	}

	subjectQ := bleve.NewMatchQuery(query)
	subjectQ.SetField("subject")
	subjectQ.SetBoost(2.0)
	contentQ := bleve.NewMatchQuery(query)
	contentQ.SetField("content")
	disjuncts := []bq.Query{subjectQ, contentQ}

	// Hangul is indexed as whole whitespace-delimited tokens, so an analyzed
	// match alone misses sub-word queries like "설치" against "설치하기".
	// Wildcard disjuncts match the query anywhere inside an indexed token.
	for _, term := range strings.Fields(strings.ToLower(query)) {
		sw := bleve.NewWildcardQuery("*" + term + "*")
		sw.SetField("subject")
		sw.SetBoost(2.0)
		cw := bleve.NewWildcardQuery("*" + term + "*")
		cw.SetField("content")
		disjuncts = append(disjuncts, sw, cw)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(disjuncts...), limit, 0, false)
	res, err := bi.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search book %d: %w", book.ID, err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ref, ok := bi.pages[hit.ID]
		if !ok {
			continue
		}
		page := ref.page
		results = append(results, Result{
			PageID:    page.ID,
			Subject:   page.Subject,
			Preview:   preview(normalizeText(page.Content), query),
			Depth:     ref.depth,
			ParentID:  page.ParentID,
			Seq:       page.Seq,
			Score:     hit.Score,
			MatchType: matchType(page, query),
		})
	}
	return results, nil
}

// Drop discards the cached index for a book, forcing a rebuild on the next
// search. Call it whenever the book's cache entry is refreshed.
func (s *Searcher) Drop(bookID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bi, ok := s.indexes[bookID]; ok {
		if err := bi.index.Close(); err != nil {
			s.log.Warn("close search index", "book_id", bookID, "error", err)
		}
		delete(s.indexes, bookID)
	}
}

func (s *Searcher) indexFor(book *wikidocs.Book) (*bookIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bi, ok := s.indexes[book.ID]; ok {
		return bi, nil
	}

	mapping := bleve.NewIndexMapping()
	// The CJK analyzer normalizes width and case and bigrams Han and Kana.
	// Hangul stays one token per word; Search compensates with wildcard
	// disjuncts for sub-word queries.
	mapping.DefaultAnalyzer = cjk.AnalyzerName

	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}

	bi := &bookIndex{index: idx, pages: make(map[string]pageRef)}
	batch := idx.NewBatch()
	booktree.Walk(book.Pages, func(page *wikidocs.Page, depth int) {
		id := strconv.Itoa(page.ID)
		bi.pages[id] = pageRef{page: page, depth: depth}
		err := batch.Index(id, map[string]any{
			"subject": normalizeText(page.Subject),
			"content": normalizeText(page.Content),
		})
		if err != nil {
			s.log.Warn("index page", "page_id", page.ID, "error", err)
		}
	})
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("build search index for book %d: %w", book.ID, err)
	}

	s.log.Debug("built search index", "book_id", book.ID, "pages", len(bi.pages))
	s.indexes[book.ID] = bi
	return bi, nil
}

// matchType mirrors the coarse classification exposed to the agent:
// whether the query text appears in the title, the body, or only matched
// after analysis.
func matchType(page *wikidocs.Page, query string) string {
	q := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if strings.Contains(strings.ToLower(normalizeText(page.Subject)), q) {
		return "title_match"
	}
	if strings.Contains(strings.ToLower(normalizeText(page.Content)), q) {
		return "content_match"
	}
	return "partial_match"
}

// preview returns a window of text around the first occurrence of query,
// with ellipses marking truncation. Without a match it falls back to the
// head of the text. Matching is done rune by rune so that case folds which
// change byte length cannot shift the window mid-rune.
func preview(text, query string) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	qRunes := []rune(query)

	start := foldIndex(runes, qRunes)
	if start < 0 {
		if len(runes) <= previewContext {
			return text
		}
		return string(runes[:previewContext]) + "..."
	}

	lo := max(0, start-previewContext/2)
	hi := min(len(runes), start+len(qRunes)+previewContext/2)

	out := string(runes[lo:hi])
	if lo > 0 {
		out = "..." + out
	}
	if hi < len(runes) {
		out += "..."
	}
	return out
}

// foldIndex returns the rune index of the first case-insensitive occurrence
// of needle in haystack, or -1. Folding one rune at a time keeps indexes
// aligned with haystack.
func foldIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, r := range needle {
			if unicode.ToLower(haystack[i+j]) != unicode.ToLower(r) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Outline returns a table-of-contents view of the book down to maxDepth
// (top-level pages are depth 0).
func Outline(book *wikidocs.Book, maxDepth int) []OutlineEntry {
	var entries []OutlineEntry
	booktree.Walk(book.Pages, func(page *wikidocs.Page, depth int) {
		if depth > maxDepth {
			return
		}
		entries = append(entries, OutlineEntry{
			PageID:     page.ID,
			Subject:    page.Subject,
			Depth:      depth,
			ParentID:   page.ParentID,
			Seq:        page.Seq,
			HasContent: strings.TrimSpace(page.Content) != "",
		})
	})
	return entries
}
