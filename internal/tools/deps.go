// Package tools registers the Wikidocs MCP tool surface: book and blog
// CRUD, page search, cache management, and section renumbering.
package tools

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ychoi-kr/wikidocs-mcp/internal/cache"
	"github.com/ychoi-kr/wikidocs-mcp/internal/search"
	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

// Deps carries the explicitly constructed collaborators the tools need.
// Everything is passed in; there is no package-level state.
type Deps struct {
	Client   *wikidocs.Client
	Store    *cache.Store
	Searcher *search.Searcher
	Log      *slog.Logger

	// MaxSearchResults caps search results when a tool call does not.
	MaxSearchResults int
}

// Register adds every tool to the server.
func Register(server *mcp.Server, deps Deps) {
	registerBookTools(server, deps)
	registerBlogTools(server, deps)
	registerSearchTools(server, deps)
	registerRenumberTools(server, deps)
}

// fetchBook returns the book tree, from cache when a valid entry exists,
// otherwise freshly from the API (updating the cache and dropping any stale
// search index). fromCache tells the caller which happened.
func fetchBook(ctx context.Context, deps Deps, bookID int, force bool) (book *wikidocs.Book, fromCache bool, err error) {
	if !force && deps.Store.IsValid(bookID) {
		book, err := deps.Store.Load(bookID)
		if err != nil {
			deps.Log.Warn("book cache unreadable, refetching", "book_id", bookID, "error", err)
		} else if book != nil {
			return book, true, nil
		}
	}

	book, err = deps.Client.GetBook(ctx, bookID)
	if err != nil {
		return nil, false, err
	}
	if err := deps.Store.Save(bookID, book); err != nil {
		deps.Log.Warn("save book cache", "book_id", bookID, "error", err)
	}
	deps.Searcher.Drop(bookID)
	return book, false, nil
}
