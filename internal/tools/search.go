package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ychoi-kr/wikidocs-mcp/internal/booktree"
	"github.com/ychoi-kr/wikidocs-mcp/internal/search"
)

type searchPagesArgs struct {
	BookID     int    `json:"book_id" jsonschema:"ID of the book to search"`
	Query      string `json:"query" jsonschema:"free-text search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results (default 20)"`
}

type bookStructureArgs struct {
	BookID   int `json:"book_id" jsonschema:"ID of the book"`
	MaxDepth int `json:"max_depth,omitempty" jsonschema:"deepest page level to include, where top-level pages are level 0 (default 2)"`
}

func registerSearchTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "search_book_pages",
		Description: "Search a book's page titles and bodies by relevance. " +
			"Runs against the locally cached copy of the book.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchPagesArgs) (*mcp.CallToolResult, any, error) {
		book, _, err := fetchBook(ctx, deps, args.BookID, false)
		if err != nil {
			return nil, nil, err
		}

		limit := args.MaxResults
		if limit <= 0 || limit > deps.MaxSearchResults {
			limit = deps.MaxSearchResults
		}
		results, err := deps.Searcher.Search(book, args.Query, limit)
		if err != nil {
			return nil, nil, err
		}
		if results == nil {
			results = []search.Result{}
		}
		return nil, map[string]any{
			"book_id":     args.BookID,
			"query":       args.Query,
			"results":     results,
			"total_found": len(results),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_book_structure",
		Description: "Get a table-of-contents summary of a book down to a given depth.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args bookStructureArgs) (*mcp.CallToolResult, any, error) {
		book, _, err := fetchBook(ctx, deps, args.BookID, false)
		if err != nil {
			return nil, nil, err
		}

		maxDepth := args.MaxDepth
		if maxDepth <= 0 {
			maxDepth = 2
		}
		outline := search.Outline(book, maxDepth)
		if outline == nil {
			outline = []search.OutlineEntry{}
		}
		return nil, map[string]any{
			"book_id":     args.BookID,
			"structure":   outline,
			"total_pages": len(outline),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_cache_info",
		Description: "Report whether a book is cached locally and whether the cache entry is still valid.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getBookArgs) (*mcp.CallToolResult, any, error) {
		return nil, deps.Store.Info(args.BookID), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refresh_book_cache",
		Description: "Discard the cached copy of a book and refetch it from the API.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getBookArgs) (*mcp.CallToolResult, any, error) {
		if err := deps.Store.Invalidate(args.BookID); err != nil {
			return nil, nil, err
		}
		deps.Searcher.Drop(args.BookID)

		book, _, err := fetchBook(ctx, deps, args.BookID, true)
		if err != nil {
			return nil, nil, err
		}
		return nil, map[string]any{
			"book_id":     args.BookID,
			"refreshed":   true,
			"subject":     book.Subject,
			"total_pages": len(booktree.Flatten(book.Pages)),
		}, nil
	})
}
