package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

type getBookArgs struct {
	BookID int `json:"book_id" jsonschema:"ID of the book"`
}

type getPageArgs struct {
	PageID int `json:"page_id" jsonschema:"ID of the page"`
}

type createPageArgs struct {
	BookID   int    `json:"book_id" jsonschema:"ID of the book the new page belongs to"`
	Subject  string `json:"subject" jsonschema:"page title"`
	Content  string `json:"content" jsonschema:"page body in markdown"`
	ParentID int    `json:"parent_id,omitempty" jsonschema:"ID of the parent page; 0 for a top-level page"`
	OpenYN   string `json:"open_yn,omitempty" jsonschema:"whether the page is public, Y or N (default Y)"`
}

type updatePageArgs struct {
	PageID   int    `json:"page_id" jsonschema:"ID of the existing page to update"`
	Subject  string `json:"subject" jsonschema:"new page title"`
	Content  string `json:"content" jsonschema:"new page body in markdown"`
	ParentID int    `json:"parent_id" jsonschema:"ID of the parent page; 0 for a top-level page"`
	OpenYN   string `json:"open_yn" jsonschema:"whether the page is public, Y or N"`
}

type uploadPageImageArgs struct {
	PageID   int    `json:"page_id" jsonschema:"ID of the page the image belongs to"`
	FilePath string `json:"file_path" jsonschema:"local path of the image file to upload"`
}

func registerBookTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_my_books",
		Description: "List all Wikidocs books owned by the authenticated user.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
		books, err := deps.Client.ListBooks(ctx)
		if err != nil {
			return nil, nil, err
		}
		return nil, map[string]any{"books": books, "total_count": len(books)}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_book_info",
		Description: "Get a book together with its page tree. Served from the local cache " +
			"when a valid entry exists. For very large books the page list may be incomplete.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getBookArgs) (*mcp.CallToolResult, any, error) {
		book, fromCache, err := fetchBook(ctx, deps, args.BookID, false)
		if err != nil {
			return nil, nil, err
		}
		return nil, map[string]any{"book": book, "from_cache": fromCache}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_page",
		Description: "Get a single page by its ID.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getPageArgs) (*mcp.CallToolResult, any, error) {
		page, err := deps.Client.GetPage(ctx, args.PageID)
		if err != nil {
			return nil, nil, err
		}
		return nil, page, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name: "create_page",
		Description: "Create a new page in a book. Use this for new pages only; to modify an " +
			"existing page use update_page. Never call update_page with a guessed or unknown page ID.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args createPageArgs) (*mcp.CallToolResult, any, error) {
		page, err := deps.Client.CreatePage(ctx, args.BookID, args.Subject, args.Content, args.ParentID, args.OpenYN)
		if err != nil {
			return nil, nil, err
		}
		// The cached tree no longer matches the remote book.
		if err := deps.Store.Invalidate(args.BookID); err != nil {
			deps.Log.Warn("invalidate book cache", "book_id", args.BookID, "error", err)
		}
		deps.Searcher.Drop(args.BookID)
		return nil, page, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_page",
		Description: "Update an existing page's title, content, parent, or visibility.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args updatePageArgs) (*mcp.CallToolResult, any, error) {
		page, err := deps.Client.SavePage(ctx, args.PageID, wikidocs.PageRequest{
			ID:       args.PageID,
			Subject:  args.Subject,
			Content:  args.Content,
			ParentID: args.ParentID,
			OpenYN:   args.OpenYN,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, page, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "upload_page_image",
		Description: "Upload a local image file for use in a page.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args uploadPageImageArgs) (*mcp.CallToolResult, any, error) {
		result, err := deps.Client.UploadPageImage(ctx, args.PageID, args.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	})
}
