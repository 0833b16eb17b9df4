package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ychoi-kr/wikidocs-mcp/internal/booktree"
	"github.com/ychoi-kr/wikidocs-mcp/internal/renumber"
	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

type renumberArgs struct {
	BookID      int  `json:"book_id" jsonschema:"ID of the book containing the pages"`
	StartPageID int  `json:"start_page_id" jsonschema:"ID of the first page to shift forward; it and every later sibling are renumbered"`
	Offset      *int `json:"offset,omitempty" jsonschema:"number of section slots to reserve before the start page (default 1)"`
}

// planEntryView is a plan entry plus the unified diffs a reviewer needs to
// judge it.
type planEntryView struct {
	renumber.Entry
	SubjectDiff string `json:"subject_diff,omitempty"`
	ContentDiff string `json:"content_diff,omitempty"`
}

// pageResult is the per-page outcome of execute_renumbering.
type pageResult struct {
	PageID    int    `json:"page_id"`
	OldNumber string `json:"old_number"`
	NewNumber string `json:"new_number"`
	Status    string `json:"status"` // updated, skipped, failed
	Error     string `json:"error,omitempty"`
}

func registerRenumberTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "plan_renumbering",
		Description: "Preview the section renumbering needed to insert a new page before start_page_id: " +
			"which pages change, their old and new numbers, and diffs of each title and body. " +
			"Makes no changes; review the plan, then call execute_renumbering.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args renumberArgs) (*mcp.CallToolResult, any, error) {
		book, plan, err := loadPlan(ctx, deps, args, false)
		if err != nil {
			return nil, nil, err
		}
		if len(plan) == 0 {
			return nil, map[string]any{
				"book_id": args.BookID,
				"entries": []planEntryView{},
				"message": "nothing to renumber: start page not found or has no parsable section number",
			}, nil
		}

		entries := make([]planEntryView, 0, len(plan))
		for _, entry := range plan {
			view := planEntryView{Entry: entry}
			if page := booktree.FindPage(book.Pages, entry.PageID); page != nil {
				newSubject, newContent, changed := renumber.Apply(page.Subject, page.Content, entry.OldNumber, entry.NewNumber)
				if changed {
					view.SubjectDiff, err = renumber.Diff(page.Subject, newSubject, "subject")
					if err != nil {
						return nil, nil, err
					}
					view.ContentDiff, err = renumber.Diff(page.Content, newContent, "content")
					if err != nil {
						return nil, nil, err
					}
				}
			}
			entries = append(entries, view)
		}
		return nil, map[string]any{
			"book_id":       args.BookID,
			"entries":       entries,
			"total_changes": len(entries),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name: "execute_renumbering",
		Description: "Apply a section renumbering: shift start_page_id and its later siblings forward, " +
			"rewriting titles and body headings, and save each changed page back to Wikidocs. " +
			"Use plan_renumbering first to review what will change.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args renumberArgs) (*mcp.CallToolResult, any, error) {
		// Plan against a fresh tree so a stale cache cannot misnumber pages.
		book, plan, err := loadPlan(ctx, deps, args, true)
		if err != nil {
			return nil, nil, err
		}
		if len(plan) == 0 {
			return nil, map[string]any{
				"book_id": args.BookID,
				"results": []pageResult{},
				"message": "nothing to renumber: start page not found or has no parsable section number",
			}, nil
		}

		results := make([]pageResult, 0, len(plan))
		updated := 0
		for _, entry := range plan {
			result := pageResult{PageID: entry.PageID, OldNumber: entry.OldNumber, NewNumber: entry.NewNumber}

			page := booktree.FindPage(book.Pages, entry.PageID)
			if page == nil {
				result.Status = "failed"
				result.Error = "page missing from fetched book tree"
				results = append(results, result)
				continue
			}

			newSubject, newContent, changed := renumber.Apply(page.Subject, page.Content, entry.OldNumber, entry.NewNumber)
			if !changed {
				// The old number is no longer present; nothing to rewrite.
				result.Status = "skipped"
				results = append(results, result)
				continue
			}

			openYN := page.OpenYN
			if openYN == "" {
				openYN = "Y"
			}
			_, err := deps.Client.SavePage(ctx, page.ID, wikidocs.PageRequest{
				ID:       page.ID,
				Subject:  newSubject,
				Content:  newContent,
				ParentID: page.ParentID,
				BookID:   args.BookID,
				OpenYN:   openYN,
			})
			if err != nil {
				deps.Log.Warn("save renumbered page", "page_id", page.ID, "error", err)
				result.Status = "failed"
				result.Error = err.Error()
			} else {
				result.Status = "updated"
				updated++
			}
			results = append(results, result)
		}

		// The remote book changed; the cached snapshot is now stale.
		if err := deps.Store.Invalidate(args.BookID); err != nil {
			deps.Log.Warn("invalidate book cache", "book_id", args.BookID, "error", err)
		}
		deps.Searcher.Drop(args.BookID)

		return nil, map[string]any{
			"book_id": args.BookID,
			"results": results,
			"updated": updated,
		}, nil
	})
}

func loadPlan(ctx context.Context, deps Deps, args renumberArgs, force bool) (*wikidocs.Book, []renumber.Entry, error) {
	offset := 1
	if args.Offset != nil {
		offset = *args.Offset
	}
	if offset < 0 {
		return nil, nil, fmt.Errorf("offset must be non-negative, got %d", offset)
	}

	book, _, err := fetchBook(ctx, deps, args.BookID, force)
	if err != nil {
		return nil, nil, err
	}
	return book, renumber.Plan(book.Pages, args.StartPageID, offset), nil
}
