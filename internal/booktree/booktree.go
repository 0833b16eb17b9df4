// Package booktree provides read-only queries over a book's page forest.
// The forest is an already-fetched snapshot; nothing here touches the
// network or mutates pages.
package booktree

import (
	"errors"

	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

// ErrPageNotFound is returned when a page ID does not appear anywhere in
// the forest.
var ErrPageNotFound = errors.New("page not found in book")

// FindPage returns the page with the given ID, searching the whole forest
// depth-first, or nil if absent.
func FindPage(forest []*wikidocs.Page, id int) *wikidocs.Page {
	for _, page := range forest {
		if page.ID == id {
			return page
		}
		if found := FindPage(page.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// FindParent returns the immediate parent of the page with the given ID, or
// nil when the page is top-level or absent. The entire forest is searched,
// not just the first top-level subtree.
func FindParent(forest []*wikidocs.Page, targetID int) *wikidocs.Page {
	for _, page := range forest {
		for _, child := range page.Children {
			if child.ID == targetID {
				return page
			}
		}
		if found := FindParent(page.Children, targetID); found != nil {
			return found
		}
	}
	return nil
}

// Siblings returns the ordered child list containing targetID (the forest
// itself when the page is top-level), together with the parent page (nil for
// top-level) and the zero-based index of targetID within the list.
func Siblings(forest []*wikidocs.Page, targetID int) (parent *wikidocs.Page, siblings []*wikidocs.Page, index int, err error) {
	parent = FindParent(forest, targetID)
	if parent != nil {
		siblings = parent.Children
	} else {
		siblings = forest
	}

	for i, page := range siblings {
		if page.ID == targetID {
			return parent, siblings, i, nil
		}
	}
	return nil, nil, 0, ErrPageNotFound
}

// CollectTargets returns the page with startID plus every sibling that
// follows it, each immediately followed by a pre-order walk of its own
// descendants. Earlier siblings and pages outside the sibling list's
// subtrees are never included, so an unrelated later chapter cannot be
// swept in.
func CollectTargets(forest []*wikidocs.Page, startID int) ([]*wikidocs.Page, error) {
	_, siblings, index, err := Siblings(forest, startID)
	if err != nil {
		return nil, err
	}

	var targets []*wikidocs.Page
	for _, sibling := range siblings[index:] {
		targets = appendSubtree(targets, sibling)
	}
	return targets, nil
}

func appendSubtree(dst []*wikidocs.Page, page *wikidocs.Page) []*wikidocs.Page {
	dst = append(dst, page)
	for _, child := range page.Children {
		dst = appendSubtree(dst, child)
	}
	return dst
}

// Flatten returns every page in the forest in pre-order document order.
func Flatten(forest []*wikidocs.Page) []*wikidocs.Page {
	var pages []*wikidocs.Page
	for _, page := range forest {
		pages = appendSubtree(pages, page)
	}
	return pages
}

// Walk calls visit for every page in pre-order, passing the page's depth
// within the forest (top-level pages are depth 0).
func Walk(forest []*wikidocs.Page, visit func(page *wikidocs.Page, depth int)) {
	var walk func(pages []*wikidocs.Page, depth int)
	walk = func(pages []*wikidocs.Page, depth int) {
		for _, page := range pages {
			visit(page, depth)
			walk(page.Children, depth+1)
		}
	}
	walk(forest, 0)
}
