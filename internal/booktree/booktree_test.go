package booktree

import (
	"errors"
	"testing"

	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

func page(id int, subject string, children ...*wikidocs.Page) *wikidocs.Page {
	return &wikidocs.Page{ID: id, Subject: subject, Children: children}
}

// testForest builds:
//
//	1. First chapter
//	  1.1 Intro
//	  1.2 Setup
//	    1.2.1 Requirements
//	2. Second chapter
//	  2.1 Other
func testForest() []*wikidocs.Page {
	return []*wikidocs.Page{
		page(1, "1. First chapter",
			page(11, "1.1 Intro"),
			page(12, "1.2 Setup",
				page(121, "1.2.1 Requirements"),
			),
		),
		page(2, "2. Second chapter",
			page(21, "2.1 Other"),
		),
	}
}

func TestFindPage(t *testing.T) {
	forest := testForest()

	if got := FindPage(forest, 121); got == nil || got.ID != 121 {
		t.Errorf("FindPage(121) = %v, want page 121", got)
	}
	if got := FindPage(forest, 21); got == nil || got.ID != 21 {
		t.Errorf("FindPage(21) = %v, want page 21 in a later top-level subtree", got)
	}
	if got := FindPage(forest, 999); got != nil {
		t.Errorf("FindPage(999) = %v, want nil", got)
	}
}

func TestFindParent(t *testing.T) {
	forest := testForest()

	tests := []struct {
		targetID int
		wantID   int // 0 means nil parent
	}{
		{11, 1},
		{121, 12}, // deep recursion
		{21, 2},   // continues past the first top-level page
		{1, 0},    // top-level page has no parent
		{999, 0},  // absent page has no parent
	}

	for _, tt := range tests {
		got := FindParent(forest, tt.targetID)
		switch {
		case tt.wantID == 0 && got != nil:
			t.Errorf("FindParent(%d) = page %d, want nil", tt.targetID, got.ID)
		case tt.wantID != 0 && (got == nil || got.ID != tt.wantID):
			t.Errorf("FindParent(%d) = %v, want page %d", tt.targetID, got, tt.wantID)
		}
	}
}

func TestSiblings(t *testing.T) {
	forest := testForest()

	parent, siblings, index, err := Siblings(forest, 12)
	if err != nil {
		t.Fatalf("Siblings(12): %v", err)
	}
	if parent == nil || parent.ID != 1 {
		t.Errorf("parent = %v, want page 1", parent)
	}
	if len(siblings) != 2 || index != 1 {
		t.Errorf("siblings = %d entries, index = %d; want 2 entries, index 1", len(siblings), index)
	}
}

func TestSiblings_TopLevel(t *testing.T) {
	forest := testForest()

	parent, siblings, index, err := Siblings(forest, 2)
	if err != nil {
		t.Fatalf("Siblings(2): %v", err)
	}
	if parent != nil {
		t.Errorf("parent = page %d, want nil for a top-level page", parent.ID)
	}
	if len(siblings) != 2 || index != 1 {
		t.Errorf("siblings = %d entries, index = %d; want the forest itself, index 1", len(siblings), index)
	}
}

func TestSiblings_NotFound(t *testing.T) {
	if _, _, _, err := Siblings(testForest(), 999); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound, got %v", err)
	}
}

func TestCollectTargets(t *testing.T) {
	forest := testForest()

	targets, err := CollectTargets(forest, 12)
	if err != nil {
		t.Fatalf("CollectTargets(12): %v", err)
	}

	wantIDs := []int{12, 121}
	assertIDs(t, targets, wantIDs)
}

func TestCollectTargets_IncludesLaterSiblingsWithSubtrees(t *testing.T) {
	forest := testForest()

	targets, err := CollectTargets(forest, 11)
	if err != nil {
		t.Fatalf("CollectTargets(11): %v", err)
	}

	// 11 itself, then 12 followed by its descendant 121. The second
	// chapter's subtree must not be swept in.
	assertIDs(t, targets, []int{11, 12, 121})
}

func TestCollectTargets_NeverIncludesEarlierSiblings(t *testing.T) {
	forest := testForest()

	targets, err := CollectTargets(forest, 12)
	if err != nil {
		t.Fatalf("CollectTargets(12): %v", err)
	}
	for _, p := range targets {
		if p.ID == 11 {
			t.Error("collected a sibling before the start page")
		}
		if p.ID == 2 || p.ID == 21 {
			t.Error("collected a page outside the sibling lineage")
		}
	}
}

func TestCollectTargets_NotFound(t *testing.T) {
	if _, err := CollectTargets(testForest(), 999); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound, got %v", err)
	}
}

func TestFlattenAndWalk(t *testing.T) {
	forest := testForest()

	flat := Flatten(forest)
	assertIDs(t, flat, []int{1, 11, 12, 121, 2, 21})

	depths := map[int]int{}
	Walk(forest, func(p *wikidocs.Page, depth int) {
		depths[p.ID] = depth
	})
	want := map[int]int{1: 0, 11: 1, 12: 1, 121: 2, 2: 0, 21: 1}
	for id, d := range want {
		if depths[id] != d {
			t.Errorf("depth of page %d = %d, want %d", id, depths[id], d)
		}
	}
}

func assertIDs(t *testing.T, pages []*wikidocs.Page, want []int) {
	t.Helper()
	if len(pages) != len(want) {
		t.Fatalf("got %d pages, want %d", len(pages), len(want))
	}
	for i, p := range pages {
		if p.ID != want[i] {
			t.Errorf("page %d has ID %d, want %d", i, p.ID, want[i])
		}
	}
}
