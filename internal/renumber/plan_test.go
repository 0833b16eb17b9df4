package renumber

import (
	"testing"

	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

func page(id int, subject string, children ...*wikidocs.Page) *wikidocs.Page {
	return &wikidocs.Page{ID: id, Subject: subject, Children: children}
}

func TestPlan_ShiftsStartAndLaterSiblings(t *testing.T) {
	forest := []*wikidocs.Page{
		page(10, "5. Chapter",
			page(1, "5.1 Intro"),
			page(2, "5.2 Setup"),
			page(3, "5.3 Usage"),
		),
	}

	plan := Plan(forest, 2, 1)

	want := []Entry{
		{PageID: 2, Subject: "5.2 Setup", OldNumber: "5.2", NewNumber: "5.3"},
		{PageID: 3, Subject: "5.3 Usage", OldNumber: "5.3", NewNumber: "5.4"},
	}
	assertPlan(t, plan, want)
}

func TestPlan_CascadesIntoDescendants(t *testing.T) {
	forest := []*wikidocs.Page{
		page(10, "5. Chapter",
			page(1, "5.1 Intro"),
			page(2, "5.2 Setup",
				page(4, "5.2.1 Requirements",
					page(5, "5.2.1.1 Hardware"),
				),
			),
			page(3, "5.3 Usage"),
		),
	}

	plan := Plan(forest, 2, 1)

	want := []Entry{
		{PageID: 2, Subject: "5.2 Setup", OldNumber: "5.2", NewNumber: "5.3"},
		{PageID: 4, Subject: "5.2.1 Requirements", OldNumber: "5.2.1", NewNumber: "5.3.1"},
		{PageID: 5, Subject: "5.2.1.1 Hardware", OldNumber: "5.2.1.1", NewNumber: "5.3.1.1"},
		{PageID: 3, Subject: "5.3 Usage", OldNumber: "5.3", NewNumber: "5.4"},
	}
	assertPlan(t, plan, want)
}

func TestPlan_UnnumberedSiblingSkippedWithoutConsumingSlot(t *testing.T) {
	forest := []*wikidocs.Page{
		page(10, "5. Chapter",
			page(1, "5.1 Intro"),
			page(2, "5.2 Setup"),
			page(3, "Appendix"),
			page(4, "5.3 Usage"),
		),
	}

	plan := Plan(forest, 2, 1)

	want := []Entry{
		{PageID: 2, Subject: "5.2 Setup", OldNumber: "5.2", NewNumber: "5.3"},
		{PageID: 4, Subject: "5.3 Usage", OldNumber: "5.3", NewNumber: "5.4"},
	}
	assertPlan(t, plan, want)
}

func TestPlan_StartNotFound(t *testing.T) {
	forest := []*wikidocs.Page{page(1, "5.1 Intro")}
	if plan := Plan(forest, 999, 1); len(plan) != 0 {
		t.Errorf("expected empty plan for missing page, got %d entries", len(plan))
	}
}

func TestPlan_FirstSiblingFallsBackToOwnNumber(t *testing.T) {
	forest := []*wikidocs.Page{
		page(10, "5. Chapter",
			page(1, "5.1 Intro"),
			page(2, "5.2 Setup"),
		),
	}

	plan := Plan(forest, 1, 1)

	want := []Entry{
		{PageID: 1, Subject: "5.1 Intro", OldNumber: "5.1", NewNumber: "5.2"},
		{PageID: 2, Subject: "5.2 Setup", OldNumber: "5.2", NewNumber: "5.3"},
	}
	assertPlan(t, plan, want)
}

func TestPlan_UnparsablePrecedingSiblingFallsBack(t *testing.T) {
	forest := []*wikidocs.Page{
		page(10, "5. Chapter",
			page(1, "Overview"),
			page(2, "5.2 Setup"),
		),
	}

	plan := Plan(forest, 2, 1)

	want := []Entry{
		{PageID: 2, Subject: "5.2 Setup", OldNumber: "5.2", NewNumber: "5.3"},
	}
	assertPlan(t, plan, want)
}

func TestPlan_UnnumberedStartPage(t *testing.T) {
	forest := []*wikidocs.Page{
		page(10, "5. Chapter",
			page(1, "Overview"),
			page(2, "5.2 Setup"),
		),
	}

	if plan := Plan(forest, 1, 1); len(plan) != 0 {
		t.Errorf("expected empty plan when the start page has no number, got %d entries", len(plan))
	}
}

func TestPlan_TopLevelSiblings(t *testing.T) {
	forest := []*wikidocs.Page{
		page(1, "1. First"),
		page(2, "2. Second"),
	}

	plan := Plan(forest, 1, 1)

	want := []Entry{
		{PageID: 1, Subject: "1. First", OldNumber: "1", NewNumber: "2"},
		{PageID: 2, Subject: "2. Second", OldNumber: "2", NewNumber: "3"},
	}
	assertPlan(t, plan, want)
}

func TestPlan_LaterChapterNotSweptIn(t *testing.T) {
	forest := []*wikidocs.Page{
		page(10, "5. Chapter",
			page(1, "5.1 Intro"),
			page(2, "5.2 Setup"),
		),
		page(20, "6. Next chapter",
			page(21, "6.1 Other"),
		),
	}

	plan := Plan(forest, 2, 1)

	for _, entry := range plan {
		if entry.PageID == 20 || entry.PageID == 21 {
			t.Errorf("plan touched a page outside the sibling lineage: %+v", entry)
		}
	}
	want := []Entry{
		{PageID: 2, Subject: "5.2 Setup", OldNumber: "5.2", NewNumber: "5.3"},
	}
	assertPlan(t, plan, want)
}

func TestPlan_ZeroOffsetCompactsDuplicates(t *testing.T) {
	forest := []*wikidocs.Page{
		page(10, "5. Chapter",
			page(1, "5.1 Intro"),
			page(2, "5.2 Setup"),
			page(3, "5.2 Setup again"),
		),
	}

	plan := Plan(forest, 3, 0)

	want := []Entry{
		{PageID: 3, Subject: "5.2 Setup again", OldNumber: "5.2", NewNumber: "5.3"},
	}
	assertPlan(t, plan, want)
}

func TestPlan_WidthGrowthAcrossTen(t *testing.T) {
	forest := []*wikidocs.Page{
		page(10, "5. Chapter",
			page(1, "5.8 A"),
			page(2, "5.9 B"),
		),
	}

	plan := Plan(forest, 2, 1)

	want := []Entry{
		{PageID: 2, Subject: "5.9 B", OldNumber: "5.9", NewNumber: "5.10"},
	}
	assertPlan(t, plan, want)
}

func assertPlan(t *testing.T, got, want []Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("plan has %d entries, want %d:\ngot  %+v\nwant %+v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
