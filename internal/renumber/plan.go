package renumber

import (
	"strconv"
	"strings"

	"github.com/ychoi-kr/wikidocs-mcp/internal/booktree"
	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

// Entry is one pending change in a renumbering plan. Entries are keyed by
// page ID, so the order they are applied in does not affect correctness.
type Entry struct {
	PageID    int    `json:"page_id"`
	Subject   string `json:"subject"`
	OldNumber string `json:"old_number"`
	NewNumber string `json:"new_number"`
}

// Plan computes the changes needed to shift the page with startID and every
// sibling after it forward by offset slots, cascading the new numbers into
// each sibling's descendants. Entries come back in document order: each
// sibling immediately followed by its own descendants.
//
// An empty plan means there is nothing to renumber: the start page is absent
// from the forest, or neither it nor its preceding sibling carries a
// parsable number.
func Plan(forest []*wikidocs.Page, startID, offset int) []Entry {
	_, siblings, index, err := booktree.Siblings(forest, startID)
	if err != nil {
		return nil
	}

	prefix, nextLast, ok := startingNumber(siblings, index, offset)
	if !ok {
		return nil
	}

	var plan []Entry
	for _, sibling := range siblings[index:] {
		oldNum, ok := PageNumber(sibling.Subject)
		if !ok {
			// Unnumbered pages keep their titles and consume no slot.
			continue
		}

		newNum := joinNumber(prefix, nextLast)
		if newNum != oldNum {
			plan = append(plan, Entry{
				PageID:    sibling.ID,
				Subject:   sibling.Subject,
				OldNumber: oldNum,
				NewNumber: newNum,
			})
		}
		plan = append(plan, descendantEntries(sibling.Children, oldNum, newNum)...)
		nextLast++
	}
	return plan
}

// startingNumber determines the dotted-number prefix and the last-component
// value the first shifted sibling should receive.
//
// With a preceding sibling numbered "5.1" and offset 1, the slot "5.2" is
// being reserved for a new page, so the shifted page lands at "5.3":
// prev_last + offset + 1. Without a usable preceding sibling the start
// page's own number is the baseline and moves by offset alone.
func startingNumber(siblings []*wikidocs.Page, index, offset int) (prefix []string, startLast int, ok bool) {
	if index > 0 {
		if prevNum, found := PageNumber(siblings[index-1].Subject); found {
			parts := strings.Split(prevNum, ".")
			if last, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
				return parts[:len(parts)-1], last + offset + 1, true
			}
		}
	}

	ownNum, found := PageNumber(siblings[index].Subject)
	if !found {
		return nil, 0, false
	}
	parts := strings.Split(ownNum, ".")
	last, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return nil, 0, false
	}
	return parts[:len(parts)-1], last + offset, true
}

// descendantEntries rewrites descendants whose numbers sit under the moved
// sibling's old number. ReplacePrefix only ever touches the single fixed
// prefix being migrated, so recursion keeps the sibling's old/new pair at
// every depth instead of re-deriving it from intermediate pages.
func descendantEntries(pages []*wikidocs.Page, parentOld, parentNew string) []Entry {
	var entries []Entry
	for _, page := range pages {
		num, ok := PageNumber(page.Subject)
		if !ok || !strings.HasPrefix(num, parentOld+".") {
			continue
		}

		if newNum := ReplacePrefix(num, parentOld, parentNew); newNum != num {
			entries = append(entries, Entry{
				PageID:    page.ID,
				Subject:   page.Subject,
				OldNumber: num,
				NewNumber: newNum,
			})
		}
		entries = append(entries, descendantEntries(page.Children, parentOld, parentNew)...)
	}
	return entries
}

func joinNumber(prefix []string, last int) string {
	if len(prefix) == 0 {
		return strconv.Itoa(last)
	}
	return strings.Join(prefix, ".") + "." + strconv.Itoa(last)
}
