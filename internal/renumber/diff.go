package renumber

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff renders a line-based unified diff between the original and modified
// text, for human review before anything is written back.
func Diff(original, modified, label string) (string, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: "Original " + label,
		ToFile:   "Modified " + label,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("render diff: %w", err)
	}
	return text, nil
}
