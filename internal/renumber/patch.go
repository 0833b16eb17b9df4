package renumber

import (
	"regexp"
	"strings"
)

var headingRe = regexp.MustCompile(`^(#+\s+)(.*)$`)

// Apply rewrites oldNum to newNum in a page's title and in the markdown
// heading lines of its body. Prose lines that merely mention the old number
// (cross-references like "see 5.2.2") are left alone; only headings carry
// section numbers. An unmatched pattern is not an error, it just reports
// changed == false, which also makes a second application of the same
// old/new pair a no-op.
func Apply(title, body, oldNum, newNum string) (newTitle, newBody string, changed bool) {
	newTitle = title
	trimmed := strings.TrimSpace(title)
	if hasBoundedPrefix(trimmed, oldNum) {
		newTitle = newNum + trimmed[len(oldNum):]
		changed = true
	}

	newBody = body
	lines := strings.Split(body, "\n")
	bodyChanged := false
	for i, line := range lines {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rest := m[2]
		if hasBoundedPrefix(rest, oldNum) {
			lines[i] = m[1] + newNum + rest[len(oldNum):]
			bodyChanged = true
		}
	}
	if bodyChanged {
		newBody = strings.Join(lines, "\n")
		changed = true
	}

	return newTitle, newBody, changed
}
