// Package renumber computes and applies section renumbering over a book's
// page forest. Section numbers are dotted numeric prefixes embedded in page
// titles ("5.2. Installation"); nothing here performs I/O.
package renumber

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparsableNumber is returned when a dotted number's last component is
// not a valid integer.
var ErrUnparsableNumber = errors.New("unparsable section number")

var numberRe = regexp.MustCompile(`^\d+(?:\.\d+)*`)

// PageNumber extracts the dotted section number from the start of a page
// title. "5.2. Installation" yields "5.2". The second return is false when
// the trimmed title does not begin with a digit.
func PageNumber(title string) (string, bool) {
	num := numberRe.FindString(strings.TrimSpace(title))
	return num, num != ""
}

// IncrementLast adds offset to the final dot-separated component of number.
// "5.9" with offset 1 becomes "5.10"; component width is not fixed.
func IncrementLast(number string, offset int) (string, error) {
	parts := strings.Split(number, ".")
	last, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnparsableNumber, number)
	}
	parts[len(parts)-1] = strconv.Itoa(last + offset)
	return strings.Join(parts, "."), nil
}

// ReplacePrefix swaps a leading oldPrefix for newPrefix, keeping the rest of
// number verbatim, or returns number unchanged when it does not start with
// oldPrefix. This is a plain textual check: "5.20" starts with "5.2", so
// callers migrating descendants must match against oldPrefix + "." instead.
func ReplacePrefix(number, oldPrefix, newPrefix string) string {
	if strings.HasPrefix(number, oldPrefix) {
		return newPrefix + number[len(oldPrefix):]
	}
	return number
}

// hasBoundedPrefix reports whether s starts with prefix followed by a
// non-digit or end of string. The boundary keeps "5.2" from matching inside
// "5.20" while still matching "5.2." and "5.2 ".
func hasBoundedPrefix(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	if len(s) == len(prefix) {
		return true
	}
	next := s[len(prefix)]
	return next < '0' || next > '9'
}
