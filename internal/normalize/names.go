package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// Header trims a header cell and collapses internal whitespace, including
// the line breaks published workbooks put inside wrapped header cells.
func Header(s string) string {
	s = strings.TrimSpace(s)
	return multiSpace.ReplaceAllString(s, " ")
}

// Label normalizes an id cell such as a year or age band.
// Excel stores whole years as numbers, so "2017.0" becomes "2017".
func Label(s string) string {
	s = Header(s)
	if strings.HasSuffix(s, ".0") && isDigits(strings.TrimSuffix(s, ".0")) {
		s = strings.TrimSuffix(s, ".0")
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
