package gui

import (
	"regexp"
	"strings"
)

var filterExtPattern = regexp.MustCompile(`\(\*(\.[^)\s]+)\)`)

// ExtFromFilter extracts the extension from a save-dialog filter label of
// the shape "PNG (*.png)". The second return value is false when the label
// carries no parenthesized *.xxx token.
func ExtFromFilter(filter string) (string, bool) {
	match := filterExtPattern.FindStringSubmatch(filter)
	if match == nil {
		return "", false
	}

	return strings.ToLower(match[1]), true
}
