// Package common holds helpers shared by the crawl and verify commands.
package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const placeholder = "{n}"

// ExpandTemplate substitutes the page index into the URL template.
func ExpandTemplate(template string, index int) string {
	return strings.ReplaceAll(template, placeholder, strconv.Itoa(index))
}

// FilenameForIndex maps a page index to its output filename. The index is
// zero-padded to at least four digits, so distinct indices can never
// collide and re-runs produce the same name regardless of range width.
//
//	1     -> page_0001.html
//	42    -> page_0042.html
//	12345 -> page_12345.html
func FilenameForIndex(index int) string {
	return fmt.Sprintf("page_%04d.html", index)
}

var filenamePattern = regexp.MustCompile(`^page_(\d{4,})\.html$`)

// IndexForFilename is the inverse of FilenameForIndex. It returns the
// index encoded in a manifest filename, or false for names it did not
// produce.
func IndexForFilename(name string) (int, bool) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return idx, true
}
