package vkrtext

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal issue encountered while processing a document.
// Extraction succeeded but the result may be incomplete, most commonly a
// record emitted without its Review section.
type Warning struct {
	// Op names the stage that produced the warning ("toc", "layout", ...)
	Op string

	// Page is the zero-based page index the warning refers to, -1 when the
	// warning is not tied to a page
	Page int

	// Message describes the issue
	Message string
}

// String renders the warning for logs.
func (w Warning) String() string {
	if w.Page >= 0 {
		return fmt.Sprintf("%s: page %d: %s", w.Op, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Op, w.Message)
}

// FormatWarnings joins warnings into a single printable string, one per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
