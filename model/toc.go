package model

// TocEntry is a single parsed table of contents entry: a section title and
// the page number printed next to it. Y records the entry's vertical position
// on the TOC page so entries can be restored to top-to-bottom order after
// parsing (larger Y is higher on the page).
type TocEntry struct {
	// Title is the section title as printed in the table of contents
	Title string

	// Page is the printed page number next to the title
	Page int

	// Y is the vertical position of the entry's block on the TOC page
	Y float64
}

// SectionRange is a resolved page range for one section. Pages are zero-based
// document page indices, inclusive on both ends. End is nil for an open-ended
// range (the section runs to the end of the document).
type SectionRange struct {
	// Title is the section title as it will appear as the record's section key
	Title string

	// Start is the first page of the section
	Start int

	// End is the last page of the section, nil when unresolved
	End *int
}

// Pages expands the range into a page index list, using lastPage as the
// bound for open-ended ranges. The result is clamped to [0, lastPage].
func (r SectionRange) Pages(lastPage int) []int {
	end := lastPage
	if r.End != nil && *r.End < end {
		end = *r.End
	}
	start := r.Start
	if start < 0 {
		start = 0
	}
	var pages []int
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
