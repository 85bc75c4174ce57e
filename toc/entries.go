package toc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/model"
)

var (
	hasLetter  = regexp.MustCompile(`\p{L}`)
	hasDigit   = regexp.MustCompile(`\d`)
	dotLeaders = regexp.MustCompile(`\.{2,}`)
	pageNumber = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// ParseEntries parses the blocks of a TOC page into (title, page) entries.
//
// Two layouts are handled. Modern documents render the title and the page
// number as separate lines inside one block. Legacy documents join them with
// a run of dot leaders ("Введение......... 3"), which is normalized into a
// line break before parsing. A block only qualifies as TOC content when it
// contains both letters and digits.
//
// The result is sorted top to bottom. ErrNoEntries is returned when nothing
// parses.
func ParseEntries(blocks []model.Block, cfg config.Config) ([]model.TocEntry, error) {
	var entries []model.TocEntry

	for _, b := range blocks {
		text := b.Text()
		if !hasLetter.MatchString(text) || !hasDigit.MatchString(text) {
			continue
		}

		legacy := false
		if strings.Contains(text, "...") {
			text = dotLeaders.ReplaceAllString(text, "\n")
			legacy = true
		}

		var lines []string
		for _, ln := range strings.Split(text, "\n") {
			if t := strings.TrimSpace(ln); t != "" {
				lines = append(lines, t)
			}
		}

		// Page numbers split into their own blocks leave a single line
		// behind; only the legacy layout legitimately collapses to one.
		if len(lines) < 2 && !legacy {
			continue
		}

		title := lines[0]
		begin := 1

		// The "Contents" heading itself can glue onto the first entry.
		if containsAnyWord(title, cfg.TocKeywords) {
			if len(lines) < 2 {
				continue
			}
			title = lines[1]
			begin = 2
		}

		// A title of one or two characters is stray page-number debris.
		if utf8.RuneCountInString(title) <= 2 {
			if len(lines) < 2 {
				continue
			}
			title = lines[1]
			begin = 2
		}

		entries = append(entries, parseBlockEntries(lines, title, begin, b.BBox.Top())...)
	}

	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	// Restore top-to-bottom order (larger Y is higher on the page).
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Y > entries[j].Y
	})

	return entries, nil
}

// parseBlockEntries walks the remaining lines of a block. The first
// standalone integer terminates the current entry and the line after it
// starts the next one.
func parseBlockEntries(lines []string, title string, begin int, y float64) []model.TocEntry {
	var entries []model.TocEntry
	tail := 0

	for begin < len(lines) {
		page := -1
		for i, ln := range lines[begin:] {
			if m := pageNumber.FindStringSubmatch(ln); m != nil {
				n, err := strconv.Atoi(m[1])
				if err == nil {
					page = n
					tail = i
					break
				}
			}
		}
		if page < 0 {
			begin = begin + tail + 2
			continue
		}

		entries = append(entries, model.TocEntry{Title: title, Page: page, Y: y})

		if begin+tail+1 < len(lines) {
			title = lines[begin+tail+1]
		} else {
			title = lines[0]
		}
		begin = begin + tail + 2
	}

	return entries
}

// DropSelfReferences removes entries whose printed page resolves back to the
// TOC page itself. These are artifacts of the TOC's own running page number
// being parsed as an entry.
func DropSelfReferences(entries []model.TocEntry, tocIndex, tocPrinted int) []model.TocEntry {
	kept := entries[:0]
	for _, e := range entries {
		if PhysicalPage(e.Page, tocIndex, tocPrinted) == tocIndex {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
