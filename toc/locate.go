package toc

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/model"
)

// Sentinel errors for the TOC resolution chain.
var (
	// ErrContentNotFound means no page qualified as a table of contents;
	// the caller should fall back to heading scanning.
	ErrContentNotFound = errors.New("toc: table of contents page not found")

	// ErrAmbiguousPageNumber means the printed-to-physical page offset could
	// not be resolved; the caller should fall back to heading scanning.
	ErrAmbiguousPageNumber = errors.New("toc: printed page number is ambiguous")

	// ErrNoEntries means the TOC page produced no parseable entries.
	ErrNoEntries = errors.New("toc: no entries parsed from contents page")

	// ErrSectionNotFound means the Introduction could not be located in the
	// parsed entries. Nothing downstream can be produced for the document.
	ErrSectionNotFound = errors.New("toc: introduction section not found")

	// ErrReviewNotFound means no Review/Method section exists. Recoverable:
	// the record is emitted with the Introduction only.
	ErrReviewNotFound = errors.New("toc: review section not found")
)

// Pager is the page-level document access the TOC stages need. *reader.Document
// satisfies it; tests substitute synthetic documents.
type Pager interface {
	NumPages() int
	PageText(pageIndex int) (string, error)
	PageBlocks(pageIndex int) ([]model.Block, error)
	PageDim(pageIndex int) model.PageDim
}

// Locate scans pages in order and returns the index of the first page that
// looks like a table of contents: either it contains a TOC keyword outright,
// or it mentions both an Introduction and a Conclusion keyword, which only a
// full section listing does.
func Locate(doc Pager, cfg config.Config) (int, error) {
	for i := 0; i < doc.NumPages(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			continue
		}
		if containsAnyWord(text, cfg.TocKeywords) {
			return i, nil
		}
		if containsAnyWord(text, cfg.IntroKeywords) && containsAnyWord(text, cfg.ConclusionKeywords) {
			return i, nil
		}
	}
	return 0, ErrContentNotFound
}

// containsAnyWord reports whether text contains any keyword as a whole word,
// case-insensitively. RE2's \b is ASCII-only, so the boundary is expressed
// explicitly as "not a letter or digit" to work for Cyrillic keywords.
func containsAnyWord(text string, keywords []string) bool {
	for _, kw := range keywords {
		if wordPattern(kw).MatchString(text) {
			return true
		}
	}
	return false
}

// wordPatterns caches compiled keyword patterns; sync.Map keeps Locate
// re-entrant when documents are processed in parallel.
var wordPatterns sync.Map

func wordPattern(kw string) *regexp.Regexp {
	if re, ok := wordPatterns.Load(kw); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)(?:\A|[^\p{L}\d])` + regexp.QuoteMeta(kw) + `(?:[^\p{L}\d]|\z)`)
	wordPatterns.Store(kw, re)
	return re
}

// containsAny reports a plain case-insensitive substring match against any
// of the keywords.
func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
