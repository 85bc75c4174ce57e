package headings

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/model"
)

// ErrHeadingNotFound means the keyword never matched a bold or numbered span
// anywhere in the document. When both the TOC path and this scanner fail for
// the Introduction, the document cannot be processed.
var ErrHeadingNotFound = errors.New("headings: heading not found")

// anyHeading matches a numbered heading of any level at the start of a span
// ("2 Обзор", "3.1 Метрики").
var anyHeading = regexp.MustCompile(`^\s*\d+(\.\d+)*\s*[\p{L}]+`)

// SpanSource is the document access the scanner needs. *reader.Document
// satisfies it.
type SpanSource interface {
	NumPages() int
	PageSpans(pageIndex int) ([]model.Span, error)
}

// Scanner locates section page ranges by scanning span styling directly.
type Scanner struct {
	cfg config.Config
}

// NewScanner creates a scanner with the given configuration.
func NewScanner(cfg config.Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// FindSection finds the page range of the section whose heading contains
// keyword. A span counts as the section heading when it contains the keyword
// and is either bold or prefixed with a section number; the first match
// fixes the start page. The end page is the page before the first subsequent
// page showing any bold span or numbered heading, meaning some other section
// began there; with no such page the range is open-ended.
func (s *Scanner) FindSection(doc SpanSource, keyword string) (model.SectionRange, error) {
	keyword = strings.ToLower(keyword)
	numbered := regexp.MustCompile(`(?i)\d+(\.\d+)*\s*` + regexp.QuoteMeta(keyword))

	start := -1
	for page := 0; page < doc.NumPages() && start < 0; page++ {
		spans, err := doc.PageSpans(page)
		if err != nil {
			continue
		}
		for _, sp := range spans {
			text := RepairEncoding(sp.Text)
			if !strings.Contains(strings.ToLower(text), keyword) {
				continue
			}
			if sp.IsBold() || numbered.MatchString(text) {
				start = page
				break
			}
		}
	}
	if start < 0 {
		return model.SectionRange{}, fmt.Errorf("headings: %q: %w", keyword, ErrHeadingNotFound)
	}

	rng := model.SectionRange{Title: keyword, Start: start}
	for page := start + 1; page < doc.NumPages(); page++ {
		spans, err := doc.PageSpans(page)
		if err != nil {
			continue
		}
		if pageHasHeading(spans) {
			end := page - 1
			rng.End = &end
			break
		}
	}
	return rng, nil
}

// pageHasHeading reports whether any span on the page looks like a heading
// of any section.
func pageHasHeading(spans []model.Span) bool {
	for _, sp := range spans {
		if sp.IsBold() {
			return true
		}
		if anyHeading.MatchString(RepairEncoding(sp.Text)) {
			return true
		}
	}
	return false
}
