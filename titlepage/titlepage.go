// Package titlepage recovers a thesis's title and defense year from its
// first page. The title is the largest-font, horizontally centered group of
// spans; the year is a "20xx" number, looked for at the bottom of the page
// first since that is where title pages put it.
package titlepage

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/korpuslab/vkrtext/model"
)

// ErrEmptyPage means the first page carried no text spans.
var ErrEmptyPage = errors.New("titlepage: first page has no text")

var yearPattern = regexp.MustCompile(`\b20\d{2}\b`)

// Tolerances for title span selection.
const (
	sizeEpsilon     = 1e-3 // spans within this of the max size count as title
	centerTolRatio  = 0.1  // allowed center offset as a fraction of page width
	bottomBandRatio = 0.2  // bottom fraction of the page searched for the year first
)

// SpanSource provides first-page access. *reader.Document satisfies it.
type SpanSource interface {
	NumPages() int
	PageSpans(pageIndex int) ([]model.Span, error)
	PageDim(pageIndex int) model.PageDim
}

// Extract returns the document title and defense year from the first page.
// Either result may be empty when the page does not yield it; only a fully
// empty page is an error.
func Extract(doc SpanSource) (title, year string, err error) {
	if doc.NumPages() == 0 {
		return "", "", ErrEmptyPage
	}
	spans, err := doc.PageSpans(0)
	if err != nil {
		return "", "", ErrEmptyPage
	}
	dim := doc.PageDim(0)

	var candidates []model.Span
	maxSize := 0.0
	for _, sp := range spans {
		if strings.TrimSpace(sp.Text) == "" {
			continue
		}
		candidates = append(candidates, sp)
		if sp.Size > maxSize {
			maxSize = sp.Size
		}
	}
	if len(candidates) == 0 {
		return "", "", ErrEmptyPage
	}

	return assembleTitle(candidates, maxSize, dim), findYear(candidates, dim), nil
}

// assembleTitle groups the max-size centered spans into lines and joins them
// top to bottom, left to right.
func assembleTitle(candidates []model.Span, maxSize float64, dim model.PageDim) string {
	var titleSpans []model.Span
	for _, sp := range candidates {
		if !nearMax(sp.Size, maxSize) {
			continue
		}
		offset := sp.BBox.CenterX() - dim.Width/2
		if offset < 0 {
			offset = -offset
		}
		if offset <= centerTolRatio*dim.Width {
			titleSpans = append(titleSpans, sp)
		}
	}
	// Off-center layouts: fall back to every max-size span.
	if len(titleSpans) == 0 {
		for _, sp := range candidates {
			if nearMax(sp.Size, maxSize) {
				titleSpans = append(titleSpans, sp)
			}
		}
	}
	if len(titleSpans) == 0 {
		return ""
	}

	sort.SliceStable(titleSpans, func(i, j int) bool {
		if titleSpans[i].BBox.Y0 != titleSpans[j].BBox.Y0 {
			return titleSpans[i].BBox.Y0 > titleSpans[j].BBox.Y0
		}
		return titleSpans[i].BBox.X0 < titleSpans[j].BBox.X0
	})

	lineTol := maxSize * 0.5
	var parts []string
	var line []model.Span
	flush := func() {
		if len(line) == 0 {
			return
		}
		sort.SliceStable(line, func(a, b int) bool { return line[a].BBox.X0 < line[b].BBox.X0 })
		words := make([]string, len(line))
		for i, sp := range line {
			words[i] = strings.TrimSpace(sp.Text)
		}
		parts = append(parts, strings.Join(words, " "))
		line = nil
	}
	for _, sp := range titleSpans {
		if len(line) > 0 {
			diff := line[len(line)-1].BBox.Y0 - sp.BBox.Y0
			if diff < 0 {
				diff = -diff
			}
			if diff > lineTol {
				flush()
			}
		}
		line = append(line, sp)
	}
	flush()

	return strings.Join(parts, " ")
}

// findYear looks for a 20xx year, preferring the bottom of the page.
func findYear(candidates []model.Span, dim model.PageDim) string {
	for _, sp := range candidates {
		if sp.BBox.Top() <= bottomBandRatio*dim.Height {
			if m := yearPattern.FindString(sp.Text); m != "" {
				return m
			}
		}
	}
	for _, sp := range candidates {
		if m := yearPattern.FindString(sp.Text); m != "" {
			return m
		}
	}
	return ""
}

func nearMax(size, maxSize float64) bool {
	diff := size - maxSize
	if diff < 0 {
		diff = -diff
	}
	return diff < sizeEpsilon
}
