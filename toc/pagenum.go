package toc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/model"
)

// Candidate is a printed page number found on a page, with the bounding box
// of the block it came from.
type Candidate struct {
	Num  int
	BBox model.BBox
}

var standaloneNumber = regexp.MustCompile(`^\d{1,4}$`)

// PageNumberCandidates returns the standalone numbers printed in the top or
// bottom band of the page, where running page numbers live. Body text that
// happens to contain a bare number elsewhere on the page is excluded by the
// band check; coincidences inside the bands are resolved later by pairing.
func PageNumberCandidates(doc Pager, pageIndex int, cfg config.Config) []Candidate {
	if pageIndex < 0 || pageIndex >= doc.NumPages() {
		return nil
	}
	blocks, err := doc.PageBlocks(pageIndex)
	if err != nil {
		return nil
	}
	dim := doc.PageDim(pageIndex)

	var cands []Candidate
	for _, b := range blocks {
		inBand := b.BBox.Top() > (1-cfg.PageNumberBand)*dim.Height ||
			b.BBox.Bottom() < cfg.PageNumberBand*dim.Height
		if !inBand {
			continue
		}
		for _, ln := range b.Lines {
			s := strings.TrimSpace(ln.Text())
			if !standaloneNumber.MatchString(s) {
				continue
			}
			num, err := strconv.Atoi(s)
			if err != nil {
				continue
			}
			cands = append(cands, Candidate{Num: num, BBox: b.BBox})
		}
	}
	return cands
}

// ResolvePrintedPage determines the printed page number of the page at
// tocIndex. The TOC page itself often carries no number, and body text can
// contain stray numbers, so resolution is pairwise:
//
//   - no candidate on the TOC page: take the next page's first candidate
//     minus one;
//   - several candidates on the TOC page: trust the next page when it is
//     unambiguous, otherwise look for a cross-page pair differing by exactly
//     one and take the TOC-side value;
//   - exactly one candidate: trust it.
//
// ErrAmbiguousPageNumber is returned when no unambiguous reading exists.
func ResolvePrintedPage(doc Pager, tocIndex int, cfg config.Config) (int, error) {
	cands := PageNumberCandidates(doc, tocIndex, cfg)

	if len(cands) == 0 {
		next := PageNumberCandidates(doc, tocIndex+1, cfg)
		if len(next) != 0 {
			return next[0].Num - 1, nil
		}
		return 0, ErrAmbiguousPageNumber
	}

	if len(cands) > 1 {
		next := PageNumberCandidates(doc, tocIndex+1, cfg)
		if len(next) > 1 {
			for _, c := range cands {
				for _, n := range next {
					if c.Num-n.Num == 1 || n.Num-c.Num == 1 {
						return c.Num, nil
					}
				}
			}
			return 0, ErrAmbiguousPageNumber
		}
		if len(next) == 1 {
			return next[0].Num - 1, nil
		}
		return 0, ErrAmbiguousPageNumber
	}

	return cands[0].Num, nil
}

// PhysicalPage converts a printed page number to a zero-based document index
// given the TOC page's document index and its resolved printed number.
func PhysicalPage(printed, tocIndex, tocPrinted int) int {
	return tocIndex - tocPrinted + printed
}
