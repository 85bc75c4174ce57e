package toc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/model"
)

// subSection matches numbered sub-entries like "2.1" or "3.1.2 Метрики".
var subSection = regexp.MustCompile(`^\s*\d+\.\d`)

// IntroductionRange finds the Introduction entry and its printed page range.
// It returns the entry's index so the review lookup can continue after it.
//
// The printed page number must fall below cfg.MaxIntroPrintedPage: an
// introduction that deep into the front matter means the entry is not the
// real one, and resolution fails rather than producing a bogus range. The
// end page is the next entry's page minus one, or open when the Introduction
// is the last entry.
func IntroductionRange(entries []model.TocEntry, cfg config.Config) (int, model.SectionRange, error) {
	for i, e := range entries {
		lower := strings.ToLower(e.Title)
		if !containsAny(lower, cfg.IntroKeywords) {
			continue
		}
		if e.Page >= cfg.MaxIntroPrintedPage {
			return 0, model.SectionRange{}, fmt.Errorf(
				"toc: introduction printed page %d exceeds bound %d: %w",
				e.Page, cfg.MaxIntroPrintedPage, ErrSectionNotFound)
		}
		rng := model.SectionRange{Title: lower, Start: e.Page}
		if i+1 < len(entries) {
			end := entries[i+1].Page - 1
			rng.End = &end
		}
		return i, rng, nil
	}
	return 0, model.SectionRange{}, ErrSectionNotFound
}

// ReviewRange finds the Literature Review / Method section after the
// Introduction. Numbered sub-entries ("N.M ...") are skipped both when
// matching and when scanning forward for the section's end.
//
// Three tiers, tried in order:
//
//  1. an entry matching a review keyword and no bibliography keyword; the
//     end page is the next top-level entry's page minus one, clamped to not
//     precede the start;
//  2. the entry immediately after a goals/tasks entry;
//  3. the first post-Introduction top-level entry, taken verbatim.
//
// The two fallback tiers bound the range by the next top-level entry's page
// itself rather than page minus one. The asymmetry with tier 1 is inherited
// tuning and is preserved deliberately.
//
// ErrReviewNotFound is returned when no tier matches; callers treat this as
// recoverable and emit the Introduction alone.
func ReviewRange(entries []model.TocEntry, introIdx int, cfg config.Config) (model.SectionRange, error) {
	// Tier 1: direct keyword match.
	for j := introIdx + 1; j < len(entries); j++ {
		e := entries[j]
		if subSection.MatchString(e.Title) {
			continue
		}
		lower := strings.ToLower(e.Title)
		if !containsAny(lower, cfg.ReviewKeywords) || containsAny(lower, cfg.NotReviewKeywords) {
			continue
		}
		if end, ok := nextTopLevelPage(entries, j+1); ok {
			endPage := end - 1
			if endPage < e.Page {
				endPage = e.Page
			}
			return model.SectionRange{Title: "обзор", Start: e.Page, End: &endPage}, nil
		}
	}

	for j := introIdx + 1; j < len(entries); j++ {
		e := entries[j]
		if subSection.MatchString(e.Title) {
			continue
		}
		lower := strings.ToLower(e.Title)

		if containsAny(lower, cfg.GoalKeywords) {
			// Tier 2: the section after the goals/tasks entry.
			if j+1 >= len(entries) {
				continue
			}
			next := entries[j+1]
			if end, ok := nextTopLevelPage(entries, j+2); ok {
				endPage := end
				return model.SectionRange{Title: next.Title, Start: next.Page, End: &endPage}, nil
			}
			continue
		}

		// Tier 3: first top-level entry after the Introduction, verbatim.
		if end, ok := nextTopLevelPage(entries, j+1); ok {
			endPage := end
			return model.SectionRange{Title: e.Title, Start: e.Page, End: &endPage}, nil
		}
	}

	return model.SectionRange{}, ErrReviewNotFound
}

// nextTopLevelPage returns the printed page of the first entry at or after
// from that is not a numbered sub-entry.
func nextTopLevelPage(entries []model.TocEntry, from int) (int, bool) {
	for k := from; k < len(entries); k++ {
		if subSection.MatchString(entries[k].Title) {
			continue
		}
		return entries[k].Page, true
	}
	return 0, false
}
