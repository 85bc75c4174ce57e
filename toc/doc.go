// Package toc locates and parses a thesis's table of contents and resolves
// the page ranges of the Introduction and Literature Review sections.
//
// The pipeline is a chain of fallible stages:
//
//	pageIdx, err := toc.Locate(doc, cfg)              // find the TOC page
//	printed, err := toc.ResolvePrintedPage(doc, pageIdx, cfg)
//	entries, err := toc.ParseEntries(blocks, cfg)     // (title, page) pairs
//	entries = toc.DropSelfReferences(entries, pageIdx, printed)
//	introIdx, intro, err := toc.IntroductionRange(entries, cfg)
//	review, err := toc.ReviewRange(entries, introIdx, cfg)
//
// Each stage returns a typed sentinel on failure so the orchestrator can
// decide whether to fall through to heading scanning (ErrContentNotFound,
// ErrAmbiguousPageNumber) or give up on the document (ErrSectionNotFound).
// Ranges produced here are in printed page numbers; converting them to
// zero-based document indices is the caller's job, using the printed page
// resolved for the TOC page itself as the offset anchor.
package toc
