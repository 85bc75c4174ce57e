// Package refine is the second processing stage. It consumes records
// persisted by the extraction stage, cleans their raw paragraph text, splits
// it into sentences, filters and deduplicates them, and regroups the result
// into length-bounded paragraphs under renamed section keys ("введение",
// "обзор").
//
// Records that are too small to be useful, or that carry no section keys,
// are skipped without error. A section that ends up with fewer than two
// paragraphs rejects the whole document.
package refine
