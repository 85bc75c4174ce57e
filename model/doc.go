// Package model provides the intermediate representation for extracted
// thesis content: page geometry, text spans with font metadata, layout
// blocks, table of contents entries, and resolved section ranges.
//
// All types in this package are plain values. They are produced per page by
// the reader package, consumed by the toc, headings, and layout packages, and
// discarded once a document has been processed.
//
// Coordinates follow the PDF convention: the origin is the bottom-left corner
// of the page and Y grows upward. "Top of the page" therefore means large Y.
package model
