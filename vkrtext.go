// Package vkrtext extracts the Introduction and Literature Review sections
// of Russian thesis PDFs into structured records.
//
// Basic usage:
//
//	rec, warnings, err := vkrtext.Open("thesis.pdf").
//	    Metadata(record.Metadata{Title: "...", Year: "2024", Topic: "..."}).
//	    Parse()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", vkrtext.FormatWarnings(warnings))
//	}
//
// Section ranges are resolved from the table of contents when one can be
// located and its printed page numbers calibrated; otherwise a fallback
// scanner looks for bold or numbered section headings directly. The lower
// level packages (reader, toc, headings, layout) are also usable on their
// own; the second-stage cleaner lives in the refine package.
package vkrtext

import (
	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/reader"
)

// Open prepares an Extractor for the PDF at path. The file is not touched
// until a terminal operation runs. The returned Extractor must be closed,
// either explicitly via Close or implicitly by a terminal operation.
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		cfg:      config.Default(),
	}
}

// FromDocument creates an Extractor over an already-opened document. The
// caller keeps ownership and is responsible for closing it.
func FromDocument(doc *reader.Document) *Extractor {
	return &Extractor{
		doc:       doc,
		docOpened: true,
		cfg:       config.Default(),
	}
}

// Must panics when err is non-nil. Intended for scripts and tests.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
