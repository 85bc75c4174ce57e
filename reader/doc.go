// Package reader provides access to the text geometry of a PDF document.
//
// It wraps github.com/ledongthuc/pdf and materializes each page's raw text
// runs as model.Span values carrying font name, font size, and bounding box,
// then groups them into lines and layout blocks for the packages downstream.
//
// A Document owns its underlying file handle. It is read-only after Open and
// safe to share across goroutines that only read, but the intended model is
// one worker per document: open, process, Close.
package reader
