// Package headings is the fallback path for documents without a usable table
// of contents. It scans every page's spans for a bold or numbered heading
// matching a target keyword and derives the section's page range from the
// position of the next heading of any kind.
//
// Documents that reach this path often have corrupted font encodings (their
// TOC failed to parse for the same reason), so every span is first run
// through a best-effort Latin-1 -> Windows-1251 re-decode. Whether the same
// repair should also apply when a TOC exists but came from a mis-encoded
// font is an open question; it is intentionally not extended there.
package headings
