// Package layout turns a page's raw text blocks into body-text paragraphs.
//
// Two stages run per page. The [Filter] computes the page's dominant font
// (the most frequent size and name across all spans, approximating body
// text) and rejects layout noise: footnotes, figure captions, narrow column
// fragments, and anything styled unlike the body. The [Assembler] then merges
// the surviving blocks into paragraphs, joining text across block and page
// boundaries until sentence-terminal punctuation is reached, and honoring
// hyphenated line breaks.
//
// Both stages carry state across pages within one section scan and must not
// be reused between sections.
package layout
