package model

import "strings"

// Span is the smallest text run carrying font metadata and position.
// Spans are immutable once produced by the reader.
type Span struct {
	// Text is the decoded text of the run
	Text string

	// Font is the PDF font name (e.g. "TimesNewRomanPSMT" or "F44+Bold")
	Font string

	// Size is the font size in points
	Size float64

	// BBox is the bounding box of the run
	BBox BBox
}

// IsBold reports whether the span's font name indicates bold styling.
// The "f44" form appears in documents whose fonts were subset without
// a readable style suffix.
func (s Span) IsBold() bool {
	name := strings.ToLower(s.Font)
	return strings.Contains(name, "bold") || strings.Contains(name, "f44")
}

// Line is a horizontal row of spans within a block, ordered left to right.
type Line struct {
	// Spans are the text runs of the line (in reading order)
	Spans []Span

	// BBox is the bounding box of the line
	BBox BBox
}

// Text assembles the line's text. A space is inserted between adjacent spans
// when the horizontal gap between them is noticeable relative to the font
// size; tightly kerned runs are joined directly.
func (l Line) Text() string {
	var sb strings.Builder
	for i, sp := range l.Spans {
		if i > 0 {
			prev := l.Spans[i-1]
			gap := sp.BBox.X0 - prev.BBox.X1
			if gap > sp.Size*0.2 && !strings.HasSuffix(prev.Text, " ") && !strings.HasPrefix(sp.Text, " ") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(sp.Text)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Block is a layout-grouped cluster of lines treated as one filtering unit.
// It carries the aggregate bounding box and the ordered lines; the block's
// text preserves line breaks.
type Block struct {
	// Lines are the block's lines, top to bottom
	Lines []Line

	// BBox is the aggregate bounding box of the block
	BBox BBox
}

// Text returns the block's text with lines joined by newlines. Leading and
// trailing whitespace of each line is trimmed; empty lines are kept out.
func (b Block) Text() string {
	parts := make([]string, 0, len(b.Lines))
	for _, ln := range b.Lines {
		if t := strings.TrimSpace(ln.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// Spans returns all spans of the block in reading order.
func (b Block) Spans() []Span {
	var spans []Span
	for _, ln := range b.Lines {
		spans = append(spans, ln.Spans...)
	}
	return spans
}

// FirstLine returns the trimmed text of the block's first line, or "".
func (b Block) FirstLine() string {
	if len(b.Lines) == 0 {
		return ""
	}
	return strings.TrimSpace(b.Lines[0].Text())
}

// LastLine returns the trimmed text of the block's last line, or "".
func (b Block) LastLine() string {
	if len(b.Lines) == 0 {
		return ""
	}
	return strings.TrimSpace(b.Lines[len(b.Lines)-1].Text())
}
