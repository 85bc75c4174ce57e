package layout

import (
	"strings"

	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/model"
)

// Assembler merges filtered blocks into sentence-complete paragraphs.
//
// It holds one piece of carry-over state: pending, a possibly incomplete
// paragraph, which persists across page boundaries within a section. A
// paragraph is complete when its last line ends in terminal punctuation
// (".", "!", "?"); anything still pending after the final page is flushed
// as-is, even if incomplete.
type Assembler struct {
	cfg        config.Config
	pending    string
	paragraphs []string
}

// NewAssembler creates an assembler for one section scan.
func NewAssembler(cfg config.Config) *Assembler {
	return &Assembler{cfg: cfg}
}

// AppendPage feeds one page's surviving blocks, top to bottom.
func (a *Assembler) AppendPage(blocks []model.Block, dim model.PageDim) {
	prevHyphen := false

	for _, b := range blocks {
		text := b.Text()

		// A block continuing a hyphenated word is glued on verbatim, with
		// no punctuation checks; centered blocks are exempt because a
		// centered continuation is a caption, not body text.
		if prevHyphen && !isCentered(b.BBox, dim, a.cfg.CenterToleranceRatio) {
			if a.pending != "" {
				a.pending = a.pending + "\n" + text
			} else {
				a.pending = text
			}
			prevHyphen = endsWithHyphen(text)
			continue
		}

		if text == "" {
			continue
		}

		// Bullet blocks stand alone regardless of punctuation. A complete
		// pending paragraph is flushed first; an incomplete one stays
		// pending and resumes accumulating after the list.
		firstLine := b.FirstLine()
		if strings.HasPrefix(firstLine, "-") || strings.HasPrefix(firstLine, "•") {
			if a.pending != "" && endsTerminal(a.pending) {
				a.paragraphs = append(a.paragraphs, a.pending)
				a.pending = ""
			}
			a.paragraphs = append(a.paragraphs, text)
			continue
		}

		candidate := text
		if a.pending != "" {
			candidate = a.pending + "\n" + text
		}

		lines := strings.Split(candidate, "\n")
		if endsTerminal(strings.TrimSpace(lines[len(lines)-1])) {
			a.paragraphs = append(a.paragraphs, candidate)
			a.pending = ""
		} else {
			a.pending = candidate
		}
		prevHyphen = endsWithHyphen(text)
	}
}

// Finish flushes any remaining carry-over and returns the paragraphs.
func (a *Assembler) Finish() []string {
	if a.pending != "" {
		a.paragraphs = append(a.paragraphs, a.pending)
		a.pending = ""
	}
	return a.paragraphs
}

// endsTerminal reports whether s ends in sentence-terminal punctuation.
func endsTerminal(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}
