package layout

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/korpuslab/vkrtext/config"
	"github.com/korpuslab/vkrtext/headings"
	"github.com/korpuslab/vkrtext/model"
)

var (
	// listStart matches the markers that open a list item: "1)", "-", "•", "–".
	listStart = regexp.MustCompile(`^\s*(?:\d+\)|[-•–])`)

	// numDot matches a figure or table number inside a caption ("Рисунок 3.").
	numDot = regexp.MustCompile(`\d+\.`)
)

// Filter rejects layout noise from a page's blocks. It keeps one piece of
// cross-page state: whether the last kept block ended mid-word, so a
// continuation block at the top of the next page is never filtered away.
type Filter struct {
	cfg        config.Config
	repair     bool
	prevHyphen bool
}

// NewFilter creates a filter. When repair is set (the no-TOC path), every
// span's text is first run through the Windows-1251 encoding repair.
func NewFilter(cfg config.Config, repair bool) *Filter {
	return &Filter{cfg: cfg, repair: repair}
}

// FilterPage filters one page's blocks and returns the survivors in
// top-to-bottom order. Call it page by page within a section scan.
func (f *Filter) FilterPage(blocks []model.Block, dim model.PageDim) []model.Block {
	if f.repair {
		blocks = repairBlocks(blocks)
	}

	domSize, domName, ok := dominantFont(blocks)
	if !ok {
		return nil
	}

	prelim := f.prelimFilter(blocks, dim, domSize, domName)
	return f.dropCaptions(prelim, dim)
}

// dominantFont returns the most frequent font size and font name across all
// spans of the page.
func dominantFont(blocks []model.Block) (float64, string, bool) {
	sizeCount := map[float64]int{}
	nameCount := map[string]int{}
	for _, b := range blocks {
		for _, sp := range b.Spans() {
			sizeCount[sp.Size]++
			nameCount[sp.Font]++
		}
	}
	if len(sizeCount) == 0 {
		return 0, "", false
	}
	return mostFrequentSize(sizeCount), mostFrequentName(nameCount), true
}

// prelimFilter applies the per-block style and geometry tests.
func (f *Filter) prelimFilter(blocks []model.Block, dim model.PageDim, domSize float64, domName string) []model.Block {
	var kept []model.Block

	for _, b := range blocks {
		text := b.Text()

		// A block continuing a hyphenated word from the previous block is
		// kept unconditionally: filtering it would corrupt the word. Only
		// figure captions are still excluded.
		if f.prevHyphen && b.BBox.X0 < f.cfg.LeftMarginX &&
			!strings.Contains(strings.ToLower(text), f.cfg.CaptionPrefix) {
			kept = append(kept, b)
			f.prevHyphen = endsWithHyphen(text)
			continue
		}

		if text == "" {
			continue
		}

		if !f.cyrillicEnough(text) {
			continue
		}

		firstLine := b.FirstLine()
		lastLine := b.LastLine()

		// One unmatched parenthesis signals the sentence continues in the
		// next block; such blocks must survive the length and width tests.
		singleBracket := strings.Count(text, "(")+strings.Count(text, ")") == 1

		plainLen := utf8.RuneCountInString(strings.TrimSpace(strings.ReplaceAll(text, "\n", "")))
		if plainLen < f.cfg.MinBlockChars {
			if !listStart.MatchString(firstLine) && !strings.HasSuffix(lastLine, ":") && !singleBracket {
				continue
			}
		}

		if strings.HasPrefix(strings.ToLower(firstLine), f.cfg.CaptionPrefix) {
			continue
		}

		if !f.matchesDominantStyle(b, domSize, domName) && !listStart.MatchString(firstLine) {
			continue
		}

		if b.BBox.Width() < f.cfg.MinBlockWidthRatio*dim.Width {
			if !listStart.MatchString(firstLine) && !strings.HasSuffix(lastLine, ":") && !singleBracket {
				continue
			}
		}

		kept = append(kept, b)
		f.prevHyphen = endsWithHyphen(text)
	}

	return kept
}

// matchesDominantStyle checks a block's average font size and dominant font
// name against the page's body-text style.
func (f *Filter) matchesDominantStyle(b model.Block, domSize float64, domName string) bool {
	spans := b.Spans()
	if len(spans) == 0 {
		return false
	}
	total := 0.0
	nameCount := map[string]int{}
	for _, sp := range spans {
		total += sp.Size
		nameCount[sp.Font]++
	}
	avg := total / float64(len(spans))

	diff := avg - domSize
	if diff < 0 {
		diff = -diff
	}
	return diff <= f.cfg.FontSizeDiffThreshold && mostFrequentName(nameCount) == domName
}

// cyrillicEnough requires at least MinCyrillicRatio of the block's alphabetic
// characters to be Cyrillic. Blocks with no letters pass.
func (f *Filter) cyrillicEnough(text string) bool {
	letters, cyr := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if isCyrillic(r) {
			cyr++
		}
	}
	if letters == 0 {
		return true
	}
	return float64(cyr)/float64(letters) >= f.cfg.MinCyrillicRatio
}

// dropCaptions runs the median-gap pass: a short, centered, single-line
// block sitting after an unusually large vertical gap and containing a
// "number." pattern is a figure or table caption that survived the first
// filter.
func (f *Filter) dropCaptions(blocks []model.Block, dim model.PageDim) []model.Block {
	if len(blocks) == 0 {
		return nil
	}

	sorted := make([]model.Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Top() > sorted[j].BBox.Top()
	})

	var gaps []float64
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i-1].BBox.Bottom() - sorted[i].BBox.Top()
		if gap < 0 {
			gap = 0
		}
		gaps = append(gaps, gap)
	}
	medianGap := median(gaps)

	var kept []model.Block
	for i, b := range sorted {
		text := b.Text()
		plainLen := utf8.RuneCountInString(strings.TrimSpace(strings.ReplaceAll(text, "\n", "")))

		gapToPrev := 0.0
		if i > 0 {
			gapToPrev = sorted[i-1].BBox.Bottom() - b.BBox.Top()
			if gapToPrev < 0 {
				gapToPrev = 0
			}
		}

		isCaption := !strings.Contains(text, "\n") &&
			plainLen <= f.cfg.CaptionMaxChars &&
			isCentered(b.BBox, dim, f.cfg.CenterToleranceRatio) &&
			gapToPrev > f.cfg.GapMultiplier*medianGap &&
			numDot.MatchString(text) &&
			!strings.HasSuffix(strings.TrimSpace(text), ".")

		if isCaption {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// repairBlocks maps every span's text through the encoding repair.
func repairBlocks(blocks []model.Block) []model.Block {
	out := make([]model.Block, len(blocks))
	for i, b := range blocks {
		nb := model.Block{BBox: b.BBox, Lines: make([]model.Line, len(b.Lines))}
		for j, ln := range b.Lines {
			nl := model.Line{BBox: ln.BBox, Spans: make([]model.Span, len(ln.Spans))}
			for k, sp := range ln.Spans {
				sp.Text = headings.RepairEncoding(sp.Text)
				nl.Spans[k] = sp
			}
			nb.Lines[j] = nl
		}
		out[i] = nb
	}
	return out
}

func isCentered(b model.BBox, dim model.PageDim, tolRatio float64) bool {
	offset := b.CenterX() - dim.Width/2
	if offset < 0 {
		offset = -offset
	}
	return offset < tolRatio*dim.Width
}

func isCyrillic(r rune) bool {
	return (r >= 'А' && r <= 'я') || r == 'Ё' || r == 'ё'
}

func endsWithHyphen(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasSuffix(t, "-") || strings.HasSuffix(t, "‐")
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func mostFrequentSize(counts map[float64]int) float64 {
	best, bestN := 0.0, -1
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best
}

func mostFrequentName(counts map[string]int) string {
	best, bestN := "", -1
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best
}
