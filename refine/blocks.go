package refine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CleanBlock turns one raw stored paragraph into filtered sentences.
//
// Blocks dominated by dot leaders or digits are rejected wholesale: both are
// the signature of a table of contents that leaked into a section range.
// When isLast is set and the raw block was cut off mid-sentence, the final
// surviving sentence is assumed truncated and dropped. Consecutive identical
// sentences collapse to one.
func CleanBlock(seg *Segmenter, block string, isLast bool) []string {
	txt := RemoveArtifacts(CleanRaw(block))
	if txt == "" {
		return nil
	}

	if reManyDots.MatchString(txt) {
		return nil
	}

	digits, total := 0, 0
	for _, r := range txt {
		total++
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if total > 0 && float64(digits)/float64(total) > DigitRatioCheck {
		return nil
	}

	var filtered []string
	for _, s := range seg.Split(txt) {
		if keepSentence(s) {
			filtered = append(filtered, s)
		}
	}

	if isLast && len(filtered) > 0 {
		raw := strings.TrimSpace(block)
		if raw != "" && !strings.HasSuffix(raw, ".") && !strings.HasSuffix(raw, "!") && !strings.HasSuffix(raw, "?") {
			filtered = filtered[:len(filtered)-1]
		}
	}

	var dedup []string
	prev := ""
	for i, s := range filtered {
		if i == 0 || s != prev {
			dedup = append(dedup, s)
		}
		prev = s
	}
	return dedup
}

// nospaceLen counts a string's characters excluding plain spaces. All the
// bucketing bounds are in these units.
func nospaceLen(s string) int {
	return utf8.RuneCountInString(strings.ReplaceAll(s, " ", ""))
}
