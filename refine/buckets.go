package refine

import (
	"regexp"
	"strings"
)

var listMarker = regexp.MustCompile(`^\s*([-•]|\d+\.)\s*`)

// CoalesceLists merges runs of list-marker sentences into a single group,
// glued onto the preceding paragraph when one exists. An orphan list under
// 300 no-space characters is dropped; a merged group over 800 is split near
// its midpoint at the next period.
func CoalesceLists(sents []string) []string {
	var result []string
	i := 0
	for i < len(sents) {
		if !listMarker.MatchString(sents[i]) {
			result = append(result, sents[i])
			i++
			continue
		}

		var items []string
		for i < len(sents) && listMarker.MatchString(sents[i]) {
			items = append(items, strings.TrimSpace(listMarker.ReplaceAllString(sents[i], "")))
			i++
		}

		group := strings.Join(items, " ")
		if len(result) > 0 {
			prev := result[len(result)-1]
			result = result[:len(result)-1]
			group = prev + " " + group
		}
		// The orphan test runs after the merge, so a group that consumed the
		// only preceding paragraph and still comes up short is dropped whole.
		if len(result) == 0 && nospaceLen(group) < 300 {
			continue
		}

		if nospaceLen(group) > 800 {
			part1, part2, ok := splitAtMidPeriod(group)
			if ok {
				result = append(result, part1, part2)
			} else {
				result = append(result, group)
			}
		} else {
			result = append(result, group)
		}
	}
	return result
}

// BucketSentences packs sentences into paragraphs of MinBlockLen to
// MaxBlockLen no-space characters. A buffer flushes once it reaches the
// minimum and ends in terminal punctuation, or early when the next sentence
// would push it past the maximum. Oversized sentences are split near the
// midpoint (at the midpoint itself when no period follows it) and emitted on
// their own, flushing the buffer first.
func BucketSentences(sents []string) []string {
	var paragraphs []string
	buf := ""
	bufLen := 0

	flush := func() {
		if buf != "" {
			paragraphs = append(paragraphs, buf)
			buf, bufLen = "", 0
		}
	}

	for _, s := range sents {
		slen := nospaceLen(s)

		if slen > LargeBlockLen {
			part1, part2, ok := splitAtMidPeriod(s)
			if !ok {
				runes := []rune(s)
				mid := len(runes) / 2
				part1 = strings.TrimSpace(string(runes[:mid+1]))
				part2 = strings.TrimSpace(string(runes[mid+1:]))
			}
			flush()
			if part1 != "" {
				paragraphs = append(paragraphs, part1)
			}
			if part2 != "" {
				paragraphs = append(paragraphs, part2)
			}
			continue
		}

		if bufLen+slen <= MaxBlockLen {
			if buf == "" {
				buf = s
			} else {
				buf = buf + " " + s
			}
			bufLen += slen
			if bufLen >= MinBlockLen && endsTerminal(buf) {
				flush()
			}
		} else {
			flush()
			buf, bufLen = s, slen
		}
	}
	flush()

	return paragraphs
}

// TrimTrailing drops short paragraphs one by one from the end.
func TrimTrailing(paras []string) []string {
	for len(paras) > 0 && nospaceLen(paras[len(paras)-1]) < MinTrailingLen {
		paras = paras[:len(paras)-1]
	}
	return paras
}

// splitAtMidPeriod splits s at the first period at or after its midpoint,
// keeping the period on the first half. ok is false when no period follows
// the midpoint.
func splitAtMidPeriod(s string) (part1, part2 string, ok bool) {
	runes := []rune(s)
	mid := len(runes) / 2
	for i := mid; i < len(runes); i++ {
		if runes[i] == '.' {
			return strings.TrimSpace(string(runes[:i+1])), strings.TrimSpace(string(runes[i+1:])), true
		}
	}
	return "", "", false
}

func endsTerminal(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}
