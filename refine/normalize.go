package refine

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Length and ratio thresholds for the cleaning stage. The paragraph bounds
// count characters excluding spaces.
const (
	MinFileSize        = 1536 // bytes; smaller record files are skipped
	MinBlockLen        = 600
	MaxBlockLen        = 900
	LargeBlockLen      = 1200 // a single sentence past this gets split
	MinSentWords       = 3
	MaxNonCyrillicRate = 0.6
	DigitRatioCheck    = 0.7
	MinParagraphCount  = 2
	MinTrailingLen     = 200
)

var (
	reReferences = regexp.MustCompile(`\[\d+(-\d+)?(?:,\s*\d+(-\d+)?)*\]`)
	reHeadingNum = regexp.MustCompile(`^\s*\d+(\.\d+)*\s+`)
	reHeadingCap = regexp.MustCompile(`^[\sA-ZА-ЯЁ]{2,}$`)
	reMultiDots  = regexp.MustCompile(`\.{4,}`)
	reSpacePunct = regexp.MustCompile(`([,;:.!?])([^\s])`)
	reControl    = regexp.MustCompile(`[\x{0000}-\x{001F}\x{007F}-\x{009F}]`)
	reSpaces     = regexp.MustCompile(`\s+`)
	reManyDots   = regexp.MustCompile(`(\.\s*){7,}`)
)

// CleanRaw undoes the line-level artifacts of extraction: hyphenated line
// breaks are rejoined, newlines, tabs and non-breaking spaces become plain
// spaces, and space runs collapse.
func CleanRaw(text string) string {
	text = strings.ReplaceAll(text, "-\n", "")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")
	text = strings.ReplaceAll(text, " ", " ")
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// RemoveArtifacts normalizes a cleaned paragraph: NFC normalization, citation
// markers stripped, heading-only text dropped, a space forced after
// punctuation, dot runs collapsed to an ellipsis, control characters removed.
// Returns "" when the whole text is a heading.
func RemoveArtifacts(text string) string {
	text = norm.NFC.String(text)
	text = reReferences.ReplaceAllString(text, "")

	if reHeadingNum.MatchString(text) || reHeadingCap.MatchString(strings.TrimSpace(text)) {
		return ""
	}

	text = reSpacePunct.ReplaceAllString(text, "$1 $2")
	text = reMultiDots.ReplaceAllString(text, "...")
	text = reControl.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
