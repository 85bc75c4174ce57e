package headings

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// RepairEncoding reinterprets text that was wrongly decoded as Latin-1 when
// the font actually carried Windows-1251 bytes. Each rune is mapped back to
// its Latin-1 byte and re-decoded as cp1251; runes outside Latin-1 mean the
// text was not mis-decoded this way, and the original is returned unchanged.
// Bytes with no cp1251 mapping are dropped, mirroring a lossy re-decode.
// Failures are absorbed silently and never abort extraction.
func RepairEncoding(text string) string {
	if text == "" {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r > 0xFF {
			return text
		}
		decoded := charmap.Windows1251.DecodeByte(byte(r))
		if decoded == utf8.RuneError {
			continue
		}
		sb.WriteRune(decoded)
	}
	return sb.String()
}
