package report

import (
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const ellipsis = "..."

// encoding used by the core PDF fonts.
var encoding = charmap.Windows1252

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// clean drops runes the document encoding cannot represent and flattens
// whitespace controls to spaces.
func clean(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n', '\r', '\t':
			sb.WriteByte(' ')
			continue
		}
		if r < 0x20 {
			continue
		}
		if _, ok := encoding.EncodeRune(r); ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// truncate keeps the first limit runes of s and marks the cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRight(string(runes[:limit]), " ") + ellipsis
}

// encode converts cleaned text to the single-byte form the PDF fonts expect.
func encode(s string) string {
	s = clean(s)
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := encoding.EncodeRune(r); ok {
			out = append(out, b)
		}
	}
	return string(out)
}

// FileName returns the download name for a report over periodLabel.
func FileName(periodLabel string) string {
	label := strings.Join(strings.Fields(periodLabel), "_")
	label = unsafeFileChars.ReplaceAllString(label, "")
	if label == "" {
		label = "report"
	}
	return FilePrefix + label + ".pdf"
}
