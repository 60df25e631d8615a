package ocr

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun          = regexp.MustCompile(`[ \x{00A0}]+`)
	newlineRun        = regexp.MustCompile(`\n{2,}`)
	spaceBeforePunct  = regexp.MustCompile(`\s+([,.;:!?%])`)
	typographicQuotes = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`)
	lineEndNormalizer = strings.NewReplacer("\r", "\n", "\t", " ")
)

// CleanText normalizes a recognized string.
//
// The steps run in order: NFKC normalization, tabs to spaces and carriage
// returns to newlines, collapsing runs of spaces and of newlines, dropping
// non-printable characters, folding curly quotes, repairing O/0 confusion,
// and removing whitespace before punctuation. If nothing survives, the
// trimmed input is returned instead.
func CleanText(text string) string {
	cleaned := norm.NFKC.String(text)
	cleaned = lineEndNormalizer.Replace(cleaned)
	cleaned = spaceRun.ReplaceAllString(cleaned, " ")
	cleaned = newlineRun.ReplaceAllString(cleaned, "\n")
	cleaned = strings.Map(func(r rune) rune {
		if r == '\n' || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, cleaned)
	cleaned = typographicQuotes.Replace(cleaned)
	cleaned = repairZeroAndO(cleaned)
	cleaned = spaceBeforePunct.ReplaceAllString(cleaned, "$1")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return strings.TrimSpace(text)
	}
	return cleaned
}

// repairZeroAndO replaces a letter O between two digits with 0, then a digit
// 0 between two non-digits with O. Neighbours are read from the input of
// each pass, so "1O1O1" becomes "10101".
func repairZeroAndO(s string) string {
	runes := []rune(s)
	runes = replaceBetween(runes, 'O', '0', true)
	runes = replaceBetween(runes, '0', 'O', false)
	return string(runes)
}

// replaceBetween swaps from for to wherever both neighbours are digits
// (digits true) or both are non-digits (digits false). The first and last
// rune have only one neighbour and are never replaced.
func replaceBetween(in []rune, from, to rune, digits bool) []rune {
	out := make([]rune, len(in))
	copy(out, in)
	for i := 1; i < len(in)-1; i++ {
		if in[i] != from {
			continue
		}
		if unicode.IsDigit(in[i-1]) == digits && unicode.IsDigit(in[i+1]) == digits {
			out[i] = to
		}
	}
	return out
}
