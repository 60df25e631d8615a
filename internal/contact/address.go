package contact

import (
	"regexp"
	"strings"
	"unicode"
)

var postalCodePattern = regexp.MustCompile(`\b\d{5,6}\b`)

// addressTokens are matched as substrings of the lower-cased line.
var addressTokens = []string{
	"street", "st", "road", "rd", "lane", "block", "sector", "area", "city",
	"state", "pincode", "zip", "house", "landmark", "near", "plot", "colony",
}

const (
	fallbackScanLines = 6
	fallbackMaxLines  = 3
)

// Address holds the resolved address fields. Nil means not detected.
type Address struct {
	Address  *string
	Location *string
}

// ResolveAddress finds the address block of a card.
//
// Every address-like line is joined, in order, with ", ". When the joined
// string has at least two comma-separated parts, the last two (trimmed)
// form the location.
//
// When no line is address-like, up to three of the last six lines are used
// instead, skipping lines equal to a captured email or contained in a
// captured phone number. The location is then the last comma-separated part.
func ResolveAddress(lines, emails, mobiles []string) Address {
	var res Address

	matched := make([]string, 0)
	for _, ln := range lines {
		if isLikelyAddress(ln) {
			matched = append(matched, ln)
		}
	}

	if len(matched) > 0 {
		addr := strings.Join(matched, ", ")
		res.Address = stringPtr(addr)

		parts := strings.Split(addr, ",")
		if len(parts) >= 2 {
			tail := parts[len(parts)-2:]
			res.Location = stringPtr(strings.TrimSpace(tail[0]) + ", " + strings.TrimSpace(tail[1]))
		}
		return res
	}

	start := len(lines) - fallbackScanLines
	if start < 0 {
		start = 0
	}

	fallback := make([]string, 0, fallbackMaxLines)
	for i := len(lines) - 1; i >= start; i-- {
		ln := lines[i]
		if ln == "" || containsString(emails, ln) || withinAny(mobiles, ln) {
			continue
		}
		fallback = append(fallback, ln)
		if len(fallback) >= fallbackMaxLines {
			break
		}
	}

	if len(fallback) > 0 {
		for i, j := 0, len(fallback)-1; i < j; i, j = i+1, j-1 {
			fallback[i], fallback[j] = fallback[j], fallback[i]
		}
		addr := strings.Join(fallback, ", ")
		parts := strings.Split(addr, ",")
		res.Address = stringPtr(addr)
		res.Location = stringPtr(strings.TrimSpace(parts[len(parts)-1]))
	}

	return res
}

// isLikelyAddress reports whether a line holds an address token, a postal
// code, or a digit alongside at least two tokens.
func isLikelyAddress(line string) bool {
	lower := strings.ToLower(line)
	for _, tok := range addressTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}

	if postalCodePattern.MatchString(line) {
		return true
	}

	return strings.IndexFunc(line, unicode.IsDigit) >= 0 && len(strings.Fields(line)) >= 2
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// withinAny reports whether s is a substring of any element of list.
func withinAny(list []string, s string) bool {
	for _, v := range list {
		if strings.Contains(v, s) {
			return true
		}
	}
	return false
}
