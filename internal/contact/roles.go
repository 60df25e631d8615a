package contact

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	designationPattern = regexp.MustCompile(`(?i)\b(?:manager|director|engineer|developer|designer|head|chief|cto|ceo|coo|founder|president|lead|senior|junior|intern|consultant|analyst|specialist|sales|marketing)\b`)
	companyPattern     = regexp.MustCompile(`(?i)\b(?:pvt|ltd|limited|inc|llc|corporation|corp|co)\b`)
)

const (
	// nameScanLines bounds the primary search for a name.
	nameScanLines = 6
	// designationScanLines bounds the fallback search for a designation.
	designationScanLines = 8
	maxNameTokens        = 6
)

// Roles holds the layout-derived identity fields. Nil means not detected.
type Roles struct {
	Name        *string
	Designation *string
	Company     *string
}

// ClassifyRoles labels the top lines of a card as name, designation and
// company.
//
// The primary pass looks at the first six lines, skipping any line with an
// email, phone or website match, and takes the topmost name-like line as
// the name. The line right after it becomes the designation when it holds
// a designation keyword (and the next one the company, unless it holds an
// email or phone), or the company when it holds a company suffix.
//
// When no name-like line exists the fallback pass takes the first
// designation line among the first eight. A name-like line just above it
// becomes the name and the line just below it the company, without the
// email/phone check of the primary pass.
func ClassifyRoles(lines []string) Roles {
	var roles Roles

	nameIdx := -1
	for i, ln := range head(lines, nameScanLines) {
		if ln == "" || hasContactPattern(ln, true) {
			continue
		}
		if isLikelyName(ln) {
			nameIdx = i
			break
		}
	}

	if nameIdx >= 0 {
		roles.Name = stringPtr(lines[nameIdx])

		if nameIdx+1 < len(lines) {
			next := lines[nameIdx+1]
			switch {
			case designationPattern.MatchString(next):
				roles.Designation = stringPtr(next)
				if nameIdx+2 < len(lines) {
					company := strings.TrimSpace(lines[nameIdx+2])
					if company != "" && !hasContactPattern(company, false) {
						roles.Company = stringPtr(company)
					}
				}
			case companyPattern.MatchString(next):
				roles.Company = stringPtr(next)
			}
		}
		return roles
	}

	for i, ln := range head(lines, designationScanLines) {
		if !designationPattern.MatchString(ln) {
			continue
		}
		roles.Designation = stringPtr(ln)
		if i > 0 && isLikelyName(lines[i-1]) {
			roles.Name = stringPtr(lines[i-1])
		}
		if i+1 < len(lines) {
			roles.Company = stringPtr(lines[i+1])
		}
		break
	}

	return roles
}

// isLikelyName reports whether a line looks like a person's name: no
// digits, one to six tokens, and at least half of the tokens (rounded down,
// minimum one) starting with an uppercase letter.
func isLikelyName(line string) bool {
	if line == "" || strings.IndexFunc(line, unicode.IsDigit) >= 0 {
		return false
	}

	words := strings.Fields(line)
	if len(words) == 0 || len(words) > maxNameTokens {
		return false
	}

	capitalized := 0
	for _, w := range words {
		for _, r := range w {
			if unicode.IsUpper(r) {
				capitalized++
			}
			break
		}
	}

	need := len(words) / 2
	if need < 1 {
		need = 1
	}
	return capitalized >= need
}

func head(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
