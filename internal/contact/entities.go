package contact

import (
	"regexp"
	"strings"
)

// Patterns are compiled once and shared by every call.
var (
	emailPattern    = regexp.MustCompile(`(?i)[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:(?:\+?\d{1,4})?[-.\s]?)?(?:\(?\d{2,4}\)?[-.\s]?)?(?:\d{3,4}[-.\s]?\d{3,4}|\d{6,14})`)
	websitePattern  = regexp.MustCompile(`(?i)(?:https?://[^\s,;]+|www\.[^\s,;]+)`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/[^\s,;]+`)
	gstinPattern    = regexp.MustCompile(`\b[0-9A-Z]{15}\b`)
	cinPattern      = regexp.MustCompile(`\b[A-Z0-9]{16,21}\b`)

	nonPhoneChars = regexp.MustCompile(`[^\d+]`)
	nonDigits     = regexp.MustCompile(`\D`)
)

// Keys used in ParsedContact.Social and ParsedContact.Extras.
const (
	SocialLinkedIn = "linkedin"
	ExtraGSTIN     = "gstin"
	ExtraCIN       = "cin"
)

// minPhoneDigits is the smallest digit count accepted as a phone number.
const minPhoneDigits = 6

// Entities holds the pattern-based fields found in a card's lines.
type Entities struct {
	Email   []string
	Mobile  []string
	Website []string
	Social  map[string]string
	Extras  map[string]string
}

// ExtractEntities scans every line for contact patterns.
//
// Each line is tested, in order, for emails, phone numbers, websites, a
// LinkedIn URL, a 15-character tax code and a 16-21 character registration
// code. Emails, phones and websites are deduplicated keeping first-seen
// order. The first LinkedIn match wins, while each tax or registration
// match replaces the previous one.
//
// Phone matches keep only digits and '+', and are dropped when fewer than
// six digits remain. The pattern is deliberately loose, so postal codes and
// fragments of long identifiers may be reported as numbers.
func ExtractEntities(lines []string) Entities {
	ent := Entities{
		Email:   []string{},
		Mobile:  []string{},
		Website: []string{},
		Social:  map[string]string{},
		Extras:  map[string]string{},
	}

	for _, ln := range lines {
		for _, m := range emailPattern.FindAllString(ln, -1) {
			ent.Email = appendUnique(ent.Email, m)
		}

		for _, m := range phonePattern.FindAllString(ln, -1) {
			if p := normalizePhone(m); p != "" {
				ent.Mobile = appendUnique(ent.Mobile, p)
			}
		}

		for _, m := range websitePattern.FindAllString(ln, -1) {
			w := strings.TrimRight(strings.TrimSpace(m), ",.")
			if w != "" {
				ent.Website = appendUnique(ent.Website, w)
			}
		}

		if m := linkedinPattern.FindString(ln); m != "" {
			if _, ok := ent.Social[SocialLinkedIn]; !ok {
				ent.Social[SocialLinkedIn] = m
			}
		}

		if m := gstinPattern.FindString(ln); m != "" {
			ent.Extras[ExtraGSTIN] = m
		}
		if m := cinPattern.FindString(ln); m != "" {
			ent.Extras[ExtraCIN] = m
		}
	}

	return ent
}

// normalizePhone strips a raw match down to digits and '+'. It returns ""
// when the match holds too few digits.
func normalizePhone(raw string) string {
	p := nonPhoneChars.ReplaceAllString(raw, "")
	if len(nonDigits.ReplaceAllString(p, "")) < minPhoneDigits {
		return ""
	}
	return p
}

// hasContactPattern reports whether the line contains an email or phone
// match, and optionally a website match.
func hasContactPattern(line string, withWebsite bool) bool {
	if emailPattern.MatchString(line) || phonePattern.MatchString(line) {
		return true
	}
	return withWebsite && websitePattern.MatchString(line)
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
