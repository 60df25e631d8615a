package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntities_Email(t *testing.T) {
	ent := ExtractEntities([]string{
		"Mail: john@acme.com, JOHN@ACME.COM",
		"john@acme.com",
	})
	assert.Equal(t, []string{"john@acme.com", "JOHN@ACME.COM"}, ent.Email)
}

func TestExtractEntities_PhoneNormalization(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"country code and groups", "+1 415 555 0100", []string{"+14155550100"}},
		{"parenthesized area code", "(022) 2345-6789", []string{"02223456789"}},
		{"bare digit run", "Tel 9876543210", []string{"9876543210"}},
		{"too short", "Ext 12-34", []string{}},
		{"postal code accepted", "London 560001", []string{"560001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ent := ExtractEntities([]string{tt.line})
			assert.Equal(t, tt.want, ent.Mobile)
		})
	}
}

func TestExtractEntities_PhoneDedup(t *testing.T) {
	ent := ExtractEntities([]string{"+91 9876543210", "+91-9876543210", "9876543210"})
	assert.Equal(t, []string{"+919876543210", "9876543210"}, ent.Mobile)
}

func TestExtractEntities_Website(t *testing.T) {
	ent := ExtractEntities([]string{
		"Visit www.acme.com, or https://acme.com/contact.",
		"WWW.acme.com",
		"www.acme.com;",
	})
	assert.Equal(t, []string{"www.acme.com", "https://acme.com/contact", "WWW.acme.com"}, ent.Website)
}

func TestExtractEntities_SocialFirstWins(t *testing.T) {
	ent := ExtractEntities([]string{
		"linkedin.com/in/first",
		"https://www.linkedin.com/in/second",
	})
	assert.Equal(t, "linkedin.com/in/first", ent.Social[SocialLinkedIn])
}

func TestExtractEntities_ExtrasLastWins(t *testing.T) {
	ent := ExtractEntities([]string{
		"GSTIN 29ABCDE1234F1Z5",
		"GSTIN 33ABCDE1234F1Z9",
		"CIN U72200KA2010PTC052345",
		"CIN L17110MH1973PLC019786",
	})
	assert.Equal(t, "33ABCDE1234F1Z9", ent.Extras[ExtraGSTIN])
	assert.Equal(t, "L17110MH1973PLC019786", ent.Extras[ExtraCIN])
}

func TestExtractEntities_LowercaseCodesIgnored(t *testing.T) {
	ent := ExtractEntities([]string{"gstin 29abcde1234f1z5"})
	_, ok := ent.Extras[ExtraGSTIN]
	assert.False(t, ok)
}

func TestExtractEntities_EmptyInput(t *testing.T) {
	ent := ExtractEntities(nil)
	assert.NotNil(t, ent.Email)
	assert.NotNil(t, ent.Mobile)
	assert.NotNil(t, ent.Website)
	assert.Empty(t, ent.Social)
	assert.Empty(t, ent.Extras)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+14155550100", normalizePhone("+1 (415) 555-0100"))
	assert.Equal(t, "", normalizePhone("12 345"))
	assert.Equal(t, "123456", normalizePhone("123-456"))
}
