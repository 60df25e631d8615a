package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRoles_NameDesignationCompany(t *testing.T) {
	roles := ClassifyRoles([]string{"John Smith", "Senior Manager", "Acme Corp", "john@acme.com"})

	assert.Equal(t, "John Smith", deref(roles.Name))
	assert.Equal(t, "Senior Manager", deref(roles.Designation))
	assert.Equal(t, "Acme Corp", deref(roles.Company))
}

func TestClassifyRoles_CompanyAfterDesignationRejectsContact(t *testing.T) {
	roles := ClassifyRoles([]string{"Jane Doe", "Director", "+1 415 555 0100"})

	assert.Equal(t, "Jane Doe", deref(roles.Name))
	assert.Equal(t, "Director", deref(roles.Designation))
	assert.Nil(t, roles.Company)
}

func TestClassifyRoles_CompanySuffixAfterName(t *testing.T) {
	roles := ClassifyRoles([]string{"Jane Doe", "Globex Pvt Ltd", "Sales Head"})

	assert.Equal(t, "Jane Doe", deref(roles.Name))
	assert.Equal(t, "Globex Pvt Ltd", deref(roles.Company))
	assert.Nil(t, roles.Designation)
}

func TestClassifyRoles_SkipsContactLines(t *testing.T) {
	roles := ClassifyRoles([]string{"www.Acme.Com", "Info@Acme.Com", "Ravi Kumar", "CTO"})

	assert.Equal(t, "Ravi Kumar", deref(roles.Name))
	assert.Equal(t, "CTO", deref(roles.Designation))
}

func TestClassifyRoles_TopmostNameWins(t *testing.T) {
	roles := ClassifyRoles([]string{"ACME", "John Smith", "Engineer"})

	assert.Equal(t, "ACME", deref(roles.Name))
	assert.Nil(t, roles.Designation)
}

func TestClassifyRoles_OnlyFirstSixLinesForName(t *testing.T) {
	lines := []string{"1", "2", "3", "4", "5", "6", "Late Name"}
	roles := ClassifyRoles(lines)

	assert.Nil(t, roles.Name)
}

func TestClassifyRoles_FallbackUsesDesignation(t *testing.T) {
	// No line qualifies as a name in the first six, so the designation
	// drives the fallback and the following line is taken as company
	// without any contact check.
	lines := []string{"acme", "lead engineer", "john@acme.com"}
	roles := ClassifyRoles(lines)

	assert.Nil(t, roles.Name)
	assert.Equal(t, "lead engineer", deref(roles.Designation))
	assert.Equal(t, "john@acme.com", deref(roles.Company))
}

func TestClassifyRoles_FallbackNameAboveDesignation(t *testing.T) {
	lines := []string{"1", "2", "3", "4", "5", "6", "Priya Rao", "Analyst"}
	roles := ClassifyRoles(lines)

	assert.Equal(t, "Priya Rao", deref(roles.Name))
	assert.Equal(t, "Analyst", deref(roles.Designation))
	assert.Nil(t, roles.Company)
}

func TestClassifyRoles_Empty(t *testing.T) {
	roles := ClassifyRoles(nil)

	assert.Nil(t, roles.Name)
	assert.Nil(t, roles.Designation)
	assert.Nil(t, roles.Company)
}

func TestIsLikelyName(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"John Smith", true},
		{"john smith", false},
		{"John smith", true},
		{"Mary Ann van der Berg", true},
		{"A B C D E F G", false},
		{"Room 42", false},
		{"", false},
		{"   ", false},
		{"iPhone User", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyName(tt.line))
		})
	}
}
