package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestNormalize_DropsDuplicatesKeepingFirst(t *testing.T) {
	records := []Record{
		{JobTitle: strp("Engineer"), CompanyName: strp("ACME"), JobDescription: strp("desc"), JobLocation: strp("Paris")},
		{JobTitle: strp("Engineer"), CompanyName: strp("ACME"), JobDescription: strp("desc"), JobLocation: strp("Berlin")},
		{JobTitle: strp("Engineer"), CompanyName: strp("Other"), JobDescription: strp("desc")},
	}

	out := Normalize(records)

	require.Len(t, out, 2)
	// First occurrence wins, Paris not Berlin.
	assert.Equal(t, "Paris", out[0].Location())
	assert.Equal(t, "Other", out[1].Company())
}

func TestNormalize_KeyIsUnique(t *testing.T) {
	records := []Record{
		{JobTitle: strp("A"), CompanyName: strp("C"), JobDescription: strp("D")},
		{JobTitle: strp("A"), CompanyName: strp("C"), JobDescription: strp("D2")},
		{JobTitle: strp("A"), CompanyName: strp("C"), JobDescription: strp("D")},
		{JobTitle: nil, CompanyName: strp("C"), JobDescription: strp("D")},
		{JobTitle: nil, CompanyName: strp("C"), JobDescription: strp("D")},
	}

	out := Normalize(records)

	type key struct{ t, c, d string }
	seen := make(map[key]bool)
	for _, r := range out {
		k := key{r.Title(), r.Company(), r.Description()}
		assert.False(t, seen[k], "duplicate key %v", k)
		seen[k] = true
	}
	assert.Len(t, out, 3)
}

func TestNormalize_StripsTitleQualifier(t *testing.T) {
	records := []Record{
		{JobTitle: strp("Data Scientist with verification"), CompanyName: strp("ACME"), JobDescription: strp("d")},
		{JobTitle: strp("Data Scientist"), CompanyName: strp("Beta"), JobDescription: strp("d")},
	}

	out := Normalize(records)

	require.Len(t, out, 2)
	assert.Equal(t, "Data Scientist", out[0].Title())
	assert.Equal(t, "Data Scientist", out[1].Title())
}

func TestNormalize_NilTitleSurvives(t *testing.T) {
	out := Normalize([]Record{{CompanyName: strp("ACME")}})
	require.Len(t, out, 1)
	assert.Nil(t, out[0].JobTitle)
}

func TestStripParenthetical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Paris (Remote)", "Paris"},
		{"Berlin", "Berlin"},
		{"Lyon (Hybrid) France", "Lyon France"},
		{"(Remote)", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripParenthetical(tt.in), "input %q", tt.in)
	}
}
