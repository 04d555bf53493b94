package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conductum/ats-api/internal/models"
)

func assertAllDefaults(t *testing.T, profile *models.ExtractedProfile) {
	t.Helper()

	assert.Equal(t, "", profile.Email)
	assert.Equal(t, "", profile.Telephone)
	assert.Equal(t, "", profile.Linkedin)
	assert.Equal(t, "", profile.Github)
	assert.Equal(t, "", profile.Facebook)
	assert.Equal(t, "", profile.Twitter)
	assert.Equal(t, "", profile.Dribbble)
	assert.Equal(t, "", profile.Behance)
	assert.Equal(t, []string{}, profile.Skills)
	assert.Equal(t, []models.Experience{}, profile.Experience)
	assert.Equal(t, []models.Education{}, profile.Education)
}

func TestNormalizeNonJSONDegradesToDefaults(t *testing.T) {
	normalizer := NewProfileNormalizer()

	for _, input := range []string{
		"not json",
		"",
		"   ",
		"null",
		"[1, 2, 3]",
		`"just a string"`,
		"{broken",
	} {
		profile := normalizer.Normalize(input)
		require.NotNil(t, profile, "input %q", input)
		assertAllDefaults(t, profile)
	}
}

func TestNormalizeEmptyObject(t *testing.T) {
	normalizer := NewProfileNormalizer()

	assertAllDefaults(t, normalizer.Normalize("{}"))
}

func TestNormalizePartialObject(t *testing.T) {
	normalizer := NewProfileNormalizer()

	profile := normalizer.Normalize(`{"skills": ["Go"], "email": "a@b.com"}`)

	assert.Equal(t, "a@b.com", profile.Email)
	assert.Equal(t, []string{"Go"}, profile.Skills)

	assert.Equal(t, "", profile.Telephone)
	assert.Equal(t, "", profile.Linkedin)
	assert.Equal(t, []models.Experience{}, profile.Experience)
	assert.Equal(t, []models.Education{}, profile.Education)
}

func TestNormalizeStripsMarkdownFences(t *testing.T) {
	normalizer := NewProfileNormalizer()

	profile := normalizer.Normalize("```json\n{\"email\": \"a@b.com\"}\n```")

	assert.Equal(t, "a@b.com", profile.Email)
}

func TestNormalizeCoercesNestedEntries(t *testing.T) {
	normalizer := NewProfileNormalizer()

	profile := normalizer.Normalize(`{
		"experience": [
			{"company": "Acme", "title": "Engineer", "period": "2021 - Present", "achievements": ["Shipped v2", ""]},
			{"company": null, "achievements": "not an array"},
			"not an object"
		],
		"education": [
			{"institution": "MIT", "degree": "BSc", "year": 2020}
		]
	}`)

	require.Len(t, profile.Experience, 2)

	first := profile.Experience[0]
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "Engineer", first.Title)
	assert.Equal(t, "2021 - Present", first.Period)
	assert.Equal(t, []string{"Shipped v2"}, first.Achievements)

	second := profile.Experience[1]
	assert.Equal(t, "", second.Company)
	assert.Equal(t, "", second.Title)
	assert.Equal(t, []string{}, second.Achievements)

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "MIT", profile.Education[0].Institution)
	assert.Equal(t, "BSc", profile.Education[0].Degree)
	assert.Equal(t, "2020", profile.Education[0].Year)
}

func TestNormalizeWrongTypesDegradeToDefaults(t *testing.T) {
	normalizer := NewProfileNormalizer()

	profile := normalizer.Normalize(`{
		"email": {"nested": "object"},
		"skills": "Go, Rust",
		"experience": {"company": "Acme"},
		"education": 42
	}`)

	assertAllDefaults(t, profile)
}

func TestNormalizedProfileMarshalsWithoutNulls(t *testing.T) {
	normalizer := NewProfileNormalizer()

	out, err := json.Marshal(normalizer.Normalize("garbage"))
	require.NoError(t, err)

	assert.NotContains(t, string(out), "null")
	for _, key := range []string{"email", "telephone", "linkedin", "github", "facebook", "twitter", "dribbble", "behance", "skills", "experience", "education"} {
		assert.Contains(t, string(out), `"`+key+`"`)
	}
}
