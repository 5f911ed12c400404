package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CandidateProfile_Valid(t *testing.T) {
	jsonContent := `{
		"skills": ["Python", "Docker"],
		"experience": ["Backend Engineer 2019-2023"],
		"education": ["B.S. Computer Science 2018"],
		"summary": "Backend engineer with five years of experience."
	}`

	err := Validate(CandidateProfileSchema, jsonContent)
	assert.NoError(t, err)
}

func TestValidate_CandidateProfile_MissingFieldsAllowed(t *testing.T) {
	// The analyzer tolerates absent fields and fills defaults itself
	err := Validate(CandidateProfileSchema, `{"skills": []}`)
	assert.NoError(t, err)
}

func TestValidate_CandidateProfile_WrongType(t *testing.T) {
	jsonContent := `{
		"skills": "Python, Docker",
		"experience": [],
		"education": [],
		"summary": "text"
	}`

	err := Validate(CandidateProfileSchema, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
	assert.Contains(t, validationErr.Error(), "skills")
}

func TestValidate_CandidateProfile_NonStringItems(t *testing.T) {
	err := Validate(CandidateProfileSchema, `{"skills": [1, 2, 3]}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestValidate_NonExistentSchema(t *testing.T) {
	err := Validate("nonexistent.schema.json", `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(`{"type": "object"}`, `{not json`)
	require.Error(t, err)
}
