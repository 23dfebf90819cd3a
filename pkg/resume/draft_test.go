package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraftHasOneRowEach(t *testing.T) {
	d := NewDraft()
	require.Len(t, d.Education, 1)
	require.Len(t, d.WorkExperience, 1)
	assert.True(t, d.Education[0].IsBlank())
	assert.True(t, d.Validate().Empty())
}

func TestNormalize(t *testing.T) {
	var d Draft
	d.Normalize()
	assert.Len(t, d.Education, 1)
	assert.Len(t, d.WorkExperience, 1)
}

func TestAddRemoveRows(t *testing.T) {
	d := NewDraft()
	d.Education[0].School = "First"
	d.AddEducation()
	d.Education[1].School = "Second"
	require.Len(t, d.Education, 2)

	require.NoError(t, d.RemoveEducation(0))
	require.Len(t, d.Education, 1)
	assert.Equal(t, "Second", d.Education[0].School)
	assert.ErrorIs(t, d.RemoveEducation(0), ErrLastRow)
	assert.ErrorIs(t, d.RemoveEducation(3), ErrRowIndex)

	d.AddWorkExperience()
	require.NoError(t, d.RemoveWorkExperience(1))
	assert.ErrorIs(t, d.RemoveWorkExperience(0), ErrLastRow)
	assert.ErrorIs(t, d.RemoveWorkExperience(-1), ErrRowIndex)
}

func TestRemoveDoesNotAliasOriginal(t *testing.T) {
	d := Draft{Education: []Education{{School: "A"}, {School: "B"}, {School: "C"}}}
	orig := d.Education
	require.NoError(t, d.RemoveEducation(0))
	assert.Equal(t, "A", orig[0].School)
	assert.Equal(t, []Education{{School: "B"}, {School: "C"}}, d.Education)
}

func TestValidateStartedRows(t *testing.T) {
	d := Draft{
		Education:      []Education{{StartDate: "2010"}, {}},
		WorkExperience: []WorkExperience{{Company: "Acme", Position: "E"}},
	}
	v := d.Validate()
	assert.Contains(t, v, "education[0].school")
	assert.Contains(t, v, "education[0].degree")
	assert.NotContains(t, v, "education[1].school")
	assert.Contains(t, v, "workExperience[0].position")
	assert.NotContains(t, v, "workExperience[0].company")
}
