package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSkillsRoundTripThroughJSONB(t *testing.T) {
	var c Candidate
	require.NoError(t, c.SetSkills([]string{"Python", "SQL", "Python"}))

	assert.JSONEq(t, `["Python","SQL","Python"]`, string(c.Skills))
	assert.Equal(t, []string{"Python", "SQL", "Python"}, c.SkillList())
	assert.True(t, c.HasSkill("SQL"))
	assert.False(t, c.HasSkill("sql"))
}

func TestSkillListToleratesLegacyValues(t *testing.T) {
	c := Candidate{}
	assert.Equal(t, []string{}, c.SkillList())

	c.Skills = datatypes.JSON(`null`)
	assert.Equal(t, []string{}, c.SkillList())

	c.Skills = datatypes.JSON(`"Java"`)
	assert.Equal(t, []string{}, c.SkillList())

	require.NoError(t, c.SetSkills(nil))
	assert.Equal(t, `[]`, string(c.Skills))
}
