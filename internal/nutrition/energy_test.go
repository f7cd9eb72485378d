package nutrition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMRMifflin(t *testing.T) {
	assert.Equal(t, 1649.0, BMRMifflin(BMRInput{Sex: SexMale, WeightKg: 70, HeightCm: 175, Age: 30}))
	assert.Equal(t, 1320.0, BMRMifflin(BMRInput{Sex: SexFemale, WeightKg: 60, HeightCm: 165, Age: 30}))
	assert.Equal(t, 1649.0, CalculateBMR(Profile{Sex: SexMale, WeightKg: 70, HeightCm: 175, Age: 30}))
}

func TestCalculateTDEE(t *testing.T) {
	sedentary, err := CalculateTDEE(1600, ActivitySedentary)
	require.NoError(t, err)
	assert.Equal(t, 1920.0, sedentary)

	moderate, err := CalculateTDEE(1600, ActivityModerate)
	require.NoError(t, err)
	assert.Equal(t, 2480.0, moderate)

	veryActive, err := CalculateTDEE(1600, ActivityVeryActive)
	require.NoError(t, err)
	assert.Equal(t, 3040.0, veryActive)

	_, err = CalculateTDEE(1600, ActivityLevel("couch"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEnum))
}

func TestParseEnums(t *testing.T) {
	a, err := ParseActivity(" Very_Active ")
	require.NoError(t, err)
	assert.Equal(t, ActivityVeryActive, a)

	a, err = ParseActivity("veryActive")
	require.NoError(t, err)
	assert.Equal(t, ActivityVeryActive, a)

	s, err := ParseSex("FEMALE")
	require.NoError(t, err)
	assert.Equal(t, SexFemale, s)

	g, err := ParseGoal("bulk")
	require.NoError(t, err)
	assert.Equal(t, GoalBulk, g)

	_, err = ParseSex("other")
	assert.ErrorIs(t, err, ErrInvalidEnum)
	_, err = ParseGoal("recomp")
	assert.ErrorIs(t, err, ErrInvalidEnum)
	_, err = ParseActivity("")
	assert.ErrorIs(t, err, ErrInvalidEnum)
}
