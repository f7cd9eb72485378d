package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	chicken = FoodItem{ID: "1", Name: "Chicken breast", Kcal: 165, Protein: 31, Carbs: 0, Fat: 3.6, Unit: "100g", GramsPerUnit: 100}
	goals   = MacroGoals{Kcal: 2000, Protein: 150, Carbs: 200, Fat: 65}
)

func TestCalculateFoodMacros(t *testing.T) {
	assert.Equal(t, MacroGoals{Kcal: 330, Protein: 62, Carbs: 0, Fat: 7.2}, CalculateFoodMacros(chicken, 2))
	assert.Equal(t, MacroGoals{Kcal: 83, Protein: 15.5, Carbs: 0, Fat: 1.8}, CalculateFoodMacros(chicken, 0.5))
	assert.Equal(t, MacroGoals{}, CalculateFoodMacros(chicken, 0))
}

func TestAdjustMacrosForDay(t *testing.T) {
	training := AdjustMacrosForDay(goals, true)
	assert.Equal(t, MacroGoals{Kcal: 2000, Protein: 150, Carbs: 230, Fat: 59}, training)

	rest := AdjustMacrosForDay(goals, false)
	assert.Equal(t, MacroGoals{Kcal: 2000, Protein: 150, Carbs: 200, Fat: 68}, rest)

	// same input, same output; the base value is not modified
	assert.Equal(t, training, AdjustMacrosForDay(goals, true))
	assert.Equal(t, MacroGoals{Kcal: 2000, Protein: 150, Carbs: 200, Fat: 65}, goals)

	custom := AdjustMacrosForDay(goals, true, DayAdjustments{TrainingCarbsIncrease: 50, TrainingFatDecrease: 20})
	assert.Equal(t, MacroGoals{Kcal: 2000, Protein: 150, Carbs: 300, Fat: 52}, custom)
}

func TestCalculateRemainingMacros(t *testing.T) {
	consumed := MacroGoals{Kcal: 500, Protein: 30, Carbs: 50, Fat: 20}
	assert.Equal(t, MacroGoals{Kcal: 1500, Protein: 120, Carbs: 150, Fat: 45}, CalculateRemainingMacros(goals, consumed))

	over := MacroGoals{Kcal: 2500, Protein: 200, Carbs: 300, Fat: 100}
	assert.Equal(t, MacroGoals{}, CalculateRemainingMacros(goals, over))

	partial := MacroGoals{Kcal: 2100, Protein: 10, Carbs: 250, Fat: 5}
	assert.Equal(t, MacroGoals{Kcal: 0, Protein: 140, Carbs: 0, Fat: 60}, CalculateRemainingMacros(goals, partial))
}

func TestCalculateProgress(t *testing.T) {
	assert.Equal(t, 50.0, CalculateProgress(50, 100))
	assert.Equal(t, 25.0, CalculateProgress(25, 100))
	assert.Equal(t, 100.0, CalculateProgress(100, 100))
	assert.Equal(t, 100.0, CalculateProgress(150, 100))
	assert.Equal(t, 0.0, CalculateProgress(-10, 100))
	assert.Equal(t, 0.0, CalculateProgress(50, 0))
}

func TestSumMacros(t *testing.T) {
	sum := SumMacros(CalculateFoodMacros(chicken, 2), CalculateFoodMacros(chicken, 0.5))
	assert.Equal(t, MacroGoals{Kcal: 413, Protein: 77.5, Carbs: 0, Fat: 9}, sum)
	assert.Equal(t, MacroGoals{}, SumMacros())
}

func TestAdherenceWithin(t *testing.T) {
	assert.True(t, AdherenceWithin(95, 100, 0.1))
	assert.True(t, AdherenceWithin(110, 100, 0.1))
	assert.False(t, AdherenceWithin(111, 100, 0.1))
	assert.True(t, AdherenceWithin(0, 0, 0.1))
	assert.False(t, AdherenceWithin(1, 0, 0.1))
}
